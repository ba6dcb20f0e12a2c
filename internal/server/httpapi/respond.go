package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/itemdesk/internal/models"
)

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error(ctx, "failed to write response", "error", err)
	}
}

// writeError answers with the `{detail}` body shape every client error
// handler expects.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, status int, detail string) {
	h.writeJSON(ctx, w, status, models.ErrorBody{Detail: detail})
}

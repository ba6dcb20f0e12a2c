package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/itemdesk/internal/models"
	"github.com/dmitrijs2005/itemdesk/internal/server/auth"
)

type contextKey string

const userContextKey contextKey = "user"

// requireUser validates the bearer token and loads the user into the
// request context. Any failure answers 401 with a `{detail}` body; the
// precise cause is not leaked to the caller.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			h.writeError(ctx, w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, h.secret)
		if err != nil {
			h.writeError(ctx, w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		user, err := h.store.UserByID(userID)
		if err != nil {
			h.writeError(ctx, w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userContextKey, user)))
	})
}

func userFrom(ctx context.Context) models.User {
	return ctx.Value(userContextKey).(models.User)
}

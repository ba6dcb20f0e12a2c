package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/itemdesk/internal/models"
	"github.com/dmitrijs2005/itemdesk/internal/server/auth"
	"github.com/dmitrijs2005/itemdesk/internal/server/store"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if !strings.Contains(in.Email, "@") || in.Password == "" {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "A valid email and password are required")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		h.log.Error(ctx, "failed to hash password", "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.store.CreateUser(in.Email, hash, in.FullName)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			h.writeError(ctx, w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.log.Error(ctx, "failed to create user", "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.log.Info(ctx, "user registered", "user_id", user.ID)
	h.writeJSON(ctx, w, http.StatusOK, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	user, hash, err := h.store.UserByEmail(creds.Email)
	if err != nil || !auth.CheckPassword(hash, creds.Password) {
		h.writeError(ctx, w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.secret, h.tokenTTL)
	if err != nil {
		h.log.Error(ctx, "failed to sign token", "error", err)
		h.writeError(ctx, w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, http.StatusOK, userFrom(r.Context()))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	updated, err := h.store.UpdateUser(user.ID, upd)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			h.writeError(ctx, w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.writeError(ctx, w, http.StatusNotFound, "User not found")
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, updated)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)
	h.writeJSON(ctx, w, http.StatusOK, h.store.ItemsByOwner(user.ID))
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)

	var in models.ItemCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if in.Title == "" {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "Title is required")
		return
	}

	item := h.store.CreateItem(user.ID, in)
	h.log.Info(ctx, "item created", "item_id", item.ID, "user_id", user.ID)
	h.writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)

	item, err := h.store.ItemByOwner(itemID(r), user.ID)
	if err != nil {
		h.writeError(ctx, w, http.StatusNotFound, "Item not found")
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)

	var upd models.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.writeError(ctx, w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	item, err := h.store.UpdateItem(itemID(r), user.ID, upd)
	if err != nil {
		h.writeError(ctx, w, http.StatusNotFound, "Item not found")
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)

	if err := h.store.DeleteItem(itemID(r), user.ID); err != nil {
		h.writeError(ctx, w, http.StatusNotFound, "Item not found")
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// itemID extracts the {id} path variable. The route pattern guarantees it
// is numeric.
func itemID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/tokenauth/internal/apierrors"
	"github.com/dtroode/tokenauth/internal/model"
)

type accountResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Account serves the authenticated user's own record.
type Account struct {
	contextManager model.ContextManager
}

// NewAccount creates a new Account handler.
func NewAccount(contextManager model.ContextManager) *Account {
	return &Account{contextManager: contextManager}
}

// Get responds with the user loaded by the Identify middleware.
func (h *Account) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		apierrors.Write(w, errors.New("account: no user in context"))
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{ID: user.ID, Username: user.Username})
}

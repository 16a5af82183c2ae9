package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/tokenauth/internal/apierrors"
	"github.com/dtroode/tokenauth/internal/logger"
	"github.com/dtroode/tokenauth/internal/model"
)

// UserService loads accounts by ID.
type UserService interface {
	GetAccount(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// Identify loads the user authenticated by Authenticate and stores it in the
// request context. It must be chained after Authenticate.
type Identify struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewIdentify creates a new Identify middleware instance.
func NewIdentify(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *Identify {
	return &Identify{userService: userService, contextManager: contextManager, logger: logger}
}

// Handle responds 404 when the token's user no longer exists.
func (m *Identify) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.contextManager.GetUserIDFromContext(r.Context())
		if !ok {
			apierrors.Write(w, errors.New("identify: no user id in context"))
			return
		}

		user, err := m.userService.GetAccount(r.Context(), userID)
		if err != nil {
			if _, isAPI := apierrors.As(err); !isAPI {
				m.logger.Error("Identify middleware: failed to load user",
					"user_id", userID,
					"error", err.Error())
			}
			apierrors.Write(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

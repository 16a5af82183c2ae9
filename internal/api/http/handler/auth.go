package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/tokenauth/internal/apierrors"
	"github.com/dtroode/tokenauth/internal/logger"
	"github.com/dtroode/tokenauth/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (model.User, error)
	Login(ctx context.Context, username, password string) (model.Session, error)
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Revoke(ctx context.Context, refreshToken string) error
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	ID           uuid.UUID `json:"id"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a user and responds 201.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing registration request")

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, apierrors.NewErrBadRequest())
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"username", user.Username,
		"user_id", user.ID)

	writeText(w, http.StatusCreated, "User created")
}

// Login verifies credentials and responds with a token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing login request")

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, apierrors.NewErrBadRequest())
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		ID:           session.UserID,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new access token.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing token refresh request")

	var req refreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		h.handleError(w, apierrors.NewErrBadRequest())
		return
	}

	accessToken, err := h.tokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: token refresh failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: accessToken})
}

// Logout revokes a refresh token and responds 204.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing logout request")

	var req refreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		h.handleError(w, apierrors.NewErrBadRequest())
		return
	}

	if err := h.tokenService.Revoke(r.Context(), req.RefreshToken); err != nil {
		h.logger.Info("Auth handler: logout failed",
			"error", err.Error())
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Auth) handleError(w http.ResponseWriter, err error) {
	if _, ok := apierrors.As(err); !ok {
		h.logger.Error("Auth handler: internal error",
			"error", err.Error())
	}
	apierrors.Write(w, err)
}

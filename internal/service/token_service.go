package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tokenauth/internal/apierrors"
	"github.com/dtroode/tokenauth/internal/logger"
	"github.com/dtroode/tokenauth/internal/model"
	"github.com/dtroode/tokenauth/internal/token"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshRegistry.
type TokenService struct {
	manager  model.TokenManager
	registry model.RefreshRegistry
	logger   *logger.Logger
	now      func() time.Time
}

func NewTokenService(manager model.TokenManager, registry model.RefreshRegistry, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, registry: registry, logger: logger, now: time.Now}
}

// Issue mints an access/refresh pair for userID and registers the refresh token.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	s.registry.Register(refresh, userID)

	s.logger.Info("Token service: refresh token added",
		"user_id", userID,
		"fingerprint", token.Fingerprint(refresh))

	return access, refresh, nil
}

// Refresh exchanges a registered refresh token for a new access token. The
// refresh token itself stays registered.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (string, error) {
	if !s.registry.IsActive(presentedRefresh) {
		s.logger.Debug("Token service: refresh token not registered",
			"fingerprint", token.Fingerprint(presentedRefresh))
		return "", apierrors.NewErrRefreshTokenNotFound()
	}

	userID, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		s.logger.Warn("Token service: registered refresh token failed verification",
			"fingerprint", token.Fingerprint(presentedRefresh),
			"error", err.Error())
		return "", apierrors.NewErrRefreshTokenInvalid(err)
	}

	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue new access: %w", err)
	}

	return access, nil
}

// Revoke removes a refresh token from the registry.
func (s *TokenService) Revoke(ctx context.Context, presentedRefresh string) error {
	entry, ok := s.registry.Revoke(presentedRefresh)
	if !ok {
		s.logger.Debug("Token service: refresh token not registered",
			"fingerprint", token.Fingerprint(presentedRefresh))
		return apierrors.NewErrRefreshTokenNotFound()
	}

	s.logger.Info("Token service: refresh token removed",
		"user_id", entry.UserID,
		"age", s.now().Sub(entry.IssuedAt).Round(time.Second),
		"fingerprint", token.Fingerprint(presentedRefresh))

	return nil
}

// GetUserID validates an access token and returns its subject.
func (s *TokenService) GetUserID(ctx context.Context, accessToken string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(accessToken)
}

// ActiveRefreshTokens returns the number of registered refresh tokens.
func (s *TokenService) ActiveRefreshTokens() int {
	return s.registry.Len()
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tokenauth/internal/apierrors"
	"github.com/dtroode/tokenauth/internal/mocks"
	"github.com/dtroode/tokenauth/internal/model"
	"github.com/dtroode/tokenauth/internal/testutil"
)

func newRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuth_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *mocks.AuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"username":"alice","password":"pw1"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1").Return(model.User{ID: uuid.New(), Username: "alice"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   "User created",
		},
		{
			name: "missing fields",
			body: `{"username":"alice"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "").Return(model.User{}, apierrors.NewErrBadRequest())
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Bad request\n",
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			setup:      func(s *mocks.AuthService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Bad request\n",
		},
		{
			name: "taken",
			body: `{"username":"alice","password":"pw1"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1").Return(model.User{}, apierrors.NewErrUsernameIsTaken("alice"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "User already exists\n",
		},
		{
			name: "internal",
			body: `{"username":"alice","password":"pw1"}`,
			setup: func(s *mocks.AuthService) {
				s.On("Register", mock.Anything, "alice", "pw1").Return(model.User{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := mocks.NewAuthService(t)
			tt.setup(authService)
			h := NewAuth(authService, mocks.NewTokenService(t), testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Register(rec, newRequest(http.MethodPost, "/register", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuth_Login(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("Login", mock.Anything, "alice", "pw1").Return(model.Session{
			UserID:       userID,
			AccessToken:  "access",
			RefreshToken: "refresh",
		}, nil)
		h := NewAuth(authService, mocks.NewTokenService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{
			"id":           userID.String(),
			"accessToken":  "access",
			"refreshToken": "refresh",
		}, body)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("Login", mock.Anything, "alice", "bad").Return(model.Session{}, apierrors.NewErrInvalidCredentials())
		h := NewAuth(authService, mocks.NewTokenService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/login", `{"username":"alice","password":"bad"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Invalid username or password\n", rec.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("Login", mock.Anything, "", "").Return(model.Session{}, apierrors.NewErrBadRequest())
		h := NewAuth(authService, mocks.NewTokenService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuth_Refresh(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *mocks.TokenService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"refreshToken":"r"}`,
			setup: func(s *mocks.TokenService) {
				s.On("Refresh", mock.Anything, "r").Return("new-access", nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"accessToken":"new-access"}` + "\n",
		},
		{
			name:       "missing token",
			body:       `{}`,
			setup:      func(s *mocks.TokenService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Bad request\n",
		},
		{
			name: "not found",
			body: `{"refreshToken":"r"}`,
			setup: func(s *mocks.TokenService) {
				s.On("Refresh", mock.Anything, "r").Return("", apierrors.NewErrRefreshTokenNotFound())
			},
			wantStatus: http.StatusForbidden,
			wantBody:   "Refresh token not found\n",
		},
		{
			name: "invalid",
			body: `{"refreshToken":"r"}`,
			setup: func(s *mocks.TokenService) {
				s.On("Refresh", mock.Anything, "r").Return("", apierrors.NewErrRefreshTokenInvalid(model.ErrTokenMalformed))
			},
			wantStatus: http.StatusForbidden,
			wantBody:   "Refresh token invalid\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := mocks.NewTokenService(t)
			tt.setup(tokenService)
			h := NewAuth(mocks.NewAuthService(t), tokenService, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Refresh(rec, newRequest(http.MethodPost, "/refresh", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *mocks.TokenService)
		wantStatus int
	}{
		{
			name: "revoked",
			body: `{"refreshToken":"r"}`,
			setup: func(s *mocks.TokenService) {
				s.On("Revoke", mock.Anything, "r").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing token",
			body:       `{"refreshToken":""}`,
			setup:      func(s *mocks.TokenService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `not json`,
			setup:      func(s *mocks.TokenService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown token",
			body: `{"refreshToken":"r"}`,
			setup: func(s *mocks.TokenService) {
				s.On("Revoke", mock.Anything, "r").Return(apierrors.NewErrRefreshTokenNotFound())
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := mocks.NewTokenService(t)
			tt.setup(tokenService)
			h := NewAuth(mocks.NewAuthService(t), tokenService, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Logout(rec, newRequest(http.MethodDelete, "/logout", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

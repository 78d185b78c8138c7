package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/config"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/mocks"
	"github.com/vocabdeck/vocabdeck-api/internal/service/auth"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

var testAuthConfig = config.AuthConfig{
	TokenLifetimeMinutes:        60,
	RefreshTokenLifetimeMinutes: 1440,
}

func newAuthRouter(users *mocks.MockUserService, jwtService *mocks.MockJWTService, clock clockwork.Clock) http.Handler {
	h := NewAuthHandler(users, jwtService, testAuthConfig, clock)
	return newTestRouter(uuid.Nil, func(r chi.Router) {
		r.Post("/api/auth/register", h.Register)
		r.Post("/api/auth/login", h.Login)
		r.Post("/api/auth/refresh", h.RefreshToken)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}

	tests := []struct {
		name        string
		body        any
		registerErr error
		wantStatus  int
		wantError   string
	}{
		{
			name:       "success",
			body:       RegisterRequest{Email: "ana@example.com", Password: "correct horse battery"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "short password",
			body:       RegisterRequest{Email: "ana@example.com", Password: "short"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid password: too short",
		},
		{
			name:        "email exists",
			body:        RegisterRequest{Email: "ana@example.com", Password: "correct horse battery"},
			registerErr: store.ErrEmailExists,
			wantStatus:  http.StatusConflict,
			wantError:   "Email already exists",
		},
		{
			name:        "store failure",
			body:        RegisterRequest{Email: "ana@example.com", Password: "correct horse battery"},
			registerErr: errors.New("insert into users: connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Failed to create user",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mocks.MockUserService{
				RegisterFn: func(_ context.Context, email, password string) (*domain.User, error) {
					if tc.registerErr != nil {
						return nil, tc.registerErr
					}
					return &domain.User{ID: userID, Email: email}, nil
				},
			}

			rec := doJSON(t, newAuthRouter(users, jwtService, clock), http.MethodPost, "/api/auth/register", tc.body)

			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			if tc.wantError != "" {
				resp := errorBody(t, rec)
				assert.Equal(t, tc.wantError, resp.Error)
				assert.NotContains(t, rec.Body.String(), "connection reset")
				return
			}

			resp := decodeBody[AuthResponse](t, rec)
			assert.Equal(t, userID, resp.UserID)
			assert.Equal(t, "access-token", resp.AccessToken)
			assert.Equal(t, "refresh-token", resp.RefreshToken)
			assert.Equal(t, "2026-03-01T13:00:00Z", resp.ExpiresAt)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &mocks.MockUserService{
		AuthenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email == "ana@example.com" && password == "correct horse battery" {
				return &domain.User{ID: userID, Email: email}, nil
			}
			return nil, auth.ErrInvalidCredentials
		},
	}
	jwtService := &mocks.MockJWTService{Token: "access-token", RefreshToken: "refresh-token"}
	router := newAuthRouter(users, jwtService, clockwork.NewFakeClock())

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
			LoginRequest{Email: "ana@example.com", Password: "correct horse battery"})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[AuthResponse](t, rec)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, []uuid.UUID{userID, userID}, jwtService.Issued)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
			LoginRequest{Email: "ana@example.com", Password: "guess"})

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", errorBody(t, rec).Error)
	})

	t.Run("missing email", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", LoginRequest{Password: "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("token generation fails", func(t *testing.T) {
		failing := &mocks.MockJWTService{Err: errors.New("signing failed")}
		rec := doJSON(t, newAuthRouter(users, failing, nil), http.MethodPost, "/api/auth/login",
			LoginRequest{Email: "ana@example.com", Password: "correct horse battery"})

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to generate authentication tokens", errorBody(t, rec).Error)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var issuedFor uuid.UUID
	jwtService := &mocks.MockJWTService{
		ValidateRefreshTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "good-refresh":
				return &auth.Claims{UserID: userID, TokenType: "refresh"}, nil
			case "old-refresh":
				return nil, auth.ErrExpiredRefreshToken
			case "access-token":
				return nil, auth.ErrWrongTokenType
			default:
				return nil, auth.ErrInvalidRefreshToken
			}
		},
		GenerateTokenFn: func(_ context.Context, id uuid.UUID) (string, error) {
			issuedFor = id
			return "new-access", nil
		},
		RefreshToken: "new-refresh",
	}
	router := newAuthRouter(&mocks.MockUserService{}, jwtService, clockwork.NewFakeClock())

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"valid", RefreshTokenRequest{RefreshToken: "good-refresh"}, http.StatusOK},
		{"expired", RefreshTokenRequest{RefreshToken: "old-refresh"}, http.StatusUnauthorized},
		{"access token", RefreshTokenRequest{RefreshToken: "access-token"}, http.StatusUnauthorized},
		{"garbage", RefreshTokenRequest{RefreshToken: "garbage"}, http.StatusUnauthorized},
		{"missing", map[string]string{}, http.StatusBadRequest},
		{"empty body", nil, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/refresh", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.wantStatus == http.StatusOK {
				resp := decodeBody[RefreshTokenResponse](t, rec)
				assert.Equal(t, "new-access", resp.AccessToken)
				assert.Equal(t, "new-refresh", resp.RefreshToken)
				assert.NotEmpty(t, resp.ExpiresAt)
				assert.Equal(t, userID, issuedFor)
			} else if tc.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Invalid refresh token", errorBody(t, rec).Error)
			}
		})
	}
}

package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/service/auth"
)

// MockJWTService is a configurable auth.JWTService. A non-nil *Fn wins;
// otherwise the canned Token, RefreshToken, Claims and error fields are
// returned. Issued records the user IDs tokens were minted for.
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	Token        string
	RefreshToken string
	Err          error
	Claims       *auth.Claims
	ValidateErr  error

	mu     sync.Mutex
	Issued []uuid.UUID
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) issue(
	ctx context.Context,
	userID uuid.UUID,
	fn func(context.Context, uuid.UUID) (string, error),
	canned string,
) (string, error) {
	m.mu.Lock()
	m.Issued = append(m.Issued, userID)
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, userID)
	}
	return canned, m.Err
}

func (m *MockJWTService) check(
	ctx context.Context,
	token string,
	fn func(context.Context, string) (*auth.Claims, error),
) (*auth.Claims, error) {
	if fn != nil {
		return fn(ctx, token)
	}
	return m.Claims, m.ValidateErr
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.issue(ctx, userID, m.GenerateTokenFn, m.Token)
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.issue(ctx, userID, m.GenerateRefreshTokenFn, m.RefreshToken)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.check(ctx, tokenString, m.ValidateTokenFn)
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.check(ctx, tokenString, m.ValidateRefreshTokenFn)
}

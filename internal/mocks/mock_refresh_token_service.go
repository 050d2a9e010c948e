package mocks

import (
	"context"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockRefreshTokenService implements domain.RefreshTokenService for testing
type MockRefreshTokenService struct {
	CreateFunc        func(ctx context.Context, user *domain.User) (*domain.RefreshToken, error)
	RefreshFunc       func(ctx context.Context, token string) (string, error)
	RevokeForUserFunc func(ctx context.Context, userID uint) error

	RevokedUserIDs []uint
}

// NewMockRefreshTokenService creates a new MockRefreshTokenService with
// default behaviors
func NewMockRefreshTokenService() *MockRefreshTokenService {
	return &MockRefreshTokenService{}
}

// Create creates a refresh token for the user
func (m *MockRefreshTokenService) Create(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return &domain.RefreshToken{ID: 1, UserID: user.ID, Token: "refresh_token_value"}, nil
}

// Refresh mints a new access token for a refresh token
func (m *MockRefreshTokenService) Refresh(ctx context.Context, token string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, token)
	}
	return "", domain.ErrTokenInvalid
}

// RevokeForUser revokes any token owned by the user and records the call
func (m *MockRefreshTokenService) RevokeForUser(ctx context.Context, userID uint) error {
	m.RevokedUserIDs = append(m.RevokedUserIDs, userID)
	if m.RevokeForUserFunc != nil {
		return m.RevokeForUserFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenService = (*MockRefreshTokenService)(nil)

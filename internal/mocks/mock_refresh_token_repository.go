package mocks

import (
	"context"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository for
// testing
type MockRefreshTokenRepository struct {
	CreateFunc         func(ctx context.Context, token *domain.RefreshToken) error
	FindByUserIDFunc   func(ctx context.Context, userID uint) (*domain.RefreshToken, error)
	FindByTokenFunc    func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteFunc         func(ctx context.Context, id uint) error
	DeleteByUserIDFunc func(ctx context.Context, userID uint) error
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository
// with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

// Create creates a new refresh token
func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	token.ID = 1
	return nil
}

// FindByUserID finds a refresh token by owner
func (m *MockRefreshTokenRepository) FindByUserID(ctx context.Context, userID uint) (*domain.RefreshToken, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrRefreshTokenNotFound
}

// FindByToken finds a refresh token by its opaque value
func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrRefreshTokenNotFound
}

// Delete deletes a refresh token by id
func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// DeleteByUserID deletes any refresh token owned by the user
func (m *MockRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

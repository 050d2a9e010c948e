package mocks

import (
	"time"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc func(user *domain.User) (string, error)
	ValidateAccessTokenFunc func(token string) (*domain.TokenClaims, error)
	AccessTokenTTLFunc      func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token
func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return "access_token_" + user.Email, nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// AccessTokenTTL returns the configured access token lifetime
func (m *MockTokenService) AccessTokenTTL() time.Duration {
	if m.AccessTokenTTLFunc != nil {
		return m.AccessTokenTTLFunc()
	}
	return 15 * time.Minute
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)

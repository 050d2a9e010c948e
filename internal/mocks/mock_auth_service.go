package mocks

import (
	"context"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc              func(ctx context.Context, email, password string) (*domain.User, error)
	VerifyEmailFunc           func(ctx context.Context, token string) error
	LoginFunc                 func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshAccessTokenFunc    func(ctx context.Context, refreshToken string) (string, error)
	LogoutFunc                func(ctx context.Context, email string) error
	InitiatePasswordResetFunc func(ctx context.Context, email string) error
	FinalizePasswordResetFunc func(ctx context.Context, token, newPassword string) error
	GetUserProfileFunc        func(ctx context.Context, email string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return &domain.User{ID: 1, Email: email, Roles: []string{domain.RoleUser}}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshAccessTokenFunc != nil {
		return m.RefreshAccessTokenFunc(ctx, refreshToken)
	}
	return "", domain.ErrTokenInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, email string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) InitiatePasswordReset(ctx context.Context, email string) error {
	if m.InitiatePasswordResetFunc != nil {
		return m.InitiatePasswordResetFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) FinalizePasswordReset(ctx context.Context, token, newPassword string) error {
	if m.FinalizePasswordResetFunc != nil {
		return m.FinalizePasswordResetFunc(ctx, token, newPassword)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)

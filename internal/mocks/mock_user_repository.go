package mocks

import (
	"context"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc                   func(ctx context.Context, user *domain.User) error
	FindByEmailFunc              func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc            func(ctx context.Context, email string) (bool, error)
	FindByIDFunc                 func(ctx context.Context, id uint) (*domain.User, error)
	FindByVerificationTokenFunc  func(ctx context.Context, token string) (*domain.User, error)
	FindByPasswordResetTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	UpdateFunc                   func(ctx context.Context, user *domain.User) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

// ExistsByEmail reports whether a user with the email exists
func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// FindByVerificationToken finds a user by verification token
func (m *MockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByVerificationTokenFunc != nil {
		return m.FindByVerificationTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

// FindByPasswordResetToken finds a user by password reset token
func (m *MockUserRepository) FindByPasswordResetToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByPasswordResetTokenFunc != nil {
		return m.FindByPasswordResetTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)

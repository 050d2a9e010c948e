package mocks

import (
	"context"
	"sync"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockMailService implements domain.MailService for testing. Because mail
// dispatch runs on its own goroutine, the mock counts calls under a mutex
// and tests read the counters through the accessor methods.
type MockMailService struct {
	SendVerificationEmailFunc  func(ctx context.Context, user *domain.User) error
	SendPasswordResetEmailFunc func(ctx context.Context, user *domain.User) error

	mu                sync.Mutex
	verificationSends int
	resetSends        int
	lastRecipient     string
}

// NewMockMailService creates a new MockMailService with default behaviors
func NewMockMailService() *MockMailService {
	return &MockMailService{}
}

// SendVerificationEmail records a verification mail dispatch
func (m *MockMailService) SendVerificationEmail(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.verificationSends++
	m.lastRecipient = user.Email
	m.mu.Unlock()
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(ctx, user)
	}
	return nil
}

// SendPasswordResetEmail records a reset mail dispatch
func (m *MockMailService) SendPasswordResetEmail(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.resetSends++
	m.lastRecipient = user.Email
	m.mu.Unlock()
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(ctx, user)
	}
	return nil
}

// VerificationSends returns how many verification emails were dispatched
func (m *MockMailService) VerificationSends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verificationSends
}

// ResetSends returns how many password reset emails were dispatched
func (m *MockMailService) ResetSends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetSends
}

// LastRecipient returns the most recent recipient address
func (m *MockMailService) LastRecipient() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRecipient
}

// Compile-time interface compliance verification
var _ domain.MailService = (*MockMailService)(nil)

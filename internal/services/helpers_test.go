package services

import (
	"testing"
	"time"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
	"github.com/AhmadAkmal83/jwt-sandbox/internal/mocks"
)

// testNow is the frozen reference instant for clock-driven expiry tests
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func createVerifiedUser() *domain.User {
	return &domain.User{
		ID:           1,
		Email:        "user@example.com",
		PasswordHash: "hashed_password123",
		Roles:        []string{domain.RoleUser},
		IsVerified:   true,
	}
}

func createUnverifiedUser(token string, expiry time.Time) *domain.User {
	return &domain.User{
		ID:                      2,
		Email:                   "pending@example.com",
		PasswordHash:            "hashed_password123",
		Roles:                   []string{domain.RoleUser},
		IsVerified:              false,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
}

// waitForMail polls the async mail counter until it reaches want or the
// deadline passes. Mail dispatch runs on its own goroutine, so tests
// cannot assert the counter synchronously.
func waitForMail(t *testing.T, counter func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if counter() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d mail dispatches, got %d", want, counter())
}

// assertNoMail gives the dispatch goroutine a moment to run, then checks
// that nothing was sent.
func assertNoMail(t *testing.T, counter func() int) {
	t.Helper()
	time.Sleep(50 * time.Millisecond)
	if n := counter(); n != 0 {
		t.Fatalf("expected no mail dispatches, got %d", n)
	}
}

type authServiceFixture struct {
	userRepo        *mocks.MockUserRepository
	refreshTokenSvc *mocks.MockRefreshTokenService
	passwordSvc     *mocks.MockPasswordService
	tokenSvc        *mocks.MockTokenService
	mailSvc         *mocks.MockMailService
	clock           *mocks.MockClock
	svc             domain.AuthService
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		userRepo:        mocks.NewMockUserRepository(),
		refreshTokenSvc: mocks.NewMockRefreshTokenService(),
		passwordSvc:     mocks.NewMockPasswordService(),
		tokenSvc:        mocks.NewMockTokenService(),
		mailSvc:         mocks.NewMockMailService(),
		clock:           mocks.NewMockClock(testNow),
	}
	f.svc = NewAuthService(f.userRepo, f.refreshTokenSvc, f.passwordSvc, f.tokenSvc, f.mailSvc, f.clock)
	return f
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

func TestAuthServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(f *authServiceFixture)
		expectedError error
		validate      func(t *testing.T, f *authServiceFixture, user *domain.User)
	}{
		{
			name:     "successful registration",
			email:    "New.User@Example.COM ",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					user.ID = 10
					return nil
				}
			},
			validate: func(t *testing.T, f *authServiceFixture, user *domain.User) {
				if user.Email != "new.user@example.com" {
					t.Errorf("expected normalized email, got %s", user.Email)
				}
				if user.IsVerified {
					t.Error("expected new user to be unverified")
				}
				if user.PasswordHash != "hashed_password123" {
					t.Errorf("expected hashed password, got %s", user.PasswordHash)
				}
				if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
					t.Errorf("expected default USER role, got %v", user.Roles)
				}
				if user.VerificationToken == nil || *user.VerificationToken == "" {
					t.Fatal("expected verification token to be issued")
				}
				if user.VerificationTokenExpiry == nil {
					t.Fatal("expected verification token expiry to be set")
				}
				wantExpiry := testNow.Add(24 * time.Hour)
				if !user.VerificationTokenExpiry.Equal(wantExpiry) {
					t.Errorf("expected expiry %v, got %v", wantExpiry, *user.VerificationTokenExpiry)
				}
				waitForMail(t, f.mailSvc.VerificationSends, 1)
				if got := f.mailSvc.LastRecipient(); got != "new.user@example.com" {
					t.Errorf("expected mail to new.user@example.com, got %s", got)
				}
			},
		},
		{
			name:     "email already exists",
			email:    "taken@example.com",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.ExistsByEmailFunc = func(ctx context.Context, email string) (bool, error) {
					return true, nil
				}
			},
			expectedError: domain.ErrEmailAlreadyExists,
			validate: func(t *testing.T, f *authServiceFixture, user *domain.User) {
				assertNoMail(t, f.mailSvc.VerificationSends)
			},
		},
		{
			name:     "password hashing failure",
			email:    "hash@example.com",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.passwordSvc.HashFunc = func(password string) (string, error) {
					return "", errors.New("bcrypt failure")
				}
			},
			expectedError: errors.New("failed to hash password"),
		},
		{
			name:     "registration survives mail failure",
			email:    "flaky@example.com",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.mailSvc.SendVerificationEmailFunc = func(ctx context.Context, user *domain.User) error {
					return errors.New("postmark unavailable")
				}
			},
			validate: func(t *testing.T, f *authServiceFixture, user *domain.User) {
				if user == nil {
					t.Fatal("expected registration to succeed despite mail failure")
				}
				waitForMail(t, f.mailSvc.VerificationSends, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthServiceFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}

			user, err := f.svc.Register(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if errors.Is(tt.expectedError, domain.ErrEmailAlreadyExists) && !errors.Is(err, domain.ErrEmailAlreadyExists) {
					t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, f, user)
			}
		})
	}
}

func TestAuthServiceImpl_VerifyEmail(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMocks    func(f *authServiceFixture, updated **domain.User)
		expectedError error
		validate      func(t *testing.T, updated *domain.User)
	}{
		{
			name:  "successful verification clears token pair",
			token: "valid-token",
			setupMocks: func(f *authServiceFixture, updated **domain.User) {
				f.userRepo.FindByVerificationTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
					return createUnverifiedUser("valid-token", testNow.Add(time.Hour)), nil
				}
				f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
					*updated = user
					return nil
				}
			},
			validate: func(t *testing.T, updated *domain.User) {
				if updated == nil {
					t.Fatal("expected user to be persisted")
				}
				if !updated.IsVerified {
					t.Error("expected user to be verified")
				}
				if updated.VerificationToken != nil || updated.VerificationTokenExpiry != nil {
					t.Error("expected token pair to be cleared")
				}
			},
		},
		{
			name:  "already verified is idempotent",
			token: "stale-token",
			setupMocks: func(f *authServiceFixture, updated **domain.User) {
				f.userRepo.FindByVerificationTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
					user := createVerifiedUser()
					return user, nil
				}
				f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
					*updated = user
					return nil
				}
			},
			validate: func(t *testing.T, updated *domain.User) {
				if updated != nil {
					t.Error("expected no persistence for an already verified user")
				}
			},
		},
		{
			name:  "unknown token",
			token: "no-such-token",
			setupMocks: func(f *authServiceFixture, updated **domain.User) {
			},
			expectedError: domain.ErrTokenInvalid,
		},
		{
			name:  "expired token",
			token: "old-token",
			setupMocks: func(f *authServiceFixture, updated **domain.User) {
				f.userRepo.FindByVerificationTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
					return createUnverifiedUser("old-token", testNow.Add(-time.Minute)), nil
				}
			},
			expectedError: domain.ErrTokenExpired,
		},
		{
			name:  "token without paired expiry",
			token: "corrupt-token",
			setupMocks: func(f *authServiceFixture, updated **domain.User) {
				f.userRepo.FindByVerificationTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
					user := createUnverifiedUser("corrupt-token", testNow)
					user.VerificationTokenExpiry = nil
					return user, nil
				}
			},
			expectedError: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthServiceFixture()
			var updated *domain.User
			if tt.setupMocks != nil {
				tt.setupMocks(f, &updated)
			}

			err := f.svc.VerifyEmail(context.Background(), tt.token)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, updated)
			}
		})
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(f *authServiceFixture)
		expectedError error
		validate      func(t *testing.T, f *authServiceFixture, result *domain.AuthResult)
	}{
		{
			name:     "successful login",
			email:    "User@Example.com",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					if email != "user@example.com" {
						t.Errorf("expected normalized lookup, got %s", email)
					}
					return createVerifiedUser(), nil
				}
				f.refreshTokenSvc.CreateFunc = func(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
					return &domain.RefreshToken{ID: 1, UserID: user.ID, Token: "opaque-refresh"}, nil
				}
			},
			validate: func(t *testing.T, f *authServiceFixture, result *domain.AuthResult) {
				if result.AccessToken != "access_token_user@example.com" {
					t.Errorf("unexpected access token %s", result.AccessToken)
				}
				if result.RefreshToken != "opaque-refresh" {
					t.Errorf("unexpected refresh token %s", result.RefreshToken)
				}
				if result.ExpiresIn != int64((15 * time.Minute).Seconds()) {
					t.Errorf("expected 900 seconds, got %d", result.ExpiresIn)
				}
				if result.User == nil || result.User.Email != "user@example.com" {
					t.Error("expected authenticated user on the result")
				}
			},
		},
		{
			name:          "unknown email",
			email:         "ghost@example.com",
			password:      "password123",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password fails identically to unknown email",
			email:    "user@example.com",
			password: "wrong-password",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createVerifiedUser(), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "unverified account with correct password",
			email:    "pending@example.com",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createUnverifiedUser("tok", testNow.Add(time.Hour)), nil
				}
			},
			expectedError: domain.ErrAccountNotVerified,
		},
		{
			name:     "unverified account with wrong password reports bad credentials",
			email:    "pending@example.com",
			password: "wrong-password",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createUnverifiedUser("tok", testNow.Add(time.Hour)), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "refresh token creation failure",
			email:    "user@example.com",
			password: "password123",
			setupMocks: func(f *authServiceFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createVerifiedUser(), nil
				}
				f.refreshTokenSvc.CreateFunc = func(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
					return nil, errors.New("storage down")
				}
			},
			expectedError: errors.New("failed to create refresh token"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthServiceFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}

			result, err := f.svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				switch {
				case errors.Is(tt.expectedError, domain.ErrInvalidCredentials):
					if !errors.Is(err, domain.ErrInvalidCredentials) {
						t.Errorf("expected ErrInvalidCredentials, got %v", err)
					}
				case errors.Is(tt.expectedError, domain.ErrAccountNotVerified):
					if !errors.Is(err, domain.ErrAccountNotVerified) {
						t.Errorf("expected ErrAccountNotVerified, got %v", err)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, f, result)
			}
		})
	}
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	t.Run("revokes the refresh token", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return createVerifiedUser(), nil
		}

		if err := f.svc.Logout(context.Background(), "user@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.refreshTokenSvc.RevokedUserIDs) != 1 || f.refreshTokenSvc.RevokedUserIDs[0] != 1 {
			t.Errorf("expected revoke for user 1, got %v", f.refreshTokenSvc.RevokedUserIDs)
		}
	})

	t.Run("unknown identity", func(t *testing.T) {
		f := newAuthServiceFixture()

		err := f.svc.Logout(context.Background(), "ghost@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if len(f.refreshTokenSvc.RevokedUserIDs) != 0 {
			t.Error("expected no revocation for unknown identity")
		}
	})
}

func TestAuthServiceImpl_InitiatePasswordReset(t *testing.T) {
	t.Run("known email sets token pair and dispatches mail", func(t *testing.T) {
		f := newAuthServiceFixture()
		var updated *domain.User
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return createVerifiedUser(), nil
		}
		f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		}

		if err := f.svc.InitiatePasswordReset(context.Background(), "User@Example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("expected user to be persisted")
		}
		if updated.PasswordResetToken == nil || *updated.PasswordResetToken == "" {
			t.Fatal("expected reset token to be issued")
		}
		wantExpiry := testNow.Add(time.Hour)
		if updated.PasswordResetTokenExpiry == nil || !updated.PasswordResetTokenExpiry.Equal(wantExpiry) {
			t.Errorf("expected expiry %v, got %v", wantExpiry, updated.PasswordResetTokenExpiry)
		}
		waitForMail(t, f.mailSvc.ResetSends, 1)
	})

	t.Run("repeat request replaces the previous token", func(t *testing.T) {
		f := newAuthServiceFixture()
		previous := "previous-token"
		previousExpiry := testNow.Add(30 * time.Minute)
		user := createVerifiedUser()
		user.PasswordResetToken = &previous
		user.PasswordResetTokenExpiry = &previousExpiry

		var updated *domain.User
		f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}
		f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
			updated = u
			return nil
		}

		if err := f.svc.InitiatePasswordReset(context.Background(), "user@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.PasswordResetToken == nil || *updated.PasswordResetToken == previous {
			t.Error("expected a fresh reset token to replace the previous one")
		}
	})

	t.Run("unknown email succeeds silently with no side effect", func(t *testing.T) {
		f := newAuthServiceFixture()
		updateCalled := false
		f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updateCalled = true
			return nil
		}

		if err := f.svc.InitiatePasswordReset(context.Background(), "ghost@example.com"); err != nil {
			t.Fatalf("expected silent success, got %v", err)
		}
		if updateCalled {
			t.Error("expected no persistence for an unknown email")
		}
		assertNoMail(t, f.mailSvc.ResetSends)
	})
}

func TestAuthServiceImpl_FinalizePasswordReset(t *testing.T) {
	resetUser := func(expiry *time.Time) *domain.User {
		token := "reset-token"
		user := createVerifiedUser()
		user.PasswordResetToken = &token
		user.PasswordResetTokenExpiry = expiry
		return user
	}

	t.Run("successful reset replaces password and revokes sessions", func(t *testing.T) {
		f := newAuthServiceFixture()
		expiry := testNow.Add(30 * time.Minute)
		var updated *domain.User
		f.userRepo.FindByPasswordResetTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
			return resetUser(&expiry), nil
		}
		f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
			updated = user
			return nil
		}

		if err := f.svc.FinalizePasswordReset(context.Background(), "reset-token", "newpassword1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("expected user to be persisted")
		}
		if updated.PasswordHash != "hashed_newpassword1" {
			t.Errorf("expected new password hash, got %s", updated.PasswordHash)
		}
		if updated.PasswordResetToken != nil || updated.PasswordResetTokenExpiry != nil {
			t.Error("expected reset token pair to be cleared")
		}
		if len(f.refreshTokenSvc.RevokedUserIDs) != 1 || f.refreshTokenSvc.RevokedUserIDs[0] != 1 {
			t.Errorf("expected revoke for user 1, got %v", f.refreshTokenSvc.RevokedUserIDs)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthServiceFixture()

		err := f.svc.FinalizePasswordReset(context.Background(), "no-such-token", "newpassword1")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthServiceFixture()
		expiry := testNow.Add(-time.Minute)
		f.userRepo.FindByPasswordResetTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
			return resetUser(&expiry), nil
		}

		err := f.svc.FinalizePasswordReset(context.Background(), "reset-token", "newpassword1")
		if !errors.Is(err, domain.ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
		if len(f.refreshTokenSvc.RevokedUserIDs) != 0 {
			t.Error("expected no revocation for an expired token")
		}
	})

	t.Run("token without paired expiry", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.userRepo.FindByPasswordResetTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
			return resetUser(nil), nil
		}

		err := f.svc.FinalizePasswordReset(context.Background(), "reset-token", "newpassword1")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  padded@example.com  ", "padded@example.com"},
		{"already@example.com", "already@example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

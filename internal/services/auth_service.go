package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// One-time token lifetimes. Fixed by design, not configuration.
const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

// AuthServiceImpl implements domain.AuthService. It owns the user's
// verification and password-reset state transitions and composes the
// refresh token service for the session use cases.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	refreshTokenSvc domain.RefreshTokenService
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	mailSvc         domain.MailService
	clock           domain.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	refreshTokenSvc domain.RefreshTokenService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailSvc domain.MailService,
	clock domain.Clock,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		refreshTokenSvc: refreshTokenSvc,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		mailSvc:         mailSvc,
		clock:           clock,
	}
}

// NormalizeEmail lower-cases and trims an email address. Uniqueness and
// all lookups operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken := uuid.NewString()
	tokenExpiry := s.clock.Now().Add(verificationTokenTTL)

	user := &domain.User{
		Email:                   email,
		PasswordHash:            hashedPassword,
		Roles:                   []string{domain.RoleUser},
		IsVerified:              false,
		VerificationToken:       &verificationToken,
		VerificationTokenExpiry: &tokenExpiry,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Fire-and-forget: a failed send is the mail service's concern and
	// never rolls back a completed registration.
	s.dispatchMail(user, s.mailSvc.SendVerificationEmail)

	log.Printf("%s: user_id=%d email=%s", domain.UserRegistrationEvent, user.ID, user.Email)
	return user, nil
}

// VerifyEmail implements domain.AuthService. Verifying an already verified
// account succeeds without mutation, so re-clicking a link is not an error.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	if user.IsVerified {
		return nil
	}

	// A token without its paired expiry is corrupt; treat as invalid,
	// not expired.
	if user.VerificationTokenExpiry == nil {
		return domain.ErrTokenInvalid
	}

	if user.VerificationTokenExpiry.Before(s.clock.Now()) {
		log.Printf("%s: user_id=%d email=%s error=%v", domain.EmailVerificationFailure, user.ID, user.Email, domain.ErrTokenExpired)
		return domain.ErrTokenExpired
	}

	user.IsVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpiry = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist verification: %w", err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.EmailVerificationEvent, user.ID, user.Email)
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		log.Printf("%s: email=%s error=%v", domain.UserLoginFailureEvent, NormalizeEmail(email), err)
		return nil, err
	}

	refreshToken, err := s.refreshTokenSvc.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.UserLoginEvent, user.ID, user.Email)
	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    int64(s.tokenSvc.AccessTokenTTL().Seconds()),
	}, nil
}

// authenticate checks credentials and verification state. "No such user"
// and "wrong password" fail identically so account existence never leaks.
func (s *AuthServiceImpl) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, domain.ErrAccountNotVerified
	}

	return user, nil
}

// RefreshAccessToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	return s.refreshTokenSvc.Refresh(ctx, refreshToken)
}

// Logout implements domain.AuthService. The caller's identity arrives as
// the subject of an already-validated access token, never from global
// state.
func (s *AuthServiceImpl) Logout(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.refreshTokenSvc.RevokeForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.UserLogoutEvent, user.ID, user.Email)
	return nil
}

// InitiatePasswordReset implements domain.AuthService. An unknown email
// succeeds silently with no side effect: caller-visible behavior is
// identical whether or not the account exists.
func (s *AuthServiceImpl) InitiatePasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	resetToken := uuid.NewString()
	tokenExpiry := s.clock.Now().Add(passwordResetTokenTTL)

	user.PasswordResetToken = &resetToken
	user.PasswordResetTokenExpiry = &tokenExpiry

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	s.dispatchMail(user, s.mailSvc.SendPasswordResetEmail)

	log.Printf("%s: user_id=%d email=%s", domain.PasswordResetRequestEvent, user.ID, user.Email)
	return nil
}

// FinalizePasswordReset implements domain.AuthService. A completed reset
// revokes every refresh token the user owns, forcing re-login everywhere.
func (s *AuthServiceImpl) FinalizePasswordReset(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByPasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if user.PasswordResetTokenExpiry == nil {
		return domain.ErrTokenInvalid
	}

	if user.PasswordResetTokenExpiry.Before(s.clock.Now()) {
		return domain.ErrTokenExpired
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.PasswordResetToken = nil
	user.PasswordResetTokenExpiry = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist password reset: %w", err)
	}

	if err := s.refreshTokenSvc.RevokeForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.PasswordResetFinalizeEvent, user.ID, user.Email)
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
}

// dispatchMail sends on a fresh goroutine detached from the request
// context; the send may complete before, after, or never relative to the
// caller observing the response.
func (s *AuthServiceImpl) dispatchMail(user *domain.User, send func(context.Context, *domain.User) error) {
	snapshot := *user
	go func() {
		if err := send(context.Background(), &snapshot); err != nil {
			log.Printf("MAIL_DISPATCH_FAILED: user_id=%d email=%s error=%v", snapshot.ID, snapshot.Email, err)
		}
	}()
}

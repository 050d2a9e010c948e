package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// lockReleaseScript deletes the lock key only when it still holds this
// caller's value, so a lock that expired and was re-acquired elsewhere is
// left alone.
const lockReleaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 50 * time.Millisecond
)

// RefreshTokenServiceImpl implements domain.RefreshTokenService. It owns
// the one-active-token-per-user rule: creation runs delete-then-insert,
// serialized per user behind a short-lived Redis lock, with the storage
// unique index as backstop for when the lock cannot be taken.
type RefreshTokenServiceImpl struct {
	tokenRepo  domain.RefreshTokenRepository
	userRepo   domain.UserRepository
	tokenSvc   domain.TokenService
	lockClient domain.LockClient
	clock      domain.Clock
	ttl        time.Duration
}

// NewRefreshTokenService creates a new refresh token service. lockClient
// may be nil, in which case creation relies on the constraint-retry path
// alone.
func NewRefreshTokenService(
	tokenRepo domain.RefreshTokenRepository,
	userRepo domain.UserRepository,
	tokenSvc domain.TokenService,
	lockClient domain.LockClient,
	clock domain.Clock,
	ttl time.Duration,
) domain.RefreshTokenService {
	return &RefreshTokenServiceImpl{
		tokenRepo:  tokenRepo,
		userRepo:   userRepo,
		tokenSvc:   tokenSvc,
		lockClient: lockClient,
		clock:      clock,
		ttl:        ttl,
	}
}

// Create implements domain.RefreshTokenService. Any existing token owned
// by the user is deleted before the new one is inserted; insert-then-delete
// would trip the unique-per-user index.
func (s *RefreshTokenServiceImpl) Create(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
	unlock, err := s.acquireUserLock(ctx, user.ID)
	if err == nil {
		defer unlock()
	}

	token, err := s.createOnce(ctx, user)
	if errors.Is(err, domain.ErrRefreshTokenExists) {
		// Lost a race against a concurrent login for the same user.
		// Retry the delete-then-insert sequence once.
		token, err = s.createOnce(ctx, user)
	}
	return token, err
}

func (s *RefreshTokenServiceImpl) createOnce(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
	existing, err := s.tokenRepo.FindByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrRefreshTokenNotFound) {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if existing != nil {
		if err := s.tokenRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete previous refresh token: %w", err)
		}
	}

	token := &domain.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Refresh implements domain.RefreshTokenService. The refresh token itself
// is not rotated; only a new access token is minted. An expired token is
// purged on sight rather than left for background cleanup.
func (s *RefreshTokenServiceImpl) Refresh(ctx context.Context, token string) (string, error) {
	refreshToken, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshTokenNotFound) {
			return "", domain.ErrTokenInvalid
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if refreshToken.ExpiresAt.Before(s.clock.Now()) {
		if err := s.tokenRepo.Delete(ctx, refreshToken.ID); err != nil {
			return "", fmt.Errorf("failed to purge expired refresh token: %w", err)
		}
		return "", domain.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrTokenInvalid
		}
		return "", fmt.Errorf("failed to load refresh token owner: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	log.Printf("%s: user_id=%d email=%s", domain.TokenRefreshEvent, user.ID, user.Email)
	return accessToken, nil
}

// RevokeForUser implements domain.RefreshTokenService. Revoking when no
// token exists is not an error.
func (s *RefreshTokenServiceImpl) RevokeForUser(ctx context.Context, userID uint) error {
	return s.tokenRepo.DeleteByUserID(ctx, userID)
}

// acquireUserLock serializes token creation per user. Failing to take the
// lock is not fatal: the unique index plus retry covers the race.
func (s *RefreshTokenServiceImpl) acquireUserLock(ctx context.Context, userID uint) (func(), error) {
	if s.lockClient == nil {
		return nil, errors.New("no lock client configured")
	}

	key := fmt.Sprintf("refresh_lock:%d", userID)
	value := uuid.NewString()

	for i := 0; i < lockAttempts; i++ {
		ok, err := s.lockClient.SetNX(ctx, key, value, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire refresh lock: %w", err)
		}
		if ok {
			return func() {
				s.lockClient.Eval(ctx, lockReleaseScript, []string{key}, value)
			}, nil
		}
		time.Sleep(lockBackoff)
	}
	return nil, fmt.Errorf("refresh lock busy for user %d", userID)
}

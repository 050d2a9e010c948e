package domain

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	FindByPasswordResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// RefreshTokenRepository defines refresh token data access operations.
// Create must fail with ErrRefreshTokenExists when the unique-per-user
// constraint is violated.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByUserID(ctx context.Context, userID uint) (*RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

// AuthService defines the use-case surface every external caller talks to
type AuthService interface {
	Register(ctx context.Context, email, password string) (*User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, email string) error
	InitiatePasswordReset(ctx context.Context, email string) error
	FinalizePasswordReset(ctx context.Context, token, newPassword string) error
	GetUserProfile(ctx context.Context, email string) (*User, error)
}

// RefreshTokenService defines refresh token lifecycle operations
type RefreshTokenService interface {
	Create(ctx context.Context, user *User) (*RefreshToken, error)
	Refresh(ctx context.Context, token string) (string, error)
	RevokeForUser(ctx context.Context, userID uint) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines signed access-token operations
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	AccessTokenTTL() time.Duration
}

// MailService defines outbound mail operations. Implementations own their
// failures: a failed send is logged, never returned to the caller's flow.
type MailService interface {
	SendVerificationEmail(ctx context.Context, user *User) error
	SendPasswordResetEmail(ctx context.Context, user *User) error
}

// Clock abstracts time for expiry arithmetic so tests can control it
type Clock interface {
	Now() time.Time
}

// LockClient is the subset of Redis commands the per-user creation lock
// needs. Satisfied by *redis.Client.
type LockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the Casbin enforcer the service uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

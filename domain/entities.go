package domain

import "time"

// Role tags carried by a user and embedded in access-token claims.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account in the system. The verification and reset
// token fields come in pairs: token and expiry are either both set or
// both nil.
type User struct {
	ID                       uint
	Email                    string
	PasswordHash             string
	Roles                    []string
	IsVerified               bool
	VerificationToken        *string
	VerificationTokenExpiry  *time.Time
	PasswordResetToken       *string
	PasswordResetTokenExpiry *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// HasRole reports whether the user carries the given role tag.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RefreshToken is the longer-lived opaque credential used to mint new
// access tokens without re-entering a password. At most one active row
// exists per user.
type RefreshToken struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims represents validated access-token claims.
type TokenClaims struct {
	Subject   string   `json:"sub"`
	Roles     []string `json:"roles"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

// HasRole reports whether the claims carry the given role tag.
func (c *TokenClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

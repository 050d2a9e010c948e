package domain

import "errors"

// Account lifecycle errors
var (
	ErrEmailAlreadyExists = errors.New("a user with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrUserNotFound       = errors.New("user not found")
)

// One-time and refresh token errors. ErrTokenInvalid covers malformed,
// unknown and corrupt-pairing tokens alike; ErrTokenExpired is reserved
// for well-formed tokens that are past their expiry.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExists   = errors.New("refresh token already exists for user")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)

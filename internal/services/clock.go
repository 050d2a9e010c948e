package services

import (
	"time"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// SystemClock implements domain.Clock over the wall clock
type SystemClock struct{}

// NewSystemClock creates a new system clock
func NewSystemClock() domain.Clock {
	return SystemClock{}
}

// Now implements domain.Clock
func (SystemClock) Now() time.Time {
	return time.Now()
}

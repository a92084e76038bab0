package services

import (
	"errors"
	"fmt"
	"time"
)

// Custom errors
var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrCandidateExists    = errors.New("candidate name already exists")
	ErrDailyLimitExceeded = errors.New("daily vote limit exceeded")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidImage       = errors.New("invalid image")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// DailyLimitError reports when the user may vote again.
type DailyLimitError struct {
	NextVoteAt time.Time
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("%s: next vote allowed at %s", ErrDailyLimitExceeded, e.NextVoteAt.Format(time.RFC3339))
}

func (e *DailyLimitError) Is(target error) bool {
	return target == ErrDailyLimitExceeded
}

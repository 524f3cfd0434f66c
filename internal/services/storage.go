package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tripvista/travel-backend/internal/utils"
	"gorm.io/gorm"
)

// ErrServiceUnavailable surfaces after transient storage failures exhaust the
// bounded retry budget. Callers may retry; the service will not on its own.
var ErrServiceUnavailable = errors.New("storage temporarily unavailable")

var storageRetry = utils.RetryConfig{
	MaxAttempts: 2,
	BaseDelay:   50 * time.Millisecond,
}

// isFinal reports whether err is a semantically-final outcome that must never
// be retried or remapped to ErrServiceUnavailable.
func isFinal(err error) bool {
	for _, final := range []error{
		ErrInvalidValue,
		ErrAlreadyRated,
		ErrRatingNotFound,
		ErrInvalidLength,
		ErrNotOwner,
		ErrCommentNotFound,
		gorm.ErrRecordNotFound,
		gorm.ErrDuplicatedKey,
	} {
		if errors.Is(err, final) {
			return true
		}
	}
	return false
}

func withStorageRetry(operation string, fn func() error) error {
	err := storageRetry.Do(operation, func(e error) bool { return !isFinal(e) }, fn)
	if err != nil && !isFinal(err) {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return err
}

package utils

import (
	"fmt"
	"time"

	"github.com/tripvista/travel-backend/pkg/logger"
)

// RetryConfig holds the parameters for the bounded retry strategy applied to
// transient storage failures.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Do executes fn with bounded back-off. The shouldRetry predicate keeps
// semantically-final errors (validation, conflict, not-found) from being
// retried.
func (r RetryConfig) Do(operationName string, shouldRetry func(error) bool, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || !shouldRetry(lastErr) {
			return lastErr
		}

		if attempt < r.MaxAttempts {
			logger.WithFields(map[string]interface{}{
				"operation": operationName,
				"attempt":   attempt,
				"max":       r.MaxAttempts,
				"error":     lastErr.Error(),
			}).Warn("transient storage failure, retrying")
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}

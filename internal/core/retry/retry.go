package retry

import (
	"context"
	"fmt"
	"time"

	"parcel-admin/internal/core/logger"

	"go.uber.org/zap"
)

// Policy describes how a transiently failing operation is retried.
type Policy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int
	// BaseDelay is the wait after the first failure; it doubles after each further failure.
	BaseDelay time.Duration
	// IsTransient decides whether an error is worth another attempt.
	// A nil classifier retries nothing.
	IsTransient func(error) bool
}

// Do runs op until it succeeds, returns a non-transient error, the attempts are
// exhausted, or ctx is done. The last error is returned wrapped.
func Do(ctx context.Context, p Policy, name string, op func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = op(ctx); err == nil {
			return nil
		}

		if p.IsTransient == nil || !p.IsTransient(err) {
			return err
		}

		if i == attempts-1 {
			break
		}

		delay := p.BaseDelay << i
		logger.Named("retry").Warn("Transient failure, retrying",
			zap.String("operation", name),
			zap.Int("attempt", i+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w (last error: %v)", name, ctx.Err(), err)
		case <-timer.C:
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, err)
}

package bench

import (
	"context"
	"time"
)

const (
	minBackoff = 100 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// withRetry runs fn once plus up to maxRetries more times, doubling the wait
// between attempts from baseDelay and capping it at maxBackoff.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	delay := baseDelay
	if delay <= 0 {
		delay = minBackoff
	}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay = min(delay*2, maxBackoff)
		}
		if err = fn(ctx); err == nil {
			return nil
		}
	}
	return err
}

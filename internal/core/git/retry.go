package git

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"
)

// RetryPolicy bounds how often a git step is repeated while another process
// holds the repository lock.
type RetryPolicy struct {
	// MaxRetries does not count the first attempt.
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	UseJitter  bool
}

// DefaultRetryPolicy covers editors and file watchers that run git status
// against a directory as soon as it appears.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries: 4,
	BaseDelay:  100 * time.Millisecond,
	MaxDelay:   2 * time.Second,
	UseJitter:  true,
}

// errLockHeld marks a git failure caused by an existing index.lock.
var errLockHeld = errors.New("git: repository lock held by another process")

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errLockHeld) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "index.lock") || (strings.Contains(msg, "Unable to create") && strings.Contains(msg, ".lock"))
}

// retryLocked runs fn until it succeeds, fails with a non-lock error or the
// policy is exhausted. The last error is returned unchanged.
func retryLocked(ctx context.Context, p RetryPolicy, fn func() error) error {
	var last error
	for attempt := range p.MaxRetries + 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn()
		if last == nil || !isLockError(last) {
			return last
		}
		if attempt == p.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt, p)):
		}
	}
	return last
}

// backoff doubles BaseDelay per attempt, capped at MaxDelay. Jitter scales the
// delay into [0.5, 1.5) before the cap applies.
func backoff(attempt int, p RetryPolicy) time.Duration {
	base, limit := p.BaseDelay, p.MaxDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	if limit <= 0 {
		limit = 2 * time.Second
	}
	delay := base
	for range attempt {
		delay *= 2
		if delay >= limit {
			delay = limit
			break
		}
	}
	if p.UseJitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	return min(delay, limit)
}

package util

import (
	"context"
	"time"
)

// Retry runs fn up to attempts times with exponential backoff starting at
// base (1s, 2s, 4s for three attempts). It stops early when the context is
// done and returns the last error.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func() error) error {
	var err error
	delay := base
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

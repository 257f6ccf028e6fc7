package imu

import (
	"context"
	"time"
)

// Clock abstracts the settle delays a chip requires after configuration
// writes. Drivers call Delay instead of sleeping so tests can substitute
// an instant clock.
type Clock interface {
	// Delay blocks for at least d of elapsed real time, or until the
	// context is canceled, in which case the context error is returned.
	Delay(ctx context.Context, d time.Duration) error
}

// WallClock is the default Clock backed by a timer.
type WallClock struct{}

func (WallClock) Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopClock skips delays entirely. Meant for tests and for buses where
// transaction round-trip time already exceeds the chip's settle time.
type NopClock struct{}

func (NopClock) Delay(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

package utils

import (
	"context"
	"sync"
	"time"
)

type SleepFunc func(ctx context.Context, d time.Duration) error

var (
	sleepFunc SleepFunc
	mu        sync.Mutex
)

func init() {
	ResetSleepFunc()
}

// Sleep waits for d or until ctx is done, whichever comes first. It returns
// ctx.Err() when the wait was cut short.
func Sleep(ctx context.Context, d time.Duration) error {
	mu.Lock()
	f := sleepFunc
	mu.Unlock()
	return f(ctx, d)
}

// SetSleepFunc overrides the wait, primarily for testing.
func SetSleepFunc(f SleepFunc) {
	mu.Lock()
	sleepFunc = f
	mu.Unlock()
}

func ResetSleepFunc() {
	SetSleepFunc(contextSleep)
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"context"
	"time"
)

// TimeSource provides the current UTC time and exists so that tests and
// simulations can supply synthetic clocks. The engine itself never holds a
// clock; a TimeSource is passed in per call.
type TimeSource interface {
	Now() time.Time
}

// SystemTimeSource reads the system clock.
type SystemTimeSource struct{}

func (SystemTimeSource) Now() time.Time { return time.Now() }

// Suspend is the environment's task suspension primitive: it parks the
// calling task for the duration and returns nil when the wait completed,
// or the cancellation cause when it was aborted.
type Suspend func(ctx context.Context, d time.Duration) error

// Sleep is the default Suspend, waiting on the context and a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Wait suspends the calling task until the next boundary strictly after
// the current time. Cancellation aborts the wait and is returned as the
// context's error; no engine state is mutated either way, so Wait and
// Elapsed can be used together without interfering.
func (e *Engine) Wait(ctx context.Context, ts TimeSource) error {
	return e.WaitFunc(ctx, ts, Sleep)
}

// WaitFunc is Wait with an explicit suspension primitive, decoupling how
// long to wait, which is pure arithmetic, from how to wait.
func (e *Engine) WaitFunc(ctx context.Context, ts TimeSource, suspend Suspend) error {
	if ts == nil {
		ts = SystemTimeSource{}
	}
	return suspend(ctx, e.SleepDuration(ts.Now().Unix()))
}

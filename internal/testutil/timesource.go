// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package testutil provides mocks shared by the sampler and command
// tests: a scripted sensor and deterministic time sources.
package testutil

import (
	"sync"
	"time"
)

// ScriptedTimeSource delivers exactly the instants pushed via Tick, in
// order; Now blocks until the next instant is available. It gives tests
// complete control over the clock observed by polling loops.
type ScriptedTimeSource struct {
	ch chan time.Time
}

func NewScriptedTimeSource() *ScriptedTimeSource {
	return &ScriptedTimeSource{ch: make(chan time.Time, 16)}
}

func (t *ScriptedTimeSource) Now() time.Time {
	return <-t.ch
}

// Tick queues the next instant to be returned by Now.
func (t *ScriptedTimeSource) Tick(when time.Time) {
	t.ch <- when
}

// StepTimeSource starts at a fixed instant and advances by a fixed step
// on every Now call.
type StepTimeSource struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewStepTimeSource(start time.Time, step time.Duration) *StepTimeSource {
	return &StepTimeSource{now: start, step: step}
}

func (t *StepTimeSource) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now
	t.now = now.Add(t.step)
	return now
}

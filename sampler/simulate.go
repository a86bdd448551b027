// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sampler

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/sync/errgroup"
	"github.com/cosnicolaou/wallclock/interval"
)

// ticksForTask precomputes the instants a wait-mode task observes over
// [from, to]: the starting instant and then every boundary. Each cycle
// samples and therefore reads the clock twice, so every instant appears
// twice.
func ticksForTask(task Task, from, to time.Time) ([]time.Time, error) {
	engine, err := interval.NewEngine(task.Spec)
	if err != nil {
		return nil, err
	}
	ticks := []time.Time{from, from}
	for cur := engine.NextBoundary(from.Unix()); cur <= to.Unix(); cur = engine.NextBoundary(cur) {
		w := time.Unix(cur, 0).UTC()
		ticks = append(ticks, w, w)
	}
	return ticks, nil
}

type timesource struct {
	ch    chan time.Time
	ticks []time.Time
}

func (t timesource) Now() time.Time {
	return <-t.ch
}

// run feeds the ticks and closes the channel when done so that a
// sampler blocked on Now observes the shutdown rather than hanging.
func (t timesource) run(ctx context.Context) error {
	defer close(t.ch)
	for _, tick := range t.ticks {
		select {
		case t.ch <- tick:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// elideSleep stands in for real suspension during simulations.
func elideSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// RunSimulation runs every task in the system over [from, to] using a
// simulated clock that jumps from boundary to boundary, with no real
// sleeping. Tasks observe exactly the instants they would have woken at.
func RunSimulation(ctx context.Context, system System, from, to time.Time, opts ...Option) error {
	timeSources := make([]timesource, len(system.Tasks))
	samplers := make([]*Sampler, len(system.Tasks))
	for i, task := range system.Tasks {
		ticks, err := ticksForTask(task, from.UTC(), to.UTC())
		if err != nil {
			return fmt.Errorf("failed to compute ticks for %v: %w", task.Name, err)
		}
		timeSources[i] = timesource{ch: make(chan time.Time), ticks: ticks}
		psopts := opts
		psopts = append(psopts,
			WithTimeSource(timeSources[i]),
			WithSuspend(elideSleep),
			WithCycleLimit(len(ticks)/2))
		s, err := New(task, psopts...)
		if err != nil {
			return fmt.Errorf("failed to create sampler for %v: %w", task.Name, err)
		}
		samplers[i] = s
	}
	var g errgroup.T
	for i, s := range samplers {
		g.Go(func() error {
			return s.Run(ctx)
		})
		g.Go(func() error {
			return timeSources[i].run(ctx)
		})
	}
	return g.Wait()
}

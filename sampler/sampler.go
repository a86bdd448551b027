// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package sampler runs sampling tasks: cooperative loops that read a
// sensor once per interval boundary. A task either suspends until the
// next boundary or, when configured with a poll cadence, wakes at that
// cadence and uses the edge-triggered boundary poll. Each wake reads
// the clock once to decide whether a boundary elapsed and how long to
// suspend, and once more after a read completes, so synthetic time
// sources drive the loop deterministically.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloudeng.io/sync/errgroup"
	"github.com/cosnicolaou/wallclock/internal/logging"
	"github.com/cosnicolaou/wallclock/interval"
	"github.com/cosnicolaou/wallclock/timezone"
)

type Option func(o *options)

type options struct {
	timeSource interval.TimeSource
	logger     *slog.Logger
	recorder   *logging.StatusRecorder
	suspend    interval.Suspend
	tz         timezone.Info
	cycles     int
}

// WithTimeSource sets the clock read once per cycle and is primarily
// intended for testing and simulation.
func WithTimeSource(ts interval.TimeSource) Option {
	return func(o *options) {
		o.timeSource = ts
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStatusRecorder records every tick and its read outcome for the
// status command.
func WithStatusRecorder(sr *logging.StatusRecorder) Option {
	return func(o *options) {
		o.recorder = sr
	}
}

// WithTimezone sets the policy used to render boundaries as local
// wall-clock time in the logs. The zero Info renders GMT.
func WithTimezone(tz timezone.Info) Option {
	return func(o *options) {
		o.tz = tz
	}
}

// WithSuspend replaces the task suspension primitive; simulations use
// this to elide real sleeps.
func WithSuspend(s interval.Suspend) Option {
	return func(o *options) {
		o.suspend = s
	}
}

// WithCycleLimit stops the task after n wake cycles; zero means run
// until cancelled.
func WithCycleLimit(n int) Option {
	return func(o *options) {
		o.cycles = n
	}
}

// Sampler is the run loop for a single task.
type Sampler struct {
	options
	task   Task
	engine *interval.Engine
}

// New creates a sampler for the supplied task.
func New(task Task, opts ...Option) (*Sampler, error) {
	if task.Sensor == nil {
		return nil, fmt.Errorf("task %v has no sensor", task.Name)
	}
	engine, err := interval.NewEngine(task.Spec)
	if err != nil {
		return nil, fmt.Errorf("task %v: %w", task.Name, err)
	}
	s := &Sampler{task: task, engine: engine}
	for _, opt := range opts {
		opt(&s.options)
	}
	if s.timeSource == nil {
		s.timeSource = interval.SystemTimeSource{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	if s.suspend == nil {
		s.suspend = interval.Sleep
	}
	s.logger = s.logger.With("mod", "sampler")
	return s, nil
}

func (s *Sampler) Task() Task { return s.task }

// Run executes the task until its context is cancelled or its cycle
// limit is reached. The returned error is nil when the cycle limit was
// reached and the context's error when it was cancelled.
func (s *Sampler) Run(ctx context.Context) error {
	task, snr := s.task.Name, s.task.Sensor.Name()
	logging.WriteStartLog(s.logger, task, snr, s.task.Spec.String())
	for cycle := 0; s.cycles == 0 || cycle < s.cycles; cycle++ {
		now := s.timeSource.Now()
		if s.engine.Elapsed(now.Unix()) {
			s.sample(ctx, now)
		}
		delay := s.task.Poll
		if delay == 0 {
			delay = s.engine.SleepDuration(now.Unix())
		}
		logging.WriteSleepLog(s.logger, task, now, delay)
		if err := s.suspend(ctx, delay); err != nil {
			logging.WriteStopLog(s.logger, task, err)
			return err
		}
	}
	logging.WriteStopLog(s.logger, task, nil)
	return nil
}

func (s *Sampler) sample(ctx context.Context, now time.Time) {
	task, snr := s.task.Name, s.task.Sensor.Name()
	epoch := s.engine.BoundaryAt(now.Unix())
	boundary := time.Unix(epoch, 0).UTC()
	drift := now.Sub(boundary)
	id := logging.WriteTickLog(s.logger, task, snr, boundary, now, drift,
		s.tz.Localtime(epoch).String())

	var rec *logging.TickRecord
	if s.recorder != nil {
		rec = s.recorder.NewPending(&logging.TickRecord{
			Task:     task,
			Sensor:   snr,
			ID:       id,
			Boundary: boundary,
			Drift:    drift,
		}, now)
	}
	reading, err := s.task.Sensor.Read(ctx)
	done := s.timeSource.Now()
	logging.WriteSampleLog(s.logger, id, err, task, snr, reading.Values, now, done, done.Sub(now))
	if s.recorder != nil {
		s.recorder.PendingDone(rec, reading.Values, err, done)
	}
}

// RunSamplers runs one sampler per task in the system, all sharing the
// supplied options, and returns when all have stopped.
func RunSamplers(ctx context.Context, system System, opts ...Option) error {
	samplers := make([]*Sampler, 0, len(system.Tasks))
	for _, task := range system.Tasks {
		s, err := New(task, opts...)
		if err != nil {
			return fmt.Errorf("failed to create sampler for %v: %w", task.Name, err)
		}
		samplers = append(samplers, s)
	}
	var g errgroup.T
	for _, s := range samplers {
		g.Go(func() error {
			return s.Run(ctx)
		})
	}
	return g.Wait()
}

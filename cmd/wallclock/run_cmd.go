// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cloudeng.io/datetime"
	"github.com/cosnicolaou/wallclock/internal/logging"
	"github.com/cosnicolaou/wallclock/sampler"
	"github.com/cosnicolaou/wallclock/sensor"
)

type RunFlags struct {
	ConfigFileFlags
	LogFile string `subcmd:"log-file,,log file"`
}

type SimulateFlags struct {
	ConfigFileFlags
	LogFile   string `subcmd:"log-file,,log file"`
	DateRange string `subcmd:"date-range,,date range in <year>/<month>/<day>:<year>/<month>/<day> format"`
}

type Run struct {
	out io.Writer
}

func (r *Run) setupLogging(logfile string) (*slog.Logger, func(), error) {
	if len(logfile) == 0 {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil)), func() {}, nil
	}
	f, err := newLogfile(logfile)
	if err != nil {
		return nil, func() {}, err
	}
	l := slog.New(slog.NewJSONHandler(f, nil))
	return l, func() { f.Close() }, nil
}

func (r *Run) Tasks(ctx context.Context, flags any, args []string) error {
	fv := flags.(*RunFlags)
	logger, cleanup, err := r.setupLogging(fv.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	system, err := loadSystem(ctx, &fv.ConfigFileFlags, sensor.WithLogger(logger))
	if err != nil {
		return err
	}
	if len(args) > 0 {
		tasks := make([]sampler.Task, 0, len(args))
		for _, name := range args {
			task, ok := system.LookupTask(name)
			if !ok {
				return fmt.Errorf("unknown task: %v", name)
			}
			tasks = append(tasks, task)
		}
		system.Tasks = tasks
	}

	sr := logging.NewStatusRecorder()
	opts := []sampler.Option{
		sampler.WithLogger(logger),
		sampler.WithStatusRecorder(sr),
		sampler.WithTimezone(system.TZ),
	}

	logger.Info("starting tasks", "tz", system.TZ.String(), "#tasks", len(system.Tasks))
	return sampler.RunSamplers(ctx, system, opts...)
}

func (r *Run) Simulate(ctx context.Context, flags any, args []string) error {
	fv := flags.(*SimulateFlags)
	var period datetime.CalendarDateRange
	if err := period.Parse(fv.DateRange); err != nil {
		return err
	}
	from := time.Date(period.From().Year(), time.Month(period.From().Month()), period.From().Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(period.To().Year(), time.Month(period.To().Month()), period.To().Day(), 23, 59, 59, 0, time.UTC)

	logger, cleanup, err := r.setupLogging(fv.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	system, err := loadSystem(ctx, &fv.ConfigFileFlags, sensor.WithLogger(logger))
	if err != nil {
		return err
	}

	sr := logging.NewStatusRecorder()
	opts := []sampler.Option{
		sampler.WithLogger(logger),
		sampler.WithStatusRecorder(sr),
		sampler.WithTimezone(system.TZ),
	}

	logger.Info("starting simulated tasks", "period", period.String(), "tz", system.TZ.String(), "#tasks", len(system.Tasks))
	if err := sampler.RunSimulation(ctx, system, from, to, opts...); err != nil {
		return err
	}
	fmt.Fprintln(r.out, newTableManager().Completed(sr).Render())
	return nil
}

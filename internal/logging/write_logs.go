// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package logging defines the structured log vocabulary shared by the
// sampler and the log analysis commands: writers that emit slog records
// with a fixed set of keys, a scanner that parses them back, and an
// in-memory recorder for the status command.
package logging

import (
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	LogStart  = "start"
	LogTick   = "tick"
	LogSample = "sample"
	LogFailed = "failed"
	LogSleep  = "sleep"
	LogStop   = "stop"
)

var invocationID int64

// WriteStartLog records a sampling task starting up.
func WriteStartLog(l *slog.Logger, task, sensor, spec string) {
	l.Info(LogStart, "task", task, "sensor", sensor, "spec", spec)
}

// WriteTickLog records an interval boundary being observed and must be
// called once per elapsed boundary. local is the boundary rendered as
// local wall-clock time under the system's timezone policy. It returns
// a unique identifier for the tick that must be passed to
// WriteSampleLog.
func WriteTickLog(l *slog.Logger, task, sensor string, boundary, now time.Time, drift time.Duration, local string) int64 {
	id := atomic.AddInt64(&invocationID, 1)
	l.Info(LogTick,
		"id", id,
		"task", task,
		"sensor", sensor,
		"boundary", boundary,
		"local", local,
		"now", now,
		"drift", drift)
	return id
}

// WriteSampleLog records the outcome of the read triggered by a tick.
// The id must be the value returned by WriteTickLog.
func WriteSampleLog(l *slog.Logger, id int64, err error, task, sensor string, values map[string]float64, started, now time.Time, elapsed time.Duration) {
	msg := LogSample
	if err != nil {
		msg = LogFailed
	}
	l.Info(msg,
		"id", id,
		"task", task,
		"sensor", sensor,
		"values", values,
		"started", started,
		"now", now,
		"elapsed", elapsed,
		"err", err)
}

// WriteSleepLog records the task suspending until its next boundary.
func WriteSleepLog(l *slog.Logger, task string, now time.Time, d time.Duration) {
	l.Debug(LogSleep, "task", task, "now", now, "sleep", d)
}

// WriteStopLog records a sampling task shutting down.
func WriteStopLog(l *slog.Logger, task string, err error) {
	l.Info(LogStop, "task", task, "err", err)
}

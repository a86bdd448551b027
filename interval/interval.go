// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package interval provides a recurring wall-clock interval primitive for
// cooperative tasks: an edge-triggered poll that reports each elapsed
// period boundary exactly once, and a computation of how long to suspend
// until the next boundary.
//
// Boundaries are anchored to the UTC epoch origin rather than to any
// engine's construction time, so "every 5 minutes" always lands on minute
// marks 00, 05, 10, ... and independently constructed engines with the
// same spec agree on every boundary. An optional offset shifts the phase
// within the period: "every 5 minutes, offset by 1" lands on 01, 06, 11...
package interval

import (
	"errors"
	"fmt"
	"time"
)

// Unit is the precision unit of an interval specification.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
)

// Seconds returns the size of the unit in seconds.
func (u Unit) Seconds() int64 {
	switch u {
	case Second:
		return 1
	case Minute:
		return 60
	case Hour:
		return 3600
	case Day:
		return 86400
	}
	return 0
}

func (u Unit) String() string {
	switch u {
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

func (u Unit) suffix() string {
	return []string{"s", "m", "h", "d"}[u]
}

// ParseUnit accepts the single letter suffixes s, m, h and d as well as
// the spelled out unit names.
func ParseUnit(val string) (Unit, error) {
	switch val {
	case "s", "second", "seconds":
		return Second, nil
	case "m", "minute", "minutes":
		return Minute, nil
	case "h", "hour", "hours":
		return Hour, nil
	case "d", "day", "days":
		return Day, nil
	}
	return 0, fmt.Errorf("invalid interval unit: %q", val)
}

// MaxPeriod bounds the absolute duration of any interval specification.
const MaxPeriod = 28 * 24 * time.Hour

var (
	ErrPeriodRange = errors.New("interval period out of range")
	ErrOffsetRange = errors.New("interval offset out of range")
)

// Spec describes a recurring wall-clock boundary: every period units,
// shifted into the period by offset units. Specs are validated at
// construction and immutable afterwards.
type Spec struct {
	unit   Unit
	period int
	offset int
}

// NewSpec returns a Spec after validating that the period's absolute
// duration is in [1 second, 28 days] inclusive and that the offset is in
// [0, period-1].
func NewSpec(unit Unit, period, offset int) (Spec, error) {
	if unit.Seconds() == 0 {
		return Spec{}, fmt.Errorf("invalid interval unit: %v", int(unit))
	}
	if period < 1 {
		return Spec{}, fmt.Errorf("%w: period must be at least 1 %v", ErrPeriodRange, unit)
	}
	if maxPeriod := int64(MaxPeriod/time.Second) / unit.Seconds(); int64(period) > maxPeriod {
		return Spec{}, fmt.Errorf("%w: %v %vs exceeds %v", ErrPeriodRange, period, unit, MaxPeriod)
	}
	if offset < 0 || offset >= period {
		return Spec{}, fmt.Errorf("%w: offset %v not in [0, %v]", ErrOffsetRange, offset, period-1)
	}
	return Spec{unit: unit, period: period, offset: offset}, nil
}

func (s Spec) Unit() Unit  { return s.unit }
func (s Spec) Period() int { return s.period }
func (s Spec) Offset() int { return s.offset }

func (s Spec) periodSeconds() int64 { return int64(s.period) * s.unit.Seconds() }
func (s Spec) offsetSeconds() int64 { return int64(s.offset) * s.unit.Seconds() }

// PeriodDuration returns the absolute duration of one period.
func (s Spec) PeriodDuration() time.Duration {
	return time.Duration(s.periodSeconds()) * time.Second
}

// OffsetDuration returns the absolute duration of the phase offset.
func (s Spec) OffsetDuration() time.Duration {
	return time.Duration(s.offsetSeconds()) * time.Second
}

// String renders the spec in the form accepted by ParseSpec, eg. "5m+1m".
func (s Spec) String() string {
	if s.offset == 0 {
		return fmt.Sprintf("%d%s", s.period, s.unit.suffix())
	}
	return fmt.Sprintf("%d%s+%d%s", s.period, s.unit.suffix(), s.offset, s.unit.suffix())
}

// Engine tracks period boundaries for a single task. Each task owns its
// own engine; instances are not safe for concurrent use and are not meant
// to be shared. The zero Engine is not usable, construct one with
// NewEngine.
type Engine struct {
	spec         Spec
	lastBoundary int64
	reported     bool
}

// NewEngine returns an Engine for the supplied spec.
func NewEngine(spec Spec) (*Engine, error) {
	if spec.periodSeconds() == 0 {
		return nil, fmt.Errorf("%w: zero spec", ErrPeriodRange)
	}
	return &Engine{spec: spec}, nil
}

func (e *Engine) Spec() Spec { return e.spec }

// BoundaryAt returns the most recent boundary at or before now.
func (e *Engine) BoundaryAt(now int64) int64 {
	period, offset := e.spec.periodSeconds(), e.spec.offsetSeconds()
	return now - floorMod(now-offset, period)
}

// NextBoundary returns the first boundary strictly after now.
func (e *Engine) NextBoundary(now int64) int64 {
	return e.BoundaryAt(now) + e.spec.periodSeconds()
}

// Elapsed is the non-suspending edge-triggered poll: it returns true the
// first time it observes a boundary that has not been reported before and
// false on every other call. The first call on a fresh engine reports the
// boundary of the period already in progress. Callers must poll at least
// as often as the period; boundaries that fall entirely between two polls
// are skipped silently.
func (e *Engine) Elapsed(now int64) bool {
	boundary := e.BoundaryAt(now)
	if e.reported && boundary <= e.lastBoundary {
		return false
	}
	e.lastBoundary = boundary
	e.reported = true
	return true
}

// SleepDuration returns how long a task should suspend from now to wake
// at the next boundary. It never returns zero and does not interact with
// the boundary bookkeeping used by Elapsed.
func (e *Engine) SleepDuration(now int64) time.Duration {
	return time.Duration(e.NextBoundary(now)-now) * time.Second
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

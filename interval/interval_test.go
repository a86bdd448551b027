// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval_test

import (
	"errors"
	"testing"
	"time"

	"github.com/cosnicolaou/wallclock/interval"
)

// 2024-07-01T10:37:00Z and friends; midnight of that day is divisible by
// 86400 so minute marks land on multiples of 60.
const (
	at1037 = 1719830220
	at1040 = 1719830400
	at1041 = 1719830460
)

func newSpec(t *testing.T, unit interval.Unit, period, offset int) interval.Spec {
	t.Helper()
	s, err := interval.NewSpec(unit, period, offset)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newEngine(t *testing.T, unit interval.Unit, period, offset int) *interval.Engine {
	t.Helper()
	e, err := interval.NewEngine(newSpec(t, unit, period, offset))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestSpecValidation(t *testing.T) {
	for _, tc := range []struct {
		unit           interval.Unit
		period, offset int
		err            error
	}{
		{interval.Second, 1, 0, nil},
		{interval.Minute, 5, 1, nil},
		{interval.Minute, 5, 4, nil},
		{interval.Hour, 672, 0, nil},       // 28 days expressed in hours
		{interval.Day, 28, 27, nil},        // 28 days exactly at the cap
		{interval.Second, 2419200, 0, nil}, // 28 days expressed in seconds
		{interval.Second, 2419201, 0, interval.ErrPeriodRange},
		{interval.Hour, 673, 0, interval.ErrPeriodRange},
		{interval.Day, 29, 0, interval.ErrPeriodRange},
		{interval.Minute, 0, 0, interval.ErrPeriodRange},
		{interval.Minute, -5, 0, interval.ErrPeriodRange},
		{interval.Minute, 5, 5, interval.ErrOffsetRange},
		{interval.Minute, 5, -1, interval.ErrOffsetRange},
	} {
		_, err := interval.NewSpec(tc.unit, tc.period, tc.offset)
		if !errors.Is(err, tc.err) {
			t.Errorf("%v %v+%v: got %v, want %v", tc.period, tc.unit, tc.offset, err, tc.err)
		}
	}
}

func TestBoundaryAnchoring(t *testing.T) {
	// Boundaries are anchored to the epoch origin, so two independently
	// constructed engines agree on them.
	a := newEngine(t, interval.Minute, 5, 0)
	b := newEngine(t, interval.Minute, 5, 0)
	for _, now := range []int64{at1037, at1040, at1041, 0, 59, 299, 300} {
		if got, want := a.BoundaryAt(now), b.BoundaryAt(now); got != want {
			t.Errorf("%v: got %v, want %v", now, got, want)
		}
	}
	if got, want := a.BoundaryAt(at1037), int64(at1040-300); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := a.NextBoundary(at1037), int64(at1040); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// A day-unit engine lands on midnight.
	day := newEngine(t, interval.Day, 1, 0)
	if got, want := day.BoundaryAt(at1037), int64(1719792000); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestElapsedEdgeTriggered(t *testing.T) {
	e := newEngine(t, interval.Minute, 5, 0)
	// The first poll reports the boundary of the period in progress.
	if !e.Elapsed(at1037 - 60) {
		t.Errorf("expected true on the first poll")
	}
	// Polling once a minute across exactly one boundary: true exactly once
	// at the boundary, false everywhere else.
	want := map[int64]bool{
		at1037:       false,
		at1037 + 60:  false,
		at1037 + 120: false,
		at1040:       true,
		at1041:       false,
		at1041 + 60:  false,
		at1041 + 120: false,
		at1040 + 300: true,
	}
	for _, now := range []int64{at1037, at1037 + 60, at1037 + 120, at1040, at1041, at1041 + 60, at1041 + 120, at1040 + 300} {
		if got := e.Elapsed(now); got != want[now] {
			t.Errorf("%v: got %v, want %v", now, got, want[now])
		}
	}
}

func TestElapsedFirstPoll(t *testing.T) {
	// A fresh engine reports on its very first poll, even mid-period.
	e := newEngine(t, interval.Minute, 5, 0)
	if !e.Elapsed(at1037) {
		t.Errorf("expected true on the first poll")
	}
	if e.Elapsed(at1037 + 1) {
		t.Errorf("expected false until the next boundary")
	}

	// With a 1 minute phase offset, 10:41 is itself a boundary.
	e = newEngine(t, interval.Minute, 5, 1)
	if !e.Elapsed(at1041) {
		t.Errorf("expected true at the offset boundary")
	}
	if got, want := e.BoundaryAt(at1041), int64(at1041); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestElapsedCoarsePollingSkips(t *testing.T) {
	// Polling slower than the period silently skips boundaries: the two
	// boundaries between polls are reported as a single true.
	e := newEngine(t, interval.Minute, 5, 0)
	if !e.Elapsed(at1037) {
		t.Errorf("expected true on the first poll")
	}
	if !e.Elapsed(at1037 + 900) {
		t.Errorf("expected true after skipping boundaries")
	}
	if e.Elapsed(at1037 + 900 + 60) {
		t.Errorf("expected false, boundary already reported")
	}
}

func TestSleepDuration(t *testing.T) {
	for _, tc := range []struct {
		unit           interval.Unit
		period, offset int
		now            int64
		want           time.Duration
	}{
		{interval.Minute, 5, 0, at1037, 3 * time.Minute},
		{interval.Minute, 5, 0, at1040, 5 * time.Minute}, // exactly on a boundary
		{interval.Minute, 5, 0, at1040 - 1, time.Second},
		{interval.Minute, 5, 1, at1040, time.Minute},
		{interval.Second, 30, 0, at1037 + 15, 15 * time.Second},
		{interval.Hour, 2, 0, at1037, 83 * time.Minute},
		{interval.Day, 1, 0, at1037, 13*time.Hour + 23*time.Minute},
	} {
		e, err := interval.NewEngine(newSpec(t, tc.unit, tc.period, tc.offset))
		if err != nil {
			t.Fatal(err)
		}
		if got, want := e.SleepDuration(tc.now), tc.want; got != want {
			t.Errorf("%v %v+%v at %v: got %v, want %v", tc.period, tc.unit, tc.offset, tc.now, got, want)
		}
	}
}

func TestSleepDurationProperty(t *testing.T) {
	// now plus the sleep duration is always a boundary strictly after now.
	for _, e := range []*interval.Engine{
		newEngine(t, interval.Second, 7, 3),
		newEngine(t, interval.Minute, 5, 1),
		newEngine(t, interval.Hour, 6, 2),
		newEngine(t, interval.Day, 28, 5),
	} {
		spec := e.Spec()
		periodSecs := int64(spec.PeriodDuration() / time.Second)
		offsetSecs := int64(spec.OffsetDuration() / time.Second)
		for _, now := range []int64{0, 1, at1037, at1040, at1041, 2419200007} {
			boundary := now + int64(e.SleepDuration(now)/time.Second)
			if boundary <= now {
				t.Errorf("%v at %v: boundary %v not after now", spec, now, boundary)
			}
			if got := (boundary - offsetSecs) % periodSecs; got != 0 {
				t.Errorf("%v at %v: boundary %v not aligned, remainder %v", spec, now, boundary, got)
			}
		}
	}
}

func TestSleepDoesNotDisturbPolling(t *testing.T) {
	e := newEngine(t, interval.Minute, 5, 0)
	if !e.Elapsed(at1037) {
		t.Errorf("expected true on the first poll")
	}
	_ = e.SleepDuration(at1040 + 1)
	// The sleep path keeps no boundary bookkeeping, so the poll path still
	// sees 10:40 as unreported.
	if !e.Elapsed(at1041) {
		t.Errorf("expected true, sleep computation must not consume the boundary")
	}
}

func TestSpecString(t *testing.T) {
	for _, tc := range []struct {
		spec interval.Spec
		want string
	}{
		{newSpec(t, interval.Minute, 5, 0), "5m"},
		{newSpec(t, interval.Minute, 5, 1), "5m+1m"},
		{newSpec(t, interval.Second, 30, 0), "30s"},
		{newSpec(t, interval.Day, 28, 0), "28d"},
	} {
		if got := tc.spec.String(); got != tc.want {
			t.Errorf("got %v, want %v", got, tc.want)
		}
	}
}

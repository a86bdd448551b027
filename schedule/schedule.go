// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package schedule defines the interface between this module and an
// external cron style task scheduler: a task callback, and a wall-clock
// matching specification over hours and minutes. The scheduler's dispatch
// loop itself is not part of this module; only the registration surface
// and the matching arithmetic live here so that callers and tests never
// depend on a concrete scheduler implementation.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Task is the callback invoked by the external scheduler once per
// matching wall-clock minute.
type Task func(ctx context.Context) error

// Registrar is implemented by the external scheduler. Register associates
// a task and its wall-clock spec with an identifier; the scheduler invokes
// the task once per minute whose hour and minute both match.
type Registrar interface {
	Register(name string, spec TimeMatch, task Task) error
}

// FieldSpec matches values of a single wall-clock field. The zero value,
// like "*", matches every value.
type FieldSpec struct {
	values map[int]bool
}

// ParseField parses a field specification: "*" for every value, or a
// comma separated list of values and lo-hi ranges, each optionally with a
// /step, eg. "0", "0,15,30,45", "10-20", "0-59/15". Values must lie in
// [lo, hi].
func ParseField(val string, lo, hi int) (FieldSpec, error) {
	val = strings.TrimSpace(val)
	if val == "*" || val == "" {
		return FieldSpec{}, nil
	}
	values := map[int]bool{}
	for _, part := range strings.Split(val, ",") {
		rangeText, stepText, hasStep := strings.Cut(part, "/")
		step := 1
		if hasStep {
			var err error
			if step, err = strconv.Atoi(stepText); err != nil || step < 1 {
				return FieldSpec{}, fmt.Errorf("invalid step: %q", part)
			}
		}
		loText, hiText, isRange := strings.Cut(rangeText, "-")
		from, err := strconv.Atoi(strings.TrimSpace(loText))
		if err != nil {
			return FieldSpec{}, fmt.Errorf("invalid value: %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hiText)); err != nil {
				return FieldSpec{}, fmt.Errorf("invalid range: %q", part)
			}
		}
		if from > to || from < lo || to > hi {
			return FieldSpec{}, fmt.Errorf("value out of range [%v, %v]: %q", lo, hi, part)
		}
		for v := from; v <= to; v += step {
			values[v] = true
		}
	}
	return FieldSpec{values: values}, nil
}

// Matches reports whether the field specification matches v.
func (f FieldSpec) Matches(v int) bool {
	if f.values == nil {
		return true
	}
	return f.values[v]
}

// Values returns the explicit values in ascending order, or nil for a
// wildcard.
func (f FieldSpec) Values() []int {
	if f.values == nil {
		return nil
	}
	vals := make([]int, 0, len(f.values))
	for v := range f.values {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	return vals
}

func (f FieldSpec) String() string {
	if f.values == nil {
		return "*"
	}
	parts := make([]string, 0, len(f.values))
	for _, v := range f.Values() {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// TimeMatch specifies the wall-clock minutes at which the external
// scheduler should invoke a task: every minute whose hour matches Hours
// and whose minute matches Minutes.
type TimeMatch struct {
	Hours   FieldSpec
	Minutes FieldSpec
}

// ParseTimeMatch parses "<hours> <minutes>" with each field in
// ParseField's syntax, eg. "* 0-59/15" for every quarter hour.
func ParseTimeMatch(val string) (TimeMatch, error) {
	fields := strings.Fields(val)
	if len(fields) != 2 {
		return TimeMatch{}, fmt.Errorf("invalid time match: %q: expected <hours> <minutes>", val)
	}
	hours, err := ParseField(fields[0], 0, 23)
	if err != nil {
		return TimeMatch{}, fmt.Errorf("invalid time match: %q: %w", val, err)
	}
	minutes, err := ParseField(fields[1], 0, 59)
	if err != nil {
		return TimeMatch{}, fmt.Errorf("invalid time match: %q: %w", val, err)
	}
	return TimeMatch{Hours: hours, Minutes: minutes}, nil
}

// Matches reports whether the given wall-clock hour and minute match.
func (tm TimeMatch) Matches(hour, minute int) bool {
	return tm.Hours.Matches(hour) && tm.Minutes.Matches(minute)
}

func (tm TimeMatch) String() string {
	return tm.Hours.String() + " " + tm.Minutes.String()
}

// Config is the YAML representation of a TimeMatch in ParseTimeMatch's
// format.
type Config struct {
	TimeMatch
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	tm, err := ParseTimeMatch(node.Value)
	if err != nil {
		return err
	}
	c.TimeMatch = tm
	return nil
}

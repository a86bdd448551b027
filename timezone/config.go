// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"gopkg.in/yaml.v3"
)

// offsetConfig parses offsets written as [+|-]h[:mm], eg. "-4:00", "5:30",
// "+10" or "0".
type offsetConfig TimeOffset

func (oc *offsetConfig) UnmarshalYAML(node *yaml.Node) error {
	o, err := ParseOffset(node.Value)
	if err != nil {
		return err
	}
	*oc = offsetConfig(o)
	return nil
}

func ParseOffset(val string) (TimeOffset, error) {
	hours, minutes, err := parseHoursMinutes(val)
	if err != nil {
		return TimeOffset{}, fmt.Errorf("invalid offset: %q: %w", val, err)
	}
	return NewTimeOffset(hours, minutes)
}

// adjustConfig parses DST adjustments written as h[:mm], eg. "1:00" or "1".
type adjustConfig DSTAdjust

func (ac *adjustConfig) UnmarshalYAML(node *yaml.Node) error {
	a, err := ParseAdjust(node.Value)
	if err != nil {
		return err
	}
	*ac = adjustConfig(a)
	return nil
}

func ParseAdjust(val string) (DSTAdjust, error) {
	hours, minutes, err := parseHoursMinutes(val)
	if err != nil {
		return DSTAdjust{}, fmt.Errorf("invalid adjustment: %q: %w", val, err)
	}
	return NewDSTAdjust(hours, minutes)
}

func parseHoursMinutes(val string) (hours, minutes int, err error) {
	h, m, found := strings.Cut(strings.TrimSpace(val), ":")
	hours, err = strconv.Atoi(strings.TrimPrefix(h, "+"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hours: %q", h)
	}
	if found {
		minutes, err = strconv.Atoi(m)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid minutes: %q", m)
		}
	}
	return hours, minutes, nil
}

// ruleConfig parses transition rules written as
//
//	<month> <weekday>[<nth>] <hour>:00
//
// eg. "mar sun[2] 02:00" is the second Sunday in March at 2AM standard
// time and "oct sun[last] 03:00" the last Sunday in October at 3AM.
// Month names are parsed as for cloudeng.io/datetime, weekday names may be
// full or three letter abbreviations and nth is 1..4 or "last". Transition
// minutes are not supported.
type ruleConfig DSTRule

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func (rc *ruleConfig) UnmarshalYAML(node *yaml.Node) error {
	r, err := ParseRule(node.Value)
	if err != nil {
		return err
	}
	*rc = ruleConfig(r)
	return nil
}

func ParseRule(val string) (DSTRule, error) {
	parts := strings.Fields(strings.ToLower(val))
	if len(parts) != 3 {
		return DSTRule{}, fmt.Errorf("invalid transition rule: %q: expected <month> <weekday>[<nth>] <hour>:00", val)
	}
	var ml datetime.MonthList
	if err := ml.Parse(parts[0]); err != nil || len(ml) != 1 {
		return DSTRule{}, fmt.Errorf("invalid transition rule: %q: unknown month: %q", val, parts[0])
	}
	day, nthText, found := strings.Cut(parts[1], "[")
	nthText, closed := strings.CutSuffix(nthText, "]")
	if !found || !closed {
		return DSTRule{}, fmt.Errorf("invalid transition rule: %q: expected <weekday>[<nth>]: %q", val, parts[1])
	}
	weekday, ok := weekdays[day]
	if !ok {
		return DSTRule{}, fmt.Errorf("invalid transition rule: %q: unknown weekday: %q", val, day)
	}
	nth := Last
	if nthText != "last" {
		var err error
		if nth, err = strconv.Atoi(nthText); err != nil {
			return DSTRule{}, fmt.Errorf("invalid transition rule: %q: invalid occurrence: %q", val, nthText)
		}
	}
	hour, minute, err := parseHoursMinutes(parts[2])
	if err != nil {
		return DSTRule{}, fmt.Errorf("invalid transition rule: %q: %w", val, err)
	}
	if minute != 0 {
		return DSTRule{}, fmt.Errorf("invalid transition rule: %q: transition minutes are not supported", val)
	}
	return NewDSTRule(time.Month(ml[0]), weekday, nth, hour)
}

// Config is the YAML representation of a daylight saving policy, eg:
//
//	offset: "-4:00"
//	dst_start: "mar sun[2] 02:00"
//	dst_end: "nov sun[1] 02:00"
//	dst_adjust: "1:00"
//
// The dst fields may be omitted together for a fixed-offset zone.
type Config struct {
	Offset    offsetConfig `yaml:"offset" cmd:"the base offset from UTC as [+|-]h[:mm]"`
	DSTStart  *ruleConfig  `yaml:"dst_start" cmd:"the transition into daylight saving, as <month> <weekday>[<nth>] <hour>:00"`
	DSTEnd    *ruleConfig  `yaml:"dst_end" cmd:"the transition out of daylight saving"`
	DSTAdjust adjustConfig `yaml:"dst_adjust" cmd:"the amount added to the offset during daylight saving as h[:mm]"`
}

// Info returns the validated policy described by the config.
func (c Config) Info() (Info, error) {
	if c.DSTStart == nil && c.DSTEnd == nil {
		if c.DSTAdjust != (adjustConfig{}) {
			return Info{}, fmt.Errorf("dst_adjust specified without dst_start and dst_end")
		}
		return NewFixedInfo(TimeOffset(c.Offset))
	}
	if c.DSTStart == nil || c.DSTEnd == nil {
		return Info{}, fmt.Errorf("dst_start and dst_end must be specified together")
	}
	return NewInfo(TimeOffset(c.Offset), DSTRule(*c.DSTStart), DSTRule(*c.DSTEnd), DSTAdjust(c.DSTAdjust))
}

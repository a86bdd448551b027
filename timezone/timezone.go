// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package timezone converts UTC epoch seconds to local wall-clock time
// under an explicitly supplied daylight saving policy. The policy is plain
// structured data (a base offset, two transition rules and an adjustment);
// no tz database lookup is performed and none is required, which makes the
// package suitable for clock sources that only provide UTC epoch seconds.
//
// All conversions use the proleptic Gregorian calendar and ignore leap
// seconds.
package timezone

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOffsetRange = errors.New("offset out of range")
	ErrRuleRange   = errors.New("transition rule field out of range")
)

// TimeOffset is a fixed offset from UTC. The sign is carried by Hours and
// Minutes is always applied with the same sign, so -4:30 is expressed as
// {Hours: -4, Minutes: 30}.
type TimeOffset struct {
	Hours   int
	Minutes int
}

// NewTimeOffset returns a TimeOffset with hours in [-23,23] and minutes
// in [0,59].
func NewTimeOffset(hours, minutes int) (TimeOffset, error) {
	if hours < -23 || hours > 23 {
		return TimeOffset{}, fmt.Errorf("%w: hours %v not in [-23,23]", ErrOffsetRange, hours)
	}
	if minutes < 0 || minutes > 59 {
		return TimeOffset{}, fmt.Errorf("%w: minutes %v not in [0,59]", ErrOffsetRange, minutes)
	}
	return TimeOffset{Hours: hours, Minutes: minutes}, nil
}

// Seconds returns the offset in seconds with the sign of Hours applied
// to the minute component.
func (o TimeOffset) Seconds() int {
	s := o.Hours*3600 + o.Minutes*60
	if o.Hours < 0 {
		s = o.Hours*3600 - o.Minutes*60
	}
	return s
}

func (o TimeOffset) String() string {
	if o.Hours == 0 && o.Minutes == 0 {
		return "GMT"
	}
	sign, h := "+", o.Hours
	if h < 0 {
		sign, h = "-", -h
	}
	if o.Minutes == 0 {
		return fmt.Sprintf("GMT%s%d", sign, h)
	}
	return fmt.Sprintf("GMT%s%02d:%02d", sign, h, o.Minutes)
}

// DSTAdjust is the amount added to the base offset while daylight saving
// is in effect. It is always non-negative.
type DSTAdjust struct {
	Hours   int
	Minutes int
}

// NewDSTAdjust returns a DSTAdjust with hours in [0,23] and minutes in
// [0,59].
func NewDSTAdjust(hours, minutes int) (DSTAdjust, error) {
	if hours < 0 || hours > 23 {
		return DSTAdjust{}, fmt.Errorf("%w: hours %v not in [0,23]", ErrOffsetRange, hours)
	}
	if minutes < 0 || minutes > 59 {
		return DSTAdjust{}, fmt.Errorf("%w: minutes %v not in [0,59]", ErrOffsetRange, minutes)
	}
	return DSTAdjust{Hours: hours, Minutes: minutes}, nil
}

func (a DSTAdjust) Seconds() int {
	return a.Hours*3600 + a.Minutes*60
}

func (a DSTAdjust) String() string {
	if a.Minutes == 0 {
		return fmt.Sprintf("+%dh", a.Hours)
	}
	return fmt.Sprintf("+%d:%02d", a.Hours, a.Minutes)
}

// Last selects the final occurrence of a rule's weekday within its month.
const Last = 5

// DSTRule describes one daylight saving transition instant within any given
// year as the Nth occurrence of Weekday in Month at Hour local standard
// time. Nth is in [1,5] with Last (5) meaning the final occurrence in the
// month; the first through fourth occurrences always exist. The rule's hour
// is interpreted under the base offset alone, never the DST-adjusted one.
type DSTRule struct {
	Month   time.Month
	Weekday time.Weekday
	Nth     int
	Hour    int
}

// NewDSTRule validates the rule fields.
func NewDSTRule(month time.Month, weekday time.Weekday, nth, hour int) (DSTRule, error) {
	if month < time.January || month > time.December {
		return DSTRule{}, fmt.Errorf("%w: month %v", ErrRuleRange, int(month))
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return DSTRule{}, fmt.Errorf("%w: weekday %v", ErrRuleRange, int(weekday))
	}
	if nth < 1 || nth > Last {
		return DSTRule{}, fmt.Errorf("%w: occurrence %v not in [1,5]", ErrRuleRange, nth)
	}
	if hour < 0 || hour > 23 {
		return DSTRule{}, fmt.Errorf("%w: hour %v not in [0,23]", ErrRuleRange, hour)
	}
	return DSTRule{Month: month, Weekday: weekday, Nth: nth, Hour: hour}, nil
}

// DayInYear returns the day of the month on which the rule falls for the
// supplied year.
func (r DSTRule) DayInYear(year int) int {
	first := weekdayOfDays(daysFromCivil(year, r.Month, 1))
	day := 1 + int(floorMod(int64(r.Weekday-first), 7))
	if r.Nth == Last {
		for day+7 <= daysInMonth(year, r.Month) {
			day += 7
		}
		return day
	}
	return day + (r.Nth-1)*7
}

// Instant resolves the rule against a year, returning the UTC epoch seconds
// of the transition. The rule's hour is in standard local time, so the base
// offset is subtracted to recover the UTC instant.
func (r DSTRule) Instant(year int, base TimeOffset) int64 {
	day := r.DayInYear(year)
	return epochFromFields(year, r.Month, day, r.Hour, 0, 0) - int64(base.Seconds())
}

func (r DSTRule) String() string {
	nth := fmt.Sprint(r.Nth)
	if r.Nth == Last {
		nth = "last"
	}
	return fmt.Sprintf("%.3s %.3s[%s] %02d:00", r.Month, r.Weekday, nth, r.Hour)
}

// Info aggregates a base offset, the two transition rules and the DST
// adjustment. It is immutable once constructed and safe for concurrent use
// from any number of tasks.
type Info struct {
	offset   TimeOffset
	dstStart DSTRule
	dstEnd   DSTRule
	adjust   DSTAdjust
}

// NewInfo returns an Info for the supplied policy. The start rule may fall
// earlier or later in the year than the end rule; the latter ordering is
// the southern hemisphere convention with the DST window spanning the year
// boundary.
func NewInfo(offset TimeOffset, dstStart, dstEnd DSTRule, adjust DSTAdjust) (Info, error) {
	for _, r := range []DSTRule{dstStart, dstEnd} {
		if _, err := NewDSTRule(r.Month, r.Weekday, r.Nth, r.Hour); err != nil {
			return Info{}, err
		}
	}
	if _, err := NewTimeOffset(offset.Hours, offset.Minutes); err != nil {
		return Info{}, err
	}
	if _, err := NewDSTAdjust(adjust.Hours, adjust.Minutes); err != nil {
		return Info{}, err
	}
	return Info{offset: offset, dstStart: dstStart, dstEnd: dstEnd, adjust: adjust}, nil
}

// NewFixedInfo returns an Info with no daylight saving component.
func NewFixedInfo(offset TimeOffset) (Info, error) {
	if _, err := NewTimeOffset(offset.Hours, offset.Minutes); err != nil {
		return Info{}, err
	}
	return Info{offset: offset}, nil
}

func (tz Info) Offset() TimeOffset   { return tz.offset }
func (tz Info) DSTStart() DSTRule    { return tz.dstStart }
func (tz Info) DSTEnd() DSTRule      { return tz.dstEnd }
func (tz Info) DSTAdjust() DSTAdjust { return tz.adjust }

func (tz Info) String() string { return tz.offset.String() }

// InDST reports whether the instant falls within the daylight saving
// window of its UTC calendar year. The window is half open: the start
// instant is inside, the end instant outside. When the start rule falls
// after the end rule within the year the window is inverted, spanning the
// year boundary.
func (tz Info) InDST(epoch int64) bool {
	if tz.adjust.Seconds() == 0 {
		return false
	}
	year, _, _ := civilFromDays(floorDiv(epoch, secondsPerDay))
	start := tz.dstStart.Instant(year, tz.offset)
	end := tz.dstEnd.Instant(year, tz.offset)
	switch {
	case start < end:
		return epoch >= start && epoch < end
	case end < start:
		return !(epoch >= end && epoch < start)
	}
	return false
}

// OffsetSecondsAt returns the effective offset from UTC in seconds at the
// given instant: the base offset plus the DST adjustment when the instant
// is inside the DST window.
func (tz Info) OffsetSecondsAt(epoch int64) int {
	off := tz.offset.Seconds()
	if tz.InDST(epoch) {
		off += tz.adjust.Seconds()
	}
	return off
}

// LocalTime is a UTC instant broken out into local calendar and time of
// day fields. YearDay is 1-based.
type LocalTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday time.Weekday
	YearDay int
}

func (lt LocalTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		lt.Year, lt.Month, lt.Day, lt.Hour, lt.Minute, lt.Second)
}

// Localtime converts UTC epoch seconds to local wall-clock time under the
// policy. It is a pure function of its inputs: no clock is read and no
// state is held, so identical arguments always produce identical results.
func (tz Info) Localtime(epoch int64) LocalTime {
	return decompose(epoch + int64(tz.OffsetSecondsAt(epoch)))
}

// Localtime converts utcEpochSeconds to local wall-clock time under tz.
func Localtime(utcEpochSeconds int64, tz Info) LocalTime {
	return tz.Localtime(utcEpochSeconds)
}

// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timezone

import (
	"testing"
	"time"
)

func TestLeapYears(t *testing.T) {
	for _, tc := range []struct {
		year int
		leap bool
	}{
		{1900, false},
		{1970, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{2100, false},
		{2400, true},
	} {
		if got, want := isLeapYear(tc.year), tc.leap; got != want {
			t.Errorf("%v: got %v, want %v", tc.year, got, want)
		}
	}
	if got, want := daysInMonth(2024, time.February), 29; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := daysInMonth(2023, time.February), 28; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCivilRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		days  int64
		year  int
		month time.Month
		day   int
	}{
		{0, 1970, time.January, 1},
		{-1, 1969, time.December, 31},
		{19723, 2024, time.January, 1},
		{19792, 2024, time.March, 10},
		{20030, 2024, time.November, 3},
		{-719468, 0, time.March, 1},
	} {
		y, m, d := civilFromDays(tc.days)
		if y != tc.year || m != tc.month || d != tc.day {
			t.Errorf("%v: got %v-%v-%v, want %v-%v-%v", tc.days, y, m, d, tc.year, tc.month, tc.day)
		}
		if got, want := daysFromCivil(tc.year, tc.month, tc.day), tc.days; got != want {
			t.Errorf("%v-%v-%v: got %v, want %v", tc.year, tc.month, tc.day, got, want)
		}
	}
}

func TestCivilExhaustiveRange(t *testing.T) {
	// Walk a few decades spanning a century boundary day by day and verify
	// that the conversion round trips and the weekday advances by one.
	days := daysFromCivil(2090, time.January, 1)
	wd := weekdayOfDays(days)
	for ; days < daysFromCivil(2110, time.January, 1); days++ {
		y, m, d := civilFromDays(days)
		if got, want := daysFromCivil(y, m, d), days; got != want {
			t.Fatalf("%v-%v-%v: got %v, want %v", y, m, d, got, want)
		}
		if got, want := weekdayOfDays(days), wd; got != want {
			t.Fatalf("%v-%v-%v: got weekday %v, want %v", y, m, d, got, want)
		}
		wd = (wd + 1) % 7
	}
}

func TestDecompose(t *testing.T) {
	for _, tc := range []struct {
		epoch int64
		want  LocalTime
	}{
		{0, LocalTime{1970, time.January, 1, 0, 0, 0, time.Thursday, 1}},
		{-1, LocalTime{1969, time.December, 31, 23, 59, 59, time.Wednesday, 365}},
		{1710050400, LocalTime{2024, time.March, 10, 6, 0, 0, time.Sunday, 70}},
		{1730613600, LocalTime{2024, time.November, 3, 6, 0, 0, time.Sunday, 308}},
		{951782399, LocalTime{2000, time.February, 28, 23, 59, 59, time.Monday, 59}},
		{951782400, LocalTime{2000, time.February, 29, 0, 0, 0, time.Tuesday, 60}},
	} {
		if got := decompose(tc.epoch); got != tc.want {
			t.Errorf("%v: got %+v, want %+v", tc.epoch, got, tc.want)
		}
		if got, want := epochFromFields(tc.want.Year, tc.want.Month, tc.want.Day, tc.want.Hour, tc.want.Minute, tc.want.Second), tc.epoch; got != want {
			t.Errorf("%+v: got %v, want %v", tc.want, got, want)
		}
	}
}

func TestFloorArithmetic(t *testing.T) {
	for _, tc := range []struct {
		a, b, div, mod int64
	}{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{-6, 3, -2, 0},
		{6, 3, 2, 0},
		{-1, 86400, -1, 86399},
	} {
		if got, want := floorDiv(tc.a, tc.b), tc.div; got != want {
			t.Errorf("floorDiv(%v, %v): got %v, want %v", tc.a, tc.b, got, want)
		}
		if got, want := floorMod(tc.a, tc.b), tc.mod; got != want {
			t.Errorf("floorMod(%v, %v): got %v, want %v", tc.a, tc.b, got, want)
		}
	}
}

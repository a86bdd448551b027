// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package timezone

import "time"

const secondsPerDay = 86400

// The epoch origin, 1970-01-01, was a Thursday.
const epochWeekday = 4

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year int, month time.Month) int {
	if month == time.February && isLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// civilFromDays converts a count of days since the epoch origin to a
// proleptic Gregorian date. It is the classic era-based conversion and
// is exact for the full range of int64 days.
func civilFromDays(days int64) (year int, month time.Month, day int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
		y++
	}
	return int(y), time.Month(m), int(d)
}

// daysFromCivil is the inverse of civilFromDays.
func daysFromCivil(year int, month time.Month, day int) int64 {
	y := int64(year)
	m := int64(month)
	d := int64(day)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

func weekdayOfDays(days int64) time.Weekday {
	return time.Weekday(floorMod(days+epochWeekday, 7))
}

// epochFromFields returns the epoch seconds for the given calendar fields
// interpreted as UTC.
func epochFromFields(year int, month time.Month, day, hour, minute, second int) int64 {
	return daysFromCivil(year, month, day)*secondsPerDay +
		int64(hour)*3600 + int64(minute)*60 + int64(second)
}

// decompose splits epoch seconds into calendar fields, treating the value
// as UTC on the proleptic Gregorian calendar with no leap seconds.
func decompose(epoch int64) LocalTime {
	days := floorDiv(epoch, secondsPerDay)
	secs := floorMod(epoch, secondsPerDay)
	year, month, day := civilFromDays(days)
	return LocalTime{
		Year:    year,
		Month:   month,
		Day:     day,
		Hour:    int(secs / 3600),
		Minute:  int(secs / 60 % 60),
		Second:  int(secs % 60),
		Weekday: weekdayOfDays(days),
		YearDay: int(days-daysFromCivil(year, time.January, 1)) + 1,
	}
}

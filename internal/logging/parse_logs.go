// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"
)

type logEntry struct {
	Msg      string             `json:"msg"`
	Mod      string             `json:"mod"`
	Task     string             `json:"task"`
	Sensor   string             `json:"sensor"`
	Spec     string             `json:"spec"`
	Local    string             `json:"local"`
	ID       int64              `json:"id"`
	Boundary time.Time          `json:"boundary"`
	Now      time.Time          `json:"now"`
	Started  time.Time          `json:"started"`
	Drift    int64              `json:"drift"`
	Elapsed  int64              `json:"elapsed"`
	Sleep    int64              `json:"sleep"`
	Values   map[string]float64 `json:"values"`
	Err      string             `json:"err"`
}

// Entry is a parsed sampler log line. Durations logged as nanosecond
// counts are converted back to time.Duration.
type Entry struct {
	logEntry

	Drift    time.Duration
	Elapsed  time.Duration
	Sleep    time.Duration
	Err      error
	LogEntry string // Original log line
}

func ParseLogLine(line string) (Entry, error) {
	var le Entry
	le.LogEntry = line
	if err := json.Unmarshal([]byte(line), &le.logEntry); err != nil {
		return le, err
	}
	le.Drift = time.Duration(le.logEntry.Drift)
	le.Elapsed = time.Duration(le.logEntry.Elapsed)
	le.Sleep = time.Duration(le.logEntry.Sleep)
	if e := le.logEntry.Err; e != "" {
		le.Err = errors.New(e)
	}
	return le, nil
}

func (le Entry) Name() string {
	return fmt.Sprintf("%v:%v", le.Task, le.Sensor)
}

// TickRecord reconstructs the in-memory record for a tick entry.
func (le Entry) TickRecord() *TickRecord {
	return &TickRecord{
		ID:       le.ID,
		Task:     le.Task,
		Sensor:   le.Sensor,
		Boundary: le.Boundary,
		Drift:    le.Drift,
	}
}

type Scanner struct {
	sc  *bufio.Scanner
	err error
}

func NewScanner(rd io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(rd)}
}

// Entries returns an iterator over the scanner's log entries. The
// iterator stops if an error is encountered; the Scanner's Err method
// should be checked after the iterator has completed.
func (ls *Scanner) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			if !ls.sc.Scan() {
				ls.err = ls.sc.Err()
				return
			}
			le, err := ParseLogLine(ls.sc.Text())
			if err != nil {
				ls.err = err
				return
			}
			if !yield(le) {
				return
			}
		}
	}
}

func (ls *Scanner) Err() error {
	return ls.err
}

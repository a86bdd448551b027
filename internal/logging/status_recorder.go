// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"iter"
	"sync"
	"time"

	"cloudeng.io/algo/container/list"
)

// StatusRecorder tracks tick records for all sampling tasks in a
// process: those whose read is still in flight and those that have
// completed. It is safe for concurrent use.
type StatusRecorder struct {
	mu      sync.Mutex
	done    []*TickRecord
	waiting *list.Double[*TickRecord]
}

func NewStatusRecorder() *StatusRecorder {
	return &StatusRecorder{
		done:    make([]*TickRecord, 0, 1000),
		waiting: list.NewDouble[*TickRecord](),
	}
}

// TickRecord describes one observed interval boundary and the sensor
// read it triggered.
type TickRecord struct {
	Task     string
	Sensor   string
	ID       int64 // Unique identifier for this tick
	Boundary time.Time
	Drift    time.Duration

	// The following fields are filled in by the status recorder.
	Pending   time.Time // Set by NewPending
	Completed time.Time // Set by PendingDone
	Values    map[string]float64
	Error     error

	listID list.DoubleID[*TickRecord]
}

func (tr *TickRecord) Status() string {
	if tr.Completed.IsZero() {
		return "pending"
	}
	if tr.Error != nil {
		return "failed"
	}
	return "completed"
}

func (tr *TickRecord) Name() string {
	return fmt.Sprintf("%v:%v", tr.Task, tr.Sensor)
}

func (tr *TickRecord) ErrorMessage() string {
	if tr.Error == nil {
		return ""
	}
	return tr.Error.Error()
}

// NewPending adds the record to the pending list.
func (s *StatusRecorder) NewPending(tr *TickRecord, now time.Time) *TickRecord {
	if tr == nil {
		return tr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tr.listID = s.waiting.Append(tr)
	tr.Pending = now
	return tr
}

// PendingDone moves the record from the pending list to the completed
// set, recording the read's outcome.
func (s *StatusRecorder) PendingDone(tr *TickRecord, values map[string]float64, err error, now time.Time) {
	if tr == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tr.Completed = now
	tr.Values = values
	tr.Error = err
	s.done = append(s.done, tr)
	s.waiting.RemoveItem(tr.listID)
}

func (s *StatusRecorder) CompletedRecords() iter.Seq[*TickRecord] {
	return func(yield func(*TickRecord) bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, tr := range s.done {
			if !yield(tr) {
				return
			}
		}
	}
}

func (s *StatusRecorder) PendingRecords() iter.Seq[*TickRecord] {
	return func(yield func(*TickRecord) bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for tr := range s.waiting.Forward() {
			if !yield(tr) {
				return
			}
		}
	}
}

func (s *StatusRecorder) ResetCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = s.done[:0]
}

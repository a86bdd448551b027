// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/cosnicolaou/wallclock/interval"
	"github.com/cosnicolaou/wallclock/sensor"
	"gopkg.in/yaml.v3"
)

type SensorDetail struct {
	Detail string `yaml:"detail"`
}

// MockSensor returns a scripted sequence of readings and records the
// instants at which it was read.
type MockSensor struct {
	sensor.ConfigCommon
	Detail SensorDetail `yaml:",inline"`

	mu      sync.Mutex
	ts      interval.TimeSource
	scripts []map[string]float64
	next    int
	err     error
	reads   []time.Time
}

// NewMockSensor creates a mock that cycles through the supplied value
// maps, one per Read call. With no values every reading is empty.
func NewMockSensor(name string, values ...map[string]float64) *MockSensor {
	m := &MockSensor{scripts: values, ts: interval.SystemTimeSource{}}
	m.ConfigCommon.Name = name
	m.ConfigCommon.Type = "mock"
	return m
}

// Factory wraps the mock for use in a sensor.SupportedSensors map.
func (m *MockSensor) Factory(_ string, opts sensor.Options) (sensor.Sensor, error) {
	if opts.TimeSource != nil {
		m.SetTimeSource(opts.TimeSource)
	}
	return m, nil
}

func (m *MockSensor) SetTimeSource(ts interval.TimeSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ts = ts
}

// FailWith makes every subsequent Read return err until called again
// with nil.
func (m *MockSensor) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockSensor) SetConfig(cfg sensor.ConfigCommon) {
	m.ConfigCommon = cfg
}

func (m *MockSensor) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&m.Detail)
}

func (m *MockSensor) Name() string {
	return m.ConfigCommon.Name
}

func (m *MockSensor) Read(ctx context.Context) (sensor.Reading, error) {
	if err := ctx.Err(); err != nil {
		return sensor.Reading{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	when := m.ts.Now()
	m.reads = append(m.reads, when)
	if m.err != nil {
		return sensor.Reading{}, m.err
	}
	var values map[string]float64
	if len(m.scripts) > 0 {
		values = m.scripts[m.next%len(m.scripts)]
		m.next++
	}
	return sensor.Reading{When: when, Values: values}, nil
}

// ReadTimes returns the instants of all Read calls so far.
func (m *MockSensor) ReadTimes() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Time{}, m.reads...)
}

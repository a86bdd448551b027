// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sensor_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cosnicolaou/wallclock/sensor"
	"gopkg.in/yaml.v3"
)

const sensorConfig = `
- name: outside
  type: synthetic
  seed: 7
  temperature: 15
- name: inside
  type: synthetic
  temperature: 21
  humidity: 40
`

type fixedTimeSource struct {
	when time.Time
}

func (f fixedTimeSource) Now() time.Time { return f.when }

func parseConfigs(t *testing.T, text string) []sensor.Config {
	t.Helper()
	var cfgs []sensor.Config
	if err := yaml.Unmarshal([]byte(text), &cfgs); err != nil {
		t.Fatal(err)
	}
	return cfgs
}

func TestBuildSensors(t *testing.T) {
	ctx := context.Background()
	cfgs := parseConfigs(t, sensorConfig)
	ts := fixedTimeSource{when: time.Unix(1719835200, 0).UTC()}
	sensors, err := sensor.BuildSensors(cfgs, sensor.AvailableSensors,
		sensor.WithTimeSource(ts))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(sensors), 2; got != want {
		t.Fatalf("got %v sensors, want %v", got, want)
	}

	outside := sensors["outside"]
	if got, want := outside.Name(), "outside"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	reading, err := outside.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := reading.When, ts.when; !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, v := range []string{"temperature", "humidity", "pressure"} {
		if _, ok := reading.Values[v]; !ok {
			t.Errorf("missing value %v in %v", v, reading.Values)
		}
	}
	// Configured base temperature is 15, the diurnal swing is +/-5 and
	// the jitter well under 1.
	if temp := reading.Values["temperature"]; temp < 9 || temp > 21 {
		t.Errorf("temperature %v outside expected band", temp)
	}
}

func TestSyntheticDeterminism(t *testing.T) {
	ctx := context.Background()
	cfgs := parseConfigs(t, sensorConfig)
	ts := fixedTimeSource{when: time.Unix(1719835200, 0).UTC()}
	build := func() sensor.Sensor {
		sensors, err := sensor.BuildSensors(cfgs, sensor.AvailableSensors,
			sensor.WithTimeSource(ts))
		if err != nil {
			t.Fatal(err)
		}
		return sensors["outside"]
	}
	a, _ := build().Read(ctx)
	b, _ := build().Read(ctx)
	for name, v := range a.Values {
		if b.Values[name] != v {
			t.Errorf("%v: %v != %v", name, v, b.Values[name])
		}
	}
}

func TestSyntheticDefaults(t *testing.T) {
	ctx := context.Background()
	cfgs := parseConfigs(t, `
- name: bare
  type: synthetic
`)
	ts := fixedTimeSource{when: time.Unix(1719835200, 0).UTC()}
	sensors, err := sensor.BuildSensors(cfgs, sensor.AvailableSensors,
		sensor.WithTimeSource(ts))
	if err != nil {
		t.Fatal(err)
	}
	reading, err := sensors["bare"].Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p := reading.Values["pressure"]; p < 1000 || p > 1030 {
		t.Errorf("pressure %v outside expected band", p)
	}
}

func TestBuildSensorErrors(t *testing.T) {
	for _, tc := range []struct {
		config string
		msg    string
	}{
		{`
- name: a
  type: nosuch
`, "unsupported sensor type"},
		{`
- name: a
  type: synthetic
- name: a
  type: synthetic
`, "duplicate sensor name"},
	} {
		cfgs := parseConfigs(t, tc.config)
		_, err := sensor.BuildSensors(cfgs, sensor.AvailableSensors)
		if err == nil || !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("got %v, want an error containing %q", err, tc.msg)
		}
	}
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sensors, err := sensor.BuildSensors(parseConfigs(t, sensorConfig),
		sensor.AvailableSensors)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sensors["inside"].Read(ctx); err == nil {
		t.Errorf("expected an error from a cancelled context")
	}
}

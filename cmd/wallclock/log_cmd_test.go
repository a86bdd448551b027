// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cosnicolaou/wallclock/internal/logging"
)

func TestSimulateAndLogs(t *testing.T) {
	ctx := context.Background()
	tmpFile := filepath.Join(t.TempDir(), "simulate.log")

	fl := &SimulateFlags{
		ConfigFileFlags: ConfigFileFlags{
			SystemFile: filepath.Join("testdata", "system.yaml"),
		},
		DateRange: "07/01/2024:07/02/2024",
		LogFile:   tmpFile,
	}

	run := &Run{out: io.Discard}
	if err := run.Simulate(ctx, fl, []string{}); err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}

	f, err := os.Open(tmpFile)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer f.Close()
	sc := logging.NewScanner(f)
	nTicks := map[string]int{}
	nSamples := map[string]int{}
	nStops := map[string]int{}
	for le := range sc.Entries() {
		switch le.Msg {
		case logging.LogTick:
			nTicks[le.Task]++
		case logging.LogSample:
			nSamples[le.Task]++
		case logging.LogFailed:
			t.Errorf("unexpected failure: %v", le.LogEntry)
		case logging.LogStop:
			nStops[le.Task]++
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	// outdoors samples every 6 hours: the period in progress at the start
	// of July 1 plus 7 further boundaries over the two days. indoors
	// samples every 12 hours offset by one: boundaries at 01:00 and 13:00.
	want := map[string]int{
		"outdoors": 8,
		"indoors":  5,
	}
	if got := nTicks; !maps.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := nSamples; !maps.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := nStops, (map[string]int{"outdoors": 1, "indoors": 1}); !maps.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	out := &bytes.Buffer{}
	log := &Log{out: out}
	if err := log.Status(ctx, &LogStatusFlags{}, []string{tmpFile}); err != nil {
		t.Fatalf("failed to display log status: %v", err)
	}
	for _, want := range []string{"outdoors:outside", "indoors:inside", "completed", "Temperature"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q", want)
		}
	}

	out.Reset()
	if err := log.Status(ctx, &LogStatusFlags{LogFlags: LogFlags{Task: "outdoors"}}, []string{tmpFile}); err != nil {
		t.Fatalf("failed to display log status: %v", err)
	}
	if strings.Contains(out.String(), "indoors:inside") {
		t.Errorf("task filter not applied")
	}
}

func TestConfigTasks(t *testing.T) {
	ctx := context.Background()
	out := &bytes.Buffer{}
	config := &Config{out: out}
	fl := &ConfigFlags{ConfigFileFlags: ConfigFileFlags{
		SystemFile: filepath.Join("testdata", "system.yaml"),
	}}
	if err := config.Tasks(ctx, fl, nil); err != nil {
		t.Fatalf("failed to display config: %v", err)
	}
	for _, want := range []string{"outdoors", "outside", "6h", "12h+1h", "synthetic"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}

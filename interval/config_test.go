// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval_test

import (
	"strings"
	"testing"

	"github.com/cosnicolaou/wallclock/interval"
	"gopkg.in/yaml.v3"
)

func TestParseSpec(t *testing.T) {
	for _, tc := range []struct {
		text string
		want interval.Spec
	}{
		{"5m", newSpec(t, interval.Minute, 5, 0)},
		{"5m+1m", newSpec(t, interval.Minute, 5, 1)},
		{"5m+1", newSpec(t, interval.Minute, 5, 1)},
		{"30s", newSpec(t, interval.Second, 30, 0)},
		{"12h", newSpec(t, interval.Hour, 12, 0)},
		{"1d", newSpec(t, interval.Day, 1, 0)},
		{"28d+1d", newSpec(t, interval.Day, 28, 1)},
		{" 10m + 2m ", newSpec(t, interval.Minute, 10, 2)},
	} {
		got, err := interval.ParseSpec(tc.text)
		if err != nil {
			t.Errorf("%q: %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestParseSpecErrors(t *testing.T) {
	for _, tc := range []struct {
		text string
		msg  string
	}{
		{"", "invalid interval"},
		{"m", "invalid interval"},
		{"5x", "invalid interval unit"},
		{"0m", "period out of range"},
		{"5m+1h", "does not match"},
		{"5m+5m", "offset out of range"},
		{"2419201s", "period out of range"},
		{"5m+banana", "invalid offset"},
	} {
		_, err := interval.ParseSpec(tc.text)
		if err == nil || !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("%q: got %v, want an error containing %q", tc.text, err, tc.msg)
		}
	}
}

func TestSpecConfigYAML(t *testing.T) {
	var cfg struct {
		Every interval.Config `yaml:"every"`
	}
	if err := yaml.Unmarshal([]byte(`every: 5m+1m`), &cfg); err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.Every.Spec, newSpec(t, interval.Minute, 5, 1); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if err := yaml.Unmarshal([]byte(`every: never`), &cfg); err == nil {
		t.Errorf("expected an error")
	}
}

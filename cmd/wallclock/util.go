// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cosnicolaou/wallclock/sampler"
	"github.com/cosnicolaou/wallclock/sensor"
	"github.com/cosnicolaou/wallclock/timezone"
	"gopkg.in/yaml.v3"
)

type ConfigFileFlags struct {
	SystemFile string `subcmd:"system,$HOME/.wallclock-system.yaml,path to a file containing the system configuration"`
}

func loadSystem(ctx context.Context, fv *ConfigFileFlags, opts ...sensor.Option) (sampler.System, error) {
	system, err := sampler.ParseSystemConfigFile(ctx, fv.SystemFile, opts...)
	if err != nil {
		return sampler.System{}, err
	}
	return system, nil
}

func newLogfile(logfile string) (*os.File, error) {
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %q: %v", logfile, err)
	}
	return f, nil
}

func marshalYAML(indent string, v any) string {
	p, _ := yaml.Marshal(v)
	lines := strings.Split(string(p), "\n")
	indented := make([]string, len(lines))
	for i, line := range lines {
		indented[i] = indent + line
	}
	return strings.Join(indented, "\n")
}

// parseInstant accepts a UTC epoch second count or an RFC3339 timestamp.
func parseInstant(val string) (time.Time, error) {
	if epoch, err := strconv.ParseInt(val, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	when, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant: %q: expected epoch seconds or RFC3339", val)
	}
	return when.UTC(), nil
}

func formatLocal(tz timezone.Info, epoch int64) string {
	return tz.Localtime(epoch).String()
}

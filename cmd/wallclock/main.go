// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: wallclock
summary: wallclock is a command line tool for wall-clock time arithmetic and interval driven sensor sampling
commands:
  - name: localtime
    summary: convert UTC epoch instants to local wall-clock time under the configured timezone policy
    arguments:
      - <epoch-seconds>...
  - name: interval
    summary: query/inspect interval specifications
    commands:
      - name: boundaries
        summary: print the boundaries of an interval specification around an instant
        arguments:
          - <spec> - an interval specification, eg. 5m+1m
      - name: sleep
        summary: print how long a task would suspend from an instant to the next boundary
        arguments:
          - <spec> - an interval specification, eg. 5m+1m
  - name: config
    summary: query/inspect the configuration file
    commands:
      - name: display
      - name: tasks
  - name: run
    summary: run the sampling tasks
    commands:
      - name: tasks
        summary: run the configured sampling tasks against the system clock
        arguments:
          - <task>...
      - name: simulate
        summary: |
          run the sampling tasks using simulated time so that they skip
          from boundary to boundary with no real sleeping
  - name: logs
    summary: query/inspect the log files
    commands:
      - name: status
        arguments:
          - <log-files>...
`

func cli() *subcmd.CommandSetYAML {
	cmd := subcmd.MustFromYAML(cmdSpec)

	localtime := &Localtime{out: os.Stdout}
	cmd.Set("localtime").MustRunner(localtime.Run, &LocaltimeFlags{})

	iv := &Interval{out: os.Stdout}
	cmd.Set("interval", "boundaries").MustRunner(iv.Boundaries, &IntervalFlags{})
	cmd.Set("interval", "sleep").MustRunner(iv.Sleep, &IntervalFlags{})

	config := &Config{out: os.Stdout}
	cmd.Set("config", "display").MustRunner(config.Display, &ConfigFlags{})
	cmd.Set("config", "tasks").MustRunner(config.Tasks, &ConfigFlags{})

	run := &Run{out: os.Stdout}
	cmd.Set("run", "tasks").MustRunner(run.Tasks, &RunFlags{})
	cmd.Set("run", "simulate").MustRunner(run.Simulate, &SimulateFlags{})

	log := &Log{out: os.Stdout}
	cmd.Set("logs", "status").MustRunner(log.Status, &LogStatusFlags{})
	return cmd
}

var errInterrupt = errors.New("interrupt")

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancelCause(ctx)
	cmdutil.HandleSignals(func() { cancel(errInterrupt) }, os.Interrupt)
	err := cli().Dispatch(ctx)
	if context.Cause(ctx) == errInterrupt {
		cmdutil.Exit("%v", errInterrupt)
	}
	if err != nil {
		cmdutil.Exit("%v", err)
	}
}

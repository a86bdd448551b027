// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
)

type ConfigFlags struct {
	ConfigFileFlags
}

type Config struct {
	out io.Writer
}

func (c *Config) Display(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ConfigFlags)
	system, err := loadSystem(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Timezone: %v\n", system.TZ)
	if start := system.TZ.DSTStart(); system.TZ.DSTAdjust().Seconds() != 0 {
		fmt.Fprintf(c.out, "  DST: %v -> %v (%v)\n", start, system.TZ.DSTEnd(), system.TZ.DSTAdjust())
	}

	for _, cfg := range system.Config.Sensors {
		fmt.Fprintf(c.out, "Sensor:\n%v\n", marshalYAML("  ", cfg.ConfigCommon))
	}

	for _, task := range system.Tasks {
		fmt.Fprintf(c.out, "Task: %v\n  sensor: %v\n  every: %v\n", task.Name, task.Sensor.Name(), task.Spec)
		if task.Poll > 0 {
			fmt.Fprintf(c.out, "  poll: %v\n", task.Poll)
		}
		if task.At != nil {
			fmt.Fprintf(c.out, "  at: %v\n", task.At)
		}
	}
	return nil
}

func (c *Config) Tasks(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ConfigFlags)
	system, err := loadSystem(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	tm := newTableManager()
	fmt.Fprintln(c.out, tm.Sensors(system).Render())
	fmt.Fprintln(c.out, tm.Tasks(system).Render())
	return nil
}

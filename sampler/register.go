// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sampler

import (
	"context"
	"fmt"

	"github.com/cosnicolaou/wallclock/schedule"
)

// RegisterTasks registers every task that carries a wall-clock spec
// with an external scheduler. The registered callback performs a single
// read of the task's sensor; interval driven sampling is unaffected.
func RegisterTasks(system System, reg schedule.Registrar) error {
	for _, task := range system.Tasks {
		if task.At == nil {
			continue
		}
		snr := task.Sensor
		err := reg.Register(task.Name, *task.At, func(ctx context.Context) error {
			_, err := snr.Read(ctx)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to register task %v: %w", task.Name, err)
		}
	}
	return nil
}

// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cosnicolaou/wallclock/internal/logging"
	"github.com/cosnicolaou/wallclock/sampler"
	"github.com/cosnicolaou/wallclock/timezone"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type tableManager struct {
	titles cases.Caser
}

func newTableManager() tableManager {
	return tableManager{titles: cases.Title(language.English)}
}

func (tm tableManager) Tasks(system sampler.System) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Tasks")
	tw.AppendHeader(table.Row{"Name", "Sensor", "Interval", "Period", "Mode", "Wall-Clock"})
	for _, task := range system.Tasks {
		mode := "wait"
		if task.Poll > 0 {
			mode = fmt.Sprintf("poll every %v", task.Poll)
		}
		at := ""
		if task.At != nil {
			at = task.At.String()
		}
		tw.AppendRow(table.Row{task.Name, task.Sensor.Name(), task.Spec, task.Spec.PeriodDuration(), mode, at})
	}
	return tw
}

func (tm tableManager) Sensors(system sampler.System) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Sensors")
	tw.AppendHeader(table.Row{"Name", "Type"})
	for _, cfg := range system.Config.Sensors {
		tw.AppendRow(table.Row{cfg.Name, cfg.Type})
	}
	return tw
}

func (tm tableManager) Localtimes(tz timezone.Info, epochs []int64) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Timezone %v", tz)
	tw.AppendHeader(table.Row{"Epoch", "UTC", "Local", "DST", "Offset"})
	for _, epoch := range epochs {
		offset := time.Duration(tz.OffsetSecondsAt(epoch)) * time.Second
		tw.AppendRow(table.Row{
			epoch,
			time.Unix(epoch, 0).UTC().Format(time.RFC3339),
			formatLocal(tz, epoch),
			tz.InDST(epoch),
			offset,
		})
	}
	return tw
}

func (tm tableManager) Boundaries(tz timezone.Info, boundaries []int64) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Boundary", "UTC", "Local"})
	for _, b := range boundaries {
		tw.AppendRow(table.Row{b, time.Unix(b, 0).UTC().Format(time.RFC3339), formatLocal(tz, b)})
	}
	return tw
}

func (tm tableManager) formatValues(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%v: %.2f", tm.titles.String(name), values[name])
	}
	return strings.Join(parts, ", ")
}

func (tm tableManager) completedRow(tr *logging.TickRecord) table.Row {
	return table.Row{
		tr.Name(),
		tr.Boundary.Format(time.RFC3339),
		tr.Status(),
		tr.Drift.Round(time.Millisecond),
		tm.formatValues(tr.Values),
		tr.ErrorMessage(),
	}
}

func (tm tableManager) Completed(sr *logging.StatusRecorder) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Completed")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	tw.AppendHeader(table.Row{"Task", "Boundary", "Status", "Drift", "Values", "Error"})
	for tr := range sr.CompletedRecords() {
		tw.AppendRow(tm.completedRow(tr))
	}
	return tw
}

func (tm tableManager) Pending(sr *logging.StatusRecorder) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Pending")
	tw.AppendHeader(table.Row{"Task", "Boundary", "Pending Since"})
	for tr := range sr.PendingRecords() {
		tw.AppendRow(table.Row{tr.Name(), tr.Boundary.Format(time.RFC3339), tr.Pending.Format(time.RFC3339)})
	}
	return tw
}

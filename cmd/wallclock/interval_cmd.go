// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cosnicolaou/wallclock/interval"
	"github.com/cosnicolaou/wallclock/timezone"
)

type IntervalFlags struct {
	ConfigFileFlags
	At    string `subcmd:"at,,instant as epoch seconds or RFC3339; defaults to now"`
	Count int    `subcmd:"count,5,number of boundaries to print"`
}

type Interval struct {
	out io.Writer
}

func (iv *Interval) setup(ctx context.Context, fv *IntervalFlags, args []string) (*interval.Engine, timezone.Info, time.Time, error) {
	spec, err := interval.ParseSpec(args[0])
	if err != nil {
		return nil, timezone.Info{}, time.Time{}, err
	}
	engine, err := interval.NewEngine(spec)
	if err != nil {
		return nil, timezone.Info{}, time.Time{}, err
	}
	at := time.Now().UTC()
	if fv.At != "" {
		if at, err = parseInstant(fv.At); err != nil {
			return nil, timezone.Info{}, time.Time{}, err
		}
	}
	// The timezone is used for display only; a missing config file is
	// not an error, boundaries are simply shown in GMT.
	tz, _ := timezone.NewFixedInfo(timezone.TimeOffset{})
	if system, err := loadSystem(ctx, &fv.ConfigFileFlags); err == nil {
		tz = system.TZ
	}
	return engine, tz, at, nil
}

func (iv *Interval) Boundaries(ctx context.Context, flags any, args []string) error {
	fv := flags.(*IntervalFlags)
	engine, tz, at, err := iv.setup(ctx, fv, args)
	if err != nil {
		return err
	}
	boundaries := make([]int64, 0, fv.Count)
	cur := engine.BoundaryAt(at.Unix())
	for range fv.Count {
		boundaries = append(boundaries, cur)
		cur = engine.NextBoundary(cur)
	}
	fmt.Fprintln(iv.out, newTableManager().Boundaries(tz, boundaries).Render())
	return nil
}

func (iv *Interval) Sleep(ctx context.Context, flags any, args []string) error {
	fv := flags.(*IntervalFlags)
	engine, _, at, err := iv.setup(ctx, fv, args)
	if err != nil {
		return err
	}
	d := engine.SleepDuration(at.Unix())
	fmt.Fprintf(iv.out, "%v: at %v sleep %v until %v\n",
		engine.Spec(), at.Format(time.RFC3339), d,
		time.Unix(engine.NextBoundary(at.Unix()), 0).UTC().Format(time.RFC3339))
	return nil
}

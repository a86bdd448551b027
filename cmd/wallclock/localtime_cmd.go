// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cosnicolaou/wallclock/timezone"
)

type LocaltimeFlags struct {
	ConfigFileFlags
	Offset    string `subcmd:"offset,,base UTC offset as [+|-]h[:mm] overriding the configuration file"`
	DSTStart  string `subcmd:"dst-start,,transition into daylight saving eg. mar sun[2] 02:00"`
	DSTEnd    string `subcmd:"dst-end,,transition out of daylight saving"`
	DSTAdjust string `subcmd:"dst-adjust,,adjustment added during daylight saving as h[:mm]"`
}

type Localtime struct {
	out io.Writer
}

// timezoneInfo builds the policy from flags if any are set, otherwise
// from the configuration file.
func (l *Localtime) timezoneInfo(ctx context.Context, fv *LocaltimeFlags) (timezone.Info, error) {
	if fv.Offset == "" && fv.DSTStart == "" && fv.DSTEnd == "" && fv.DSTAdjust == "" {
		system, err := loadSystem(ctx, &fv.ConfigFileFlags)
		if err != nil {
			return timezone.Info{}, err
		}
		return system.TZ, nil
	}
	offset, err := timezone.ParseOffset(fv.Offset)
	if err != nil {
		return timezone.Info{}, err
	}
	if fv.DSTStart == "" && fv.DSTEnd == "" {
		return timezone.NewFixedInfo(offset)
	}
	start, err := timezone.ParseRule(fv.DSTStart)
	if err != nil {
		return timezone.Info{}, err
	}
	end, err := timezone.ParseRule(fv.DSTEnd)
	if err != nil {
		return timezone.Info{}, err
	}
	adjust, err := timezone.ParseAdjust(fv.DSTAdjust)
	if err != nil {
		return timezone.Info{}, err
	}
	return timezone.NewInfo(offset, start, end, adjust)
}

func (l *Localtime) Run(ctx context.Context, flags any, args []string) error {
	fv := flags.(*LocaltimeFlags)
	tz, err := l.timezoneInfo(ctx, fv)
	if err != nil {
		return err
	}
	epochs := make([]int64, 0, len(args))
	if len(args) == 0 {
		epochs = append(epochs, time.Now().Unix())
	}
	for _, arg := range args {
		when, err := parseInstant(arg)
		if err != nil {
			return err
		}
		epochs = append(epochs, when.Unix())
	}
	fmt.Fprintln(l.out, newTableManager().Localtimes(tz, epochs).Render())
	return nil
}

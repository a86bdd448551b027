// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package sensor defines the capability interface behind which concrete
// measurement drivers sit. The sampling code in this module depends only
// on the Read capability; bus protocols, register maps and vendor drivers
// live outside the module and are registered here via factory functions.
package sensor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cosnicolaou/wallclock/interval"
	"gopkg.in/yaml.v3"
)

// Reading is a single measurement: named values observed at an instant.
type Reading struct {
	When   time.Time
	Values map[string]float64
}

// Sensor is the capability required of any measurement source.
type Sensor interface {
	Name() string
	Read(ctx context.Context) (Reading, error)
}

// SupportedSensors maps a sensor type to a factory for it.
type SupportedSensors map[string]func(typ string, opts Options) (Sensor, error)

// AvailableSensors is the process-wide factory registry; main packages
// extend it with the drivers they link in.
var AvailableSensors = SupportedSensors{
	"synthetic": NewSynthetic,
}

type Option func(*Options)

type Options struct {
	Logger     *slog.Logger
	TimeSource interval.TimeSource
	Custom     any
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func WithTimeSource(ts interval.TimeSource) Option {
	return func(o *Options) {
		o.TimeSource = ts
	}
}

func WithCustom(c any) Option {
	return func(o *Options) {
		o.Custom = c
	}
}

// BuildSensors instantiates a sensor for every config entry using the
// factories in supported.
func BuildSensors(cfgs []Config, supported SupportedSensors, opts ...Option) (map[string]Sensor, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.TimeSource == nil {
		options.TimeSource = interval.SystemTimeSource{}
	}
	sensors := map[string]Sensor{}
	for _, cfg := range cfgs {
		factory, ok := supported[cfg.Type]
		if !ok {
			return nil, fmt.Errorf("unsupported sensor type: %v for %v", cfg.Type, cfg.Name)
		}
		if _, ok := sensors[cfg.Name]; ok {
			return nil, fmt.Errorf("duplicate sensor name: %v", cfg.Name)
		}
		s, err := factory(cfg.Type, options)
		if err != nil {
			return nil, fmt.Errorf("failed to create sensor %v: %w", cfg.Name, err)
		}
		if cs, ok := s.(Configurable); ok {
			cs.SetConfig(cfg.ConfigCommon)
			if err := cfg.Config.Decode(s); err != nil {
				return nil, fmt.Errorf("failed to configure sensor %v: %w", cfg.Name, err)
			}
		}
		sensors[cfg.Name] = s
	}
	return sensors, nil
}

// Configurable is implemented by sensors that accept configuration from
// the system config file. SetConfig receives the common fields and the
// sensor's inline custom configuration is decoded into the sensor itself.
type Configurable interface {
	SetConfig(ConfigCommon)
	UnmarshalYAML(node *yaml.Node) error
}

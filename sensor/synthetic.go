// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sensor

import (
	"context"
	"math"

	"gopkg.in/yaml.v3"
)

// SyntheticConfig configures the synthetic sensor. The base values are
// the midpoints of a diurnal cycle; the seed perturbs the cycle so that
// two synthetic sensors do not report identical values.
type SyntheticConfig struct {
	Seed        int64   `yaml:"seed" cmd:"perturbation seed"`
	Temperature float64 `yaml:"temperature" cmd:"base temperature in celsius"`
	Humidity    float64 `yaml:"humidity" cmd:"base relative humidity in percent"`
	Pressure    float64 `yaml:"pressure" cmd:"base pressure in hectopascal"`
}

// Synthetic produces deterministic measurements derived from the clock
// and its seed; it exists for demos and tests where no hardware is
// attached. Readings are a pure function of the reading instant and the
// configuration.
type Synthetic struct {
	ConfigCommon
	SyntheticConfig
	opts Options
}

// NewSynthetic is the factory for "synthetic" sensors.
func NewSynthetic(_ string, opts Options) (Sensor, error) {
	s := &Synthetic{opts: opts}
	s.SyntheticConfig = SyntheticConfig{
		Temperature: 20,
		Humidity:    50,
		Pressure:    1013.25,
	}
	return s, nil
}

func (s *Synthetic) SetConfig(cfg ConfigCommon) {
	s.ConfigCommon = cfg
}

func (s *Synthetic) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.SyntheticConfig)
}

func (s *Synthetic) Name() string { return s.ConfigCommon.Name }

func (s *Synthetic) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	ts := s.opts.TimeSource
	when := ts.Now()
	phase := 2 * math.Pi * float64(when.Unix()%86400) / 86400
	jitter := math.Sin(float64(when.Unix()+s.Seed) / 7)
	return Reading{
		When: when,
		Values: map[string]float64{
			"temperature": s.Temperature - 5*math.Cos(phase) + 0.3*jitter,
			"humidity":    s.Humidity + 10*math.Cos(phase) + 0.5*jitter,
			"pressure":    s.Pressure + 2*math.Sin(phase) + 0.1*jitter,
		},
	}, nil
}

// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sampler

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/cmdutil/cmdyaml"
	"github.com/cosnicolaou/wallclock/interval"
	"github.com/cosnicolaou/wallclock/schedule"
	"github.com/cosnicolaou/wallclock/sensor"
	"github.com/cosnicolaou/wallclock/timezone"
	"gopkg.in/yaml.v3"
)

type durationConfig time.Duration

func (dc *durationConfig) UnmarshalYAML(node *yaml.Node) error {
	d, err := time.ParseDuration(node.Value)
	if err != nil {
		return err
	}
	*dc = durationConfig(d)
	return nil
}

// TaskConfig describes one sampling task: which sensor to read and the
// interval at which to read it. A task suspends until each boundary
// unless a poll cadence is given, in which case it wakes at that cadence
// and uses the edge-triggered poll to detect boundaries.
type TaskConfig struct {
	Name   string           `yaml:"name" cmd:"the name of the task"`
	Sensor string           `yaml:"sensor" cmd:"the name of the sensor to read"`
	Every  interval.Config  `yaml:"every" cmd:"the sampling interval, eg. 5m or 5m+1m"`
	Poll   durationConfig   `yaml:"poll" cmd:"optional polling cadence, eg. 30s; the task polls for boundaries instead of suspending until the next one"`
	At     *schedule.Config `yaml:"at" cmd:"optional wall-clock spec, <hours> <minutes>, for registration with an external scheduler"`
}

// SystemConfig is the top level configuration file: a timezone policy
// for presenting timestamps, the sensors attached to the system and the
// sampling tasks that read them.
type SystemConfig struct {
	Timezone timezone.Config `yaml:"timezone" cmd:"the timezone policy used to render local times"`
	Sensors  []sensor.Config `yaml:"sensors" cmd:"the sensors that are being configured"`
	Tasks    []TaskConfig    `yaml:"tasks" cmd:"the sampling tasks"`
}

// Task is a parsed, validated sampling task bound to its sensor.
type Task struct {
	Name   string
	Sensor sensor.Sensor
	Spec   interval.Spec
	Poll   time.Duration
	At     *schedule.TimeMatch
}

type System struct {
	Config  SystemConfig
	TZ      timezone.Info
	Sensors map[string]sensor.Sensor
	Tasks   []Task
}

func (s System) LookupTask(name string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// ParseSystemConfigFile parses the supplied configuration file as per
// ParseSystemConfig.
func ParseSystemConfigFile(ctx context.Context, cfgFile string, opts ...sensor.Option) (System, error) {
	var cfg SystemConfig
	if err := cmdyaml.ParseConfigFile(ctx, cfgFile, &cfg); err != nil {
		return System{}, err
	}
	return cfg.CreateSystem(opts...)
}

// ParseSystemConfig parses the supplied configuration data and returns
// a System using CreateSystem.
func ParseSystemConfig(_ context.Context, cfgData []byte, opts ...sensor.Option) (System, error) {
	var cfg SystemConfig
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return System{}, err
	}
	return cfg.CreateSystem(opts...)
}

// CreateSystem instantiates the configured sensors and binds each task
// to its sensor.
func (cfg SystemConfig) CreateSystem(opts ...sensor.Option) (System, error) {
	tz, err := cfg.Timezone.Info()
	if err != nil {
		return System{}, fmt.Errorf("invalid timezone: %w", err)
	}
	sensors, err := sensor.BuildSensors(cfg.Sensors, sensor.AvailableSensors, opts...)
	if err != nil {
		return System{}, err
	}
	sys := System{
		Config:  cfg,
		TZ:      tz,
		Sensors: sensors,
	}
	names := map[string]struct{}{}
	for _, tc := range cfg.Tasks {
		if _, ok := names[tc.Name]; ok {
			return System{}, fmt.Errorf("duplicate task name: %v", tc.Name)
		}
		names[tc.Name] = struct{}{}
		snr, ok := sensors[tc.Sensor]
		if !ok {
			return System{}, fmt.Errorf("unknown sensor: %v for task %v", tc.Sensor, tc.Name)
		}
		if tc.Every.Spec.Period() == 0 {
			return System{}, fmt.Errorf("missing interval for task %v", tc.Name)
		}
		task := Task{
			Name:   tc.Name,
			Sensor: snr,
			Spec:   tc.Every.Spec,
			Poll:   time.Duration(tc.Poll),
		}
		if tc.At != nil {
			task.At = &tc.At.TimeMatch
		}
		sys.Tasks = append(sys.Tasks, task)
	}
	return sys, nil
}

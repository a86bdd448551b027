// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package sensor

import (
	"gopkg.in/yaml.v3"
)

// ConfigCommon holds the fields every sensor entry shares.
type ConfigCommon struct {
	Name string `yaml:"name" cmd:"the name of the sensor"`
	Type string `yaml:"type" cmd:"the type of the sensor, used to select its factory"`
}

// Config is one sensor entry in the system config file. The common fields
// are decoded first and the full node retained so that the sensor's own
// custom fields can be decoded into the concrete type once it exists.
type Config struct {
	ConfigCommon
	Config yaml.Node `yaml:",inline"`
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode(&c.ConfigCommon); err != nil {
		return err
	}
	return node.Decode(&c.Config)
}

// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSpec parses the textual form of a spec: a period and an optional
// phase offset, each an integer with a unit suffix (s, m, h or d), joined
// by '+'. The offset's suffix may be omitted and must otherwise match the
// period's. Examples: "30s", "5m", "5m+1m", "12h", "1d".
func ParseSpec(val string) (Spec, error) {
	periodText, offsetText, found := strings.Cut(strings.TrimSpace(val), "+")
	period, unit, err := parseValueAndUnit(periodText)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid interval: %q: %w", val, err)
	}
	offset := 0
	if found {
		var offsetUnit Unit
		offset, offsetUnit, err = parseValueAndUnit(offsetText)
		if err != nil {
			offset, err = strconv.Atoi(strings.TrimSpace(offsetText))
			offsetUnit = unit
		}
		if err != nil {
			return Spec{}, fmt.Errorf("invalid interval: %q: invalid offset: %q", val, offsetText)
		}
		if offsetUnit != unit {
			return Spec{}, fmt.Errorf("invalid interval: %q: offset unit %v does not match period unit %v", val, offsetUnit, unit)
		}
	}
	return NewSpec(unit, period, offset)
}

func parseValueAndUnit(val string) (int, Unit, error) {
	val = strings.TrimSpace(val)
	idx := strings.IndexFunc(val, func(r rune) bool { return r < '0' || r > '9' })
	if idx <= 0 {
		return 0, 0, fmt.Errorf("expected <integer><unit>: %q", val)
	}
	v, err := strconv.Atoi(val[:idx])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value: %q", val[:idx])
	}
	unit, err := ParseUnit(val[idx:])
	if err != nil {
		return 0, 0, err
	}
	return v, unit, nil
}

// Config is the YAML representation of a Spec in ParseSpec's format.
type Config struct {
	Spec
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	s, err := ParseSpec(node.Value)
	if err != nil {
		return err
	}
	c.Spec = s
	return nil
}

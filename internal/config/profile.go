// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is a named set of comparison options kept under
// profiles.<name> in the config file. Pointer fields distinguish "unset" from
// false so that the built-in defaults survive.
type Profile struct {
	Recursive      *bool    `yaml:"recursive"`
	NullEmpty      bool     `yaml:"null_empty"`
	DefaultMissing bool     `yaml:"default_missing"`
	ByKey          bool     `yaml:"by_key"`
	Keys           []string `yaml:"keys"`
	Unequal        bool     `yaml:"unequal"`
	Ignore         []string `yaml:"ignore"`
	RawValues      *bool    `yaml:"raw_values"`
}

// IsRecursive reports the recursive setting, true when unset.
func (p Profile) IsRecursive() bool {
	return p.Recursive == nil || *p.Recursive
}

// IncludesRawValues reports the raw value setting, true when unset.
func (p Profile) IncludesRawValues() bool {
	return p.RawValues == nil || *p.RawValues
}

// LoadProfile decodes profiles.<name>. An empty name yields the zero Profile.
func LoadProfile(name string) (Profile, error) {
	var p Profile
	if name == "" {
		return p, nil
	}

	if len(Config.Data) == 0 {
		_, _ = Load()
	}
	raw, err := Config.get("profiles." + name)
	if err != nil {
		return p, fmt.Errorf("profile %q not found: %w", name, err)
	}

	// Round trip through YAML to reuse the struct tags.
	b, err := yaml.Marshal(raw)
	if err != nil {
		return p, fmt.Errorf("profile %q: %w", name, err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("profile %q: %w", name, err)
	}
	return p, nil
}

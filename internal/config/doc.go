// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for objdiff's user
// configuration. The configuration is a YAML document named objdiff.yaml in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/objdiff.yaml or $HOME/.config/objdiff.yaml
//   - macOS: $HOME/Library/Application Support/objdiff.yaml
//   - Windows: %APPDATA%/objdiff.yaml
//
// OBJDIFF_CFG_FILE overrides the location. Besides plain settings the file may
// hold named comparison profiles under the "profiles" key.
package config

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/tfctl/objdiff/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, and the reader used for "-" documents.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Stdin is nil for os.Stdin.
	Stdin       io.Reader
	StartingDir string
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/meta"
)

// CompareCommandBuilder is a helper that constructs a cli.Command for the
// subcommands comparing two documents (diff, tree, browse). The builder wires
// metadata, applies global flags and requires the LEFT and RIGHT arguments.
type CompareCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (ccb *CompareCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      ccb.Name,
		Usage:     ccb.Usage,
		UsageText: ccb.UsageText,
		Metadata: map[string]any{
			"meta": ccb.Meta,
		},
		Flags: append(ccb.Flags, NewGlobalFlags(ccb.Name, ccb.Meta.Config.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, ArgsValidator(ctx, c)
		},
		Action: ccb.Action,
	}
}

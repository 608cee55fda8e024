// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/differ"
	"github.com/tfctl/objdiff/internal/meta"
	"github.com/tfctl/objdiff/internal/output"
)

// emitDifferences writes the result in the format named by --output. The
// delta format bypasses the comparer and prints a gojsondiff rendering of the
// documents.
func emitDifferences(_ context.Context, cmd *cli.Command, req differ.Request, res *differ.Result) (bool, error) {
	w := Writer(cmd)

	if cmd.String("output") == "delta" {
		return differ.Delta(w, res.Left, res.Right, req.Profile.Ignore, cmd.Bool("color"))
	}

	opts := output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: int(cmd.Int("padding")),
		Sort:    cmd.String("sort"),
		Summary: cmd.Bool("summary"),
		Raw:     cmd.Bool("raw"),
	}
	if err := output.Render(w, res.Locations, opts); err != nil {
		return false, err
	}
	return len(res.Locations) > 0, nil
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &CompareActionRunner{CommandName: "diff", EmitFn: emitDifferences}
	return (&CompareCommandBuilder{
		Name:      "diff",
		Usage:     "list the differences between two documents",
		UsageText: "objdiff diff [options] LEFT RIGHT",
		Flags:     NewOutputFlags("text", "diff", meta.Config.Source),
		Action:    runner.Run,
		Meta:      meta,
	}).Build()
}

// treeCommandBuilder constructs the cli.Command for "tree". It is diff with
// the tree rendering as its default output.
func treeCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &CompareActionRunner{CommandName: "tree", EmitFn: emitDifferences}
	return (&CompareCommandBuilder{
		Name:      "tree",
		Usage:     "show the differences between two documents as a tree",
		UsageText: "objdiff tree [options] LEFT RIGHT",
		Flags:     NewOutputFlags("tree", "tree", meta.Config.Source),
		Action:    runner.Run,
		Meta:      meta,
	}).Build()
}

// browseCommandBuilder constructs the cli.Command for "browse".
func browseCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &CompareActionRunner{
		CommandName: "browse",
		EmitFn: func(_ context.Context, _ *cli.Command, _ differ.Request, res *differ.Result) (bool, error) {
			return len(res.Locations) > 0, differ.Browse(res.Locations)
		},
	}
	return (&CompareCommandBuilder{
		Name:      "browse",
		Usage:     "interactively browse the differences between two documents",
		UsageText: "objdiff browse [options] LEFT RIGHT",
		Action:    runner.Run,
		Meta:      meta,
	}).Build()
}

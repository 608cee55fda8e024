// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/aws"
	"github.com/tfctl/objdiff/internal/cacheutil"
	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/differ"
	"github.com/tfctl/objdiff/internal/document"
	"github.com/tfctl/objdiff/internal/log"
)

// CompareActionRunner encapsulates the common action of the comparing
// subcommands. It builds the request from flags, runs the comparison and
// hands the result to EmitFn, which reports whether differences were found.
type CompareActionRunner struct {
	CommandName string
	EmitFn      func(context.Context, *cli.Command, differ.Request, *differ.Result) (bool, error)
}

// Run executes the comparison with the provided context and command.
func (car *CompareActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = car.CommandName

	req, err := BuildRequest(cmd)
	if err != nil {
		return err
	}

	res, err := differ.Run(ctx, req)
	if err != nil {
		return err
	}

	found, err := car.EmitFn(ctx, cmd, req, res)
	if err != nil {
		return err
	}

	if found && cmd.Bool("exit-code") {
		return ErrDifferencesFound
	}
	return nil
}

// BuildRequest assembles a differ.Request from the command's arguments and
// flags. Comparison flags that were set override the selected profile.
func BuildRequest(cmd *cli.Command) (differ.Request, error) {
	profile, err := config.LoadProfile(cmd.String("profile"))
	if err != nil {
		return differ.Request{}, err
	}
	applyComparisonFlags(cmd, &profile)
	log.Debugf("profile: %+v", profile)

	format, err := document.ParseFormat(cmd.String("format"))
	if err != nil {
		return differ.Request{}, err
	}

	m := GetMeta(cmd)
	opts := []document.Option{document.WithFormat(format)}
	if p := cmd.String("passphrase"); p != "" {
		opts = append(opts, document.WithPassphrase(p))
	}
	if m.Stdin != nil {
		opts = append(opts, document.WithStdin(m.Stdin))
	}
	opts = append(opts, document.WithAWS(awsOptions(cmd)...))
	if !cmd.Bool("no-cache") {
		if c, ok := cacheutil.Default(cacheutil.DefaultTTL); ok {
			opts = append(opts, document.WithCache(c))
		}
	}

	return differ.Request{
		Left:    cmd.Args().Get(0),
		Right:   cmd.Args().Get(1),
		Select:  cmd.String("select"),
		Filter:  cmd.String("filter"),
		Profile: profile,
		Load:    opts,
	}, nil
}

func applyComparisonFlags(cmd *cli.Command, p *config.Profile) {
	if cmd.IsSet("by-key") {
		p.ByKey = cmd.Bool("by-key")
	}
	if cmd.IsSet("key") {
		p.Keys = splitList(cmd.String("key"))
		// Naming keys implies matching by them.
		p.ByKey = true
	}
	if cmd.IsSet("unequal") {
		p.Unequal = cmd.Bool("unequal")
	}
	if cmd.IsSet("null-empty") {
		p.NullEmpty = cmd.Bool("null-empty")
	}
	if cmd.IsSet("default-missing") {
		p.DefaultMissing = cmd.Bool("default-missing")
	}
	if cmd.IsSet("no-recursive") {
		r := !cmd.Bool("no-recursive")
		p.Recursive = &r
	}
	if cmd.IsSet("raw") {
		raw := cmd.Bool("raw")
		p.RawValues = &raw
	}
	if cmd.IsSet("ignore") {
		p.Ignore = append(p.Ignore, splitList(cmd.String("ignore"))...)
	}
}

func awsOptions(cmd *cli.Command) (opts []aws.Option) {
	if v := cmd.String("aws-profile"); v != "" {
		opts = append(opts, aws.WithProfile(v))
	}
	if v := cmd.String("region"); v != "" {
		opts = append(opts, aws.WithRegion(v))
	}
	if v := cmd.String("endpoint"); v != "" {
		opts = append(opts, aws.WithEndpoint(v))
	}
	return
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"slices"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the flags shared by every comparing command. When
// cfgFile is set, each flag also reads ns.<flag> and then <flag> from it.
func NewGlobalFlags(ns string, cfgFile string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OBJDIFF_COLOR")),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to differences",
			Validator: func(value string) error {
				return FlagValidators(value, FilterValidator)
			},
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "input format of both documents (json, yaml, hcl). Detected when empty",
			Sources: cli.NewValueSourceChain(),
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Usage:   "passphrase of encrypted OpenTofu states",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OBJDIFF_PASSPHRASE")),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "named comparison profile from the config file",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OBJDIFF_PROFILE")),
		},
		&cli.StringFlag{
			Name:  "select",
			Usage: "compare only the value at this path in both documents, e.g. spec.containers[0]",
		},
	}

	flags = append(flags, NewComparisonFlags()...)
	flags = append(flags, NewAWSFlags()...)

	if cfgFile != "" {
		for _, f := range flags {
			NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, f)
		}
	}
	return
}

// NewComparisonFlags returns the flags that override a comparison profile.
func NewComparisonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "by-key",
			Aliases: []string{"k"},
			Usage:   "match list elements by key instead of position",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "default-missing",
			Usage:   "compare a missing member as its default value",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.StringFlag{
			Name:    "ignore",
			Aliases: []string{"i"},
			Usage:   "comma-separated list of member names to skip",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.StringFlag{
			Name:    "key",
			Usage:   "comma-separated list of element keys tried in order with --by-key",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "no-recursive",
			Usage:   "compare nested objects as whole values",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "null-empty",
			Usage:   "treat null and empty lists as equal",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "raw",
			Usage:   "include the unconverted values in json and yaml output",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "unequal",
			Aliases: []string{"u"},
			Usage:   "keep comparing elements of lists with different lengths",
			Sources: cli.NewValueSourceChain(),
		},
	}
}

// NewOutputFlags returns the flags controlling how differences are written.
func NewOutputFlags(output string, ns string, cfgFile string) []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:    "exit-code",
			Aliases: []string{"e"},
			Usage:   "exit with status 1 when differences are found",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, tree, delta)",
			Value:   output,
			Sources: cli.NewValueSourceChain(),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "column padding of text output",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of fields to sort differences by (path, kind, value1, value2, depth)",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "summary",
			Usage:   "print a count of the differences",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(),
		},
	}

	if cfgFile != "" {
		for _, f := range flags {
			NameSpacedValueChainFlagFromConfigFile(ns, cfgFile, f)
		}
	}
	return flags
}

// NewAWSFlags returns the flags used for s3:// documents.
func NewAWSFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "aws-profile",
			Usage:   "shared config profile used for s3:// documents",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "S3 compatible endpoint, path style addressing is used",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OBJDIFF_S3_ENDPOINT")),
		},
		&cli.BoolFlag{
			Name:    "no-cache",
			Usage:   "do not cache s3:// documents",
			Sources: cli.NewValueSourceChain(),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "region used for s3:// documents",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Flags without a chain are left
// untouched.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag cli.Flag) cli.Flag {
	var chain *cli.ValueSourceChain
	name := flag.Names()[0]

	switch f := flag.(type) {
	case *cli.StringFlag:
		chain = &f.Sources
	case *cli.BoolFlag:
		chain = &f.Sources
	case *cli.IntFlag:
		chain = &f.Sources
	default:
		return flag
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
	return flag
}

// IsBoolFlag reports whether name, without leading dashes, is a boolean flag
// of the comparing commands.
func IsBoolFlag(name string) bool {
	switch name {
	case "help", "h", "version", "v":
		return true
	}

	flags := append(NewGlobalFlags("", ""), NewOutputFlags("", "", "")...)
	for _, f := range flags {
		if _, ok := f.(*cli.BoolFlag); ok && slices.Contains(f.Names(), name) {
			return true
		}
	}
	return false
}

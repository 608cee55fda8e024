// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/document"
	"github.com/tfctl/objdiff/internal/filters"
	"github.com/tfctl/objdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// ArgsValidator requires exactly the LEFT and RIGHT documents.
func ArgsValidator(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 2 {
		return fmt.Errorf("%s requires exactly two documents, got %d", c.Name, c.NArg())
	}
	return nil
}

func OutputValidator(value any) error {
	valid := append(slices.Clone(output.Formats), "delta")
	if s, ok := value.(string); ok && slices.Contains(valid, s) {
		return nil
	}
	return fmt.Errorf("must be one of %v", valid)
}

func FilterValidator(value any) error {
	s, _ := value.(string)
	return filters.Validate(s)
}

func FormatValidator(value any) error {
	s, _ := value.(string)
	_, err := document.ParseFormat(s)
	return err
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a hook or factory that produced an unusable result.
	ErrConfiguration = errors.New("comparer configuration error")

	// ErrInvalidArgument reports a value the comparer cannot handle.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCustomSettingNotFound reports a lookup of an unset custom setting.
	ErrCustomSettingNotFound = errors.New("custom setting not found")

	// ErrElementKeyNotFound is matched by every ElementKeyNotFoundError.
	ErrElementKeyNotFound = errors.New("element key not found")
)

// ElementKeyNotFoundError is raised in keyed sequence comparison when an
// element yields no key and KeyOptions.ThrowKeyNotFound is set.
type ElementKeyNotFoundError struct {
	Element any
	Node    *Node
}

func (e *ElementKeyNotFoundError) Error() string {
	return fmt.Sprintf("element key not found: path=%q element=%s", e.Node.Path(), FormatValue(e.Element))
}

func (e *ElementKeyNotFoundError) Unwrap() error {
	return ErrElementKeyNotFound
}

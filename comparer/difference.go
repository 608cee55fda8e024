// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"strings"
)

// Kind classifies a Difference.
type Kind int

const (
	ValueMismatch Kind = iota
	TypeMismatch
	NumberOfElementsMismatch
	MissingMemberInFirst
	MissingMemberInSecond
	MissingElementInFirst
	MissingElementInSecond
)

var kindNames = [...]string{
	ValueMismatch:            "ValueMismatch",
	TypeMismatch:             "TypeMismatch",
	NumberOfElementsMismatch: "NumberOfElementsMismatch",
	MissingMemberInFirst:     "MissingMemberInFirst",
	MissingMemberInSecond:    "MissingMemberInSecond",
	MissingElementInFirst:    "MissingElementInFirst",
	MissingElementInSecond:   "MissingElementInSecond",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown difference kind %q", ErrInvalidArgument, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Difference is one reported mismatch between two compared values. Values are
// never mutated once created; WithPath returns a copy.
type Difference struct {
	Path   string `json:"path" yaml:"path"`
	Value1 string `json:"value1" yaml:"value1"`
	Value2 string `json:"value2" yaml:"value2"`
	Kind   Kind   `json:"kind" yaml:"kind"`

	// Raw values are dropped when DifferenceOptions.IncludeRawValues is false.
	RawValue1 any `json:"-" yaml:"-"`
	RawValue2 any `json:"-" yaml:"-"`
}

// WithPath returns a copy of d with its path replaced.
func (d Difference) WithPath(path string) Difference {
	d.Path = path
	return d
}

func (d Difference) String() string {
	return fmt.Sprintf("Difference: Kind=%s, Path='%s', Value1='%s', Value2='%s'.",
		d.Kind, d.Path, d.Value1, d.Value2)
}

// DifferenceLocation pairs a Difference with the Node that was active when it
// was produced.
type DifferenceLocation struct {
	Difference Difference
	Node       *Node
}

// insertPath prepends segment to path. Member segments are joined with a dot,
// bracketed segments are joined directly.
func insertPath(segment, path string) string {
	switch {
	case segment == "":
		return path
	case path == "":
		return segment
	case strings.HasPrefix(path, "["):
		return segment + path
	default:
		return segment + "." + path
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"reflect"
)

// Settings control a comparison. Build them with NewSettings, configure them,
// then hand them to New. A Settings value must not be mutated while a
// comparison that uses it is running.
type Settings struct {
	// RecursiveComparison descends into members of nested objects. When false,
	// objects below the top level are compared with default equality and
	// reported as a single ValueMismatch.
	RecursiveComparison bool

	// EmptyAndNullSequencesEqual treats a null sequence as an empty one.
	EmptyAndNullSequencesEqual bool

	// UseDefaultForMissingMember substitutes the zero value of the present
	// side's type for a member that exists on one dynamic object only.
	UseDefaultForMissingMember bool

	// ListComparison is consulted once per compared sequence.
	ListComparison func(node *Node, opts *ListOptions)

	// DifferenceTree is consulted whenever a child node is created.
	DifferenceTree func(ancestor *Node, opts *TreeOptions)

	// Difference is consulted whenever a difference is created.
	Difference func(node *Node, opts *DifferenceOptions)

	// DifferencePath is consulted whenever a path segment is inserted.
	DifferencePath func(parent *Node, opts *PathOptions)

	custom map[customKey]any
}

type customKey struct {
	t   reflect.Type
	key string
}

// NewSettings returns settings with recursive comparison enabled and every
// other option off.
func NewSettings() *Settings {
	return &Settings{
		RecursiveComparison: true,
		custom:              map[customKey]any{},
	}
}

// ConfigureListComparison installs a ListComparison hook that applies the same
// mode to every sequence.
func (s *Settings) ConfigureListComparison(byKey, compareUnequalLists bool) *Settings {
	s.ListComparison = func(_ *Node, opts *ListOptions) {
		opts.CompareUnequalLists = compareUnequalLists
		if byKey {
			opts.CompareElementsByKey()
		}
	}
	return s
}

// ConfigureDifference installs a Difference hook that only toggles the
// inclusion of raw values.
func (s *Settings) ConfigureDifference(includeRawValues bool) *Settings {
	s.Difference = func(_ *Node, opts *DifferenceOptions) {
		opts.IncludeRawValues = includeRawValues
	}
	return s
}

// SetCustomSetting stores value under the pair of its type and key.
func SetCustomSetting[T any](s *Settings, value T, key string) *Settings {
	if s.custom == nil {
		s.custom = map[customKey]any{}
	}
	s.custom[customKey{reflect.TypeFor[T](), key}] = value
	return s
}

// CustomSetting returns the value stored for the pair of T and key.
func CustomSetting[T any](s *Settings, key string) (T, error) {
	var zero T
	v, ok := s.custom[customKey{reflect.TypeFor[T](), key}]
	if !ok {
		return zero, fmt.Errorf("%w: %s %q", ErrCustomSettingNotFound, reflect.TypeFor[T](), key)
	}
	return v.(T), nil
}

// TreeOptions let a DifferenceTree hook replace the member or node about to
// be created. A factory that returns nil fails the comparison with
// ErrConfiguration.
type TreeOptions struct {
	MemberFactory func(m Member) *Member
	NodeFactory   func(proposed *Node) *Node
}

// DifferenceOptions let a Difference hook drop raw values or build the
// difference itself.
type DifferenceOptions struct {
	IncludeRawValues bool
	Factory          func(args DifferenceArgs) Difference
}

// DifferenceArgs are handed to DifferenceOptions.Factory.
type DifferenceArgs struct {
	Node       *Node
	Difference Difference
}

// PathOptions let a DifferencePath hook rewrite the segment inserted in front
// of a child's path.
type PathOptions struct {
	InsertPath func(args PathArgs) string
}

// PathArgs are handed to PathOptions.InsertPath.
type PathArgs struct {
	Parent  *Node
	Node    *Node
	Segment string
	Path    string
}

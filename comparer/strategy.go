// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"iter"
	"reflect"
)

// Strategy compares values of the types it matches. Strategies never call one
// another. They recurse through the Walker, which dispatches every nested
// value afresh.
type Strategy interface {
	// IsMatch reports whether the strategy handles runtime type t.
	IsMatch(t reflect.Type, v1, v2 reflect.Value) bool

	// IsStopComparison reports that v1 and v2 need no further comparison.
	IsStopComparison(t reflect.Type, v1, v2 reflect.Value) bool

	// SkipMember reports that struct field f of t must not be compared.
	SkipMember(t reflect.Type, f reflect.StructField) bool

	// BuildTree yields the differences between v1 and v2 located below node.
	BuildTree(w Walker, t reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error]
}

// Walker is the view of a running comparison handed to strategies.
type Walker interface {
	// Walk dispatches v1 and v2 to the strategy resolved for their type.
	Walk(t reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error]

	// CompareMember compares a single member of two objects. owner and field
	// are nil for members of dynamic objects. Results are prefixed with name.
	CompareMember(node *Node, owner reflect.Type, field *reflect.StructField, name string, v1, v2 reflect.Value) iter.Seq2[DifferenceLocation, error]

	Settings() *Settings
	Overrides() *Overrides

	// SkipMember reports whether any strategy skips field f of t.
	SkipMember(t reflect.Type, f reflect.StructField) bool

	// MemberNode and ElementNode create child nodes through the
	// DifferenceTree hook.
	MemberNode(ancestor *Node, m Member) (*Node, error)
	ElementNode(ancestor *Node, label string) (*Node, error)

	// NewDifference locates d at node through the Difference hook.
	NewDifference(node *Node, d Difference) DifferenceLocation

	// Prefix inserts segment in front of the path of loc through the
	// DifferencePath hook.
	Prefix(loc DifferenceLocation, segment string, parent *Node) DifferenceLocation

	// Format renders v with any override of its type.
	Format(v reflect.Value) string
}

// object marks the structural and dynamic strategies, which are flattened to
// default equality when recursive comparison is off.
type object interface {
	object()
}

// builtins returns the built-in strategies in dispatch order.
func builtins(s *Settings) []Strategy {
	return []Strategy{
		scalarStrategy{},
		sequenceStrategy{settings: s, generic: false},
		sequenceStrategy{settings: s, generic: true},
		dynamicStrategy{settings: s},
		pointerStrategy{},
		structuralStrategy{settings: s},
	}
}

// relay forwards seq to yield, applying fn to every location. It reports
// whether the caller should continue.
func relay(seq iter.Seq2[DifferenceLocation, error], yield func(DifferenceLocation, error) bool, fn func(DifferenceLocation) DifferenceLocation) bool {
	for loc, err := range seq {
		if err != nil {
			yield(DifferenceLocation{}, err)
			return false
		}
		if fn != nil {
			loc = fn(loc)
		}
		if !yield(loc, nil) {
			return false
		}
	}
	return true
}

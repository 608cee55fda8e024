// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package comparer computes the differences between two values of the same
// nominal type and locates each difference within the compared object graph.
//
// A Comparer resolves a Strategy for every runtime type it meets. The built-in
// strategies are tried in a fixed order after any user-supplied strategies:
//
//   - scalar: basic kinds, funcs, chans and types with an Equal(T) bool method
//   - sequence: slices and arrays of interface elements
//   - sequence: typed slices, arrays and maps (as sorted KeyValue pairs)
//   - dynamic: map[string]any-shaped maps and DynamicObject implementations
//   - pointer: dereferences and re-dispatches on the element type
//   - structural: member-by-member over exported struct fields
//
// Every recursive step creates exactly one child Node, so each Difference is
// reported together with the Node that was active when it was produced (a
// DifferenceLocation). Paths render member names bare and sequence positions or
// keys bracketed, e.g. "[2].address.city".
//
// Differences are produced lazily as an iter.Seq2. A fatal error is yielded
// once as the final pair. Stopping the range stops the recursion.
//
//	c := comparer.New(comparer.NewSettings().ConfigureListComparison(true, true))
//	diffs, err := comparer.Collect(comparer.Diff(c, before, after))
//
// Member names come from the `diff:"name"` struct tag or the Go field name.
// Fields tagged `diff:"-"` and unexported fields are never compared.
package comparer

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"iter"
	"reflect"
)

// Comparer computes differences between values. A configured Comparer is
// safe for concurrent use as long as its settings and overrides are not
// changed.
type Comparer struct {
	settings   *Settings
	overrides  *Overrides
	strategies []Strategy
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithStrategy registers strategies ahead of the built-in ones, in order.
func WithStrategy(s ...Strategy) Option {
	return func(c *Comparer) {
		c.strategies = append(c.strategies, s...)
	}
}

// WithFormatter renders values of type t with fn.
func WithFormatter(t reflect.Type, fn func(v any) string) Option {
	return func(c *Comparer) {
		c.overrides.AddFormatter(t, fn)
	}
}

// New returns a Comparer. Nil settings mean NewSettings.
func New(settings *Settings, opts ...Option) *Comparer {
	if settings == nil {
		settings = NewSettings()
	}
	c := &Comparer{settings: settings, overrides: NewOverrides()}
	for _, opt := range opts {
		opt(c)
	}
	c.strategies = append(c.strategies, builtins(settings)...)
	return c
}

// Settings returns the settings the comparer was built with. Changes apply to
// later comparisons.
func (c *Comparer) Settings() *Settings { return c.settings }

// Overrides returns the value comparers registered on c.
func (c *Comparer) Overrides() *Overrides { return c.overrides }

// OverrideType compares and renders every value of type t with vc.
func (c *Comparer) OverrideType(t reflect.Type, vc ValueComparer) *Comparer {
	c.overrides.AddType(t, vc)
	return c
}

// OverrideMember compares and renders every member named name with vc.
func (c *Comparer) OverrideMember(name string, vc ValueComparer) *Comparer {
	c.overrides.AddName(name, vc)
	return c
}

// OverrideField compares and renders struct field field of owner with vc.
func (c *Comparer) OverrideField(owner reflect.Type, field string, vc ValueComparer) *Comparer {
	c.overrides.AddField(owner, field, vc)
	return c
}

// IgnoreMember never reports differences for members named name.
func (c *Comparer) IgnoreMember(name string) *Comparer {
	return c.OverrideMember(name, DoNotCompare)
}

// Override compares and renders every value of type T with typed functions.
func Override[T any](c *Comparer, compare func(a, b T, s *Settings) bool, toString func(v T) string) *Comparer {
	return c.OverrideType(reflect.TypeFor[T](), ValueComparerFor(compare, toString))
}

// CalculateDifferences yields the differences between v1 and v2, both of
// nominal type t.
func (c *Comparer) CalculateDifferences(t reflect.Type, v1, v2 any) iter.Seq2[Difference, error] {
	return c.CalculateDifferencesFrom(t, v1, v2, NewRoot())
}

// CalculateDifferencesFrom is CalculateDifferences anchored at root.
func (c *Comparer) CalculateDifferencesFrom(t reflect.Type, v1, v2 any, root *Node) iter.Seq2[Difference, error] {
	return func(yield func(Difference, error) bool) {
		for loc, err := range c.BuildDifferenceTree(t, v1, v2, root) {
			if !yield(loc.Difference, err) || err != nil {
				return
			}
		}
	}
}

// BuildDifferenceTree yields every difference with the node it was found at.
// The nodes form a tree rooted at node.
func (c *Comparer) BuildDifferenceTree(t reflect.Type, v1, v2 any, node *Node) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		if node == nil {
			yield(DifferenceLocation{}, fmt.Errorf("%w: nil difference tree node", ErrInvalidArgument))
			return
		}
		w := newWalk(c, node)
		relay(w.Walk(t, reflect.ValueOf(v1), reflect.ValueOf(v2), node), yield, nil)
	}
}

// HasDifferences reports whether at least one difference exists. It stops at
// the first one found.
func (c *Comparer) HasDifferences(t reflect.Type, v1, v2 any) (bool, error) {
	for _, err := range c.CalculateDifferences(t, v1, v2) {
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Equal is the negation of HasDifferences.
func (c *Comparer) Equal(t reflect.Type, v1, v2 any) (bool, error) {
	has, err := c.HasDifferences(t, v1, v2)
	return !has && err == nil, err
}

// Diff yields the differences between two values of type T.
func Diff[T any](c *Comparer, v1, v2 T) iter.Seq2[Difference, error] {
	return c.CalculateDifferences(reflect.TypeFor[T](), v1, v2)
}

// Collect drains seq, stopping at the first error.
func Collect[E any](seq iter.Seq2[E, error]) ([]E, error) {
	var out []E
	for e, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/tfctl/objdiff/comparer"
	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/ctycmp"
	"github.com/tfctl/objdiff/internal/document"
	"github.com/tfctl/objdiff/internal/filters"
	"github.com/tfctl/objdiff/internal/log"
)

// Request describes one comparison of two documents.
type Request struct {
	Left, Right string
	// Select narrows both documents to the value at a driller path.
	Select  string
	Filter  string
	Profile config.Profile
	Load    []document.Option
}

// Result carries the loaded documents and their differences.
type Result struct {
	Left, Right *document.Document
	Locations   []comparer.DifferenceLocation
}

// Run loads both documents of req and compares them.
func Run(ctx context.Context, req Request) (*Result, error) {
	log.Debugf(">> differ.Run(%s, %s)", req.Left, req.Right)

	left, err := load(ctx, req.Left, req)
	if err != nil {
		return nil, err
	}
	right, err := load(ctx, req.Right, req)
	if err != nil {
		return nil, err
	}

	locs, err := Compare(req.Profile, left, right)
	if err != nil {
		return nil, err
	}

	locs = filters.Apply(locs, req.Filter)
	return &Result{Left: left, Right: right, Locations: locs}, nil
}

func load(ctx context.Context, source string, req Request) (*document.Document, error) {
	doc, err := document.Load(ctx, source, req.Load...)
	if err != nil {
		return nil, err
	}
	return doc.Select(req.Select)
}

// Settings converts a profile into comparer settings.
func Settings(p config.Profile) *comparer.Settings {
	s := comparer.NewSettings()
	s.RecursiveComparison = p.IsRecursive()
	s.EmptyAndNullSequencesEqual = p.NullEmpty
	s.UseDefaultForMissingMember = p.DefaultMissing
	s.ConfigureDifference(p.IncludesRawValues())

	keys := p.Keys
	if len(keys) == 0 {
		keys = comparer.DefaultKeyNames
	}
	s.ListComparison = func(_ *comparer.Node, opts *comparer.ListOptions) {
		opts.CompareUnequalLists = p.Unequal
		if p.ByKey {
			opts.CompareElementsByKey(func(k *comparer.KeyOptions) {
				k.KeyProvider = ctycmp.KeyProvider(keys...)
			})
		}
	}
	return s
}

// NewComparer builds the comparer for a profile. withCty registers the cty
// strategy ahead of the built-in ones.
func NewComparer(p config.Profile, withCty bool) *comparer.Comparer {
	var opts []comparer.Option
	if withCty {
		opts = ctycmp.Options()
	}

	c := comparer.New(Settings(p), opts...)
	for _, name := range p.Ignore {
		c.IgnoreMember(name)
	}
	return c
}

// Compare collects the differences between two documents. Two HCL documents
// are compared as cty values. When only one side is HCL it is converted to
// plain values first.
func Compare(p config.Profile, left, right *document.Document) ([]comparer.DifferenceLocation, error) {
	v1, v2 := left.Value, right.Value
	t := reflect.TypeFor[any]()

	withCty := left.IsCty() && right.IsCty()
	switch {
	case withCty:
		t = reflect.TypeFor[cty.Value]()
	case left.IsCty():
		v1 = ctycmp.ToNative(v1.(cty.Value))
	case right.IsCty():
		v2 = ctycmp.ToNative(v2.(cty.Value))
	}

	c := NewComparer(p, withCty)
	locs, err := comparer.Collect(c.BuildDifferenceTree(t, v1, v2, comparer.NewRoot()))
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s and %s: %w", left.Source, right.Source, err)
	}

	log.Debugf("differ: left=%s (%s) right=%s (%s) differences=%d",
		left.Source, left.Size(), right.Source, right.Size(), len(locs))
	return locs, nil
}

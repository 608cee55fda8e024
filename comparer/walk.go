// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/tfctl/objdiff/internal/log"
)

// visit identifies a pair of references being compared, so that cyclic
// graphs terminate.
type visit struct {
	p1, p2 uintptr
	t      reflect.Type
}

// walk is the state of one comparison invocation.
type walk struct {
	c        *Comparer
	root     *Node
	visiting map[visit]struct{}
}

var _ Walker = (*walk)(nil)

func newWalk(c *Comparer, root *Node) *walk {
	return &walk{c: c, root: root, visiting: map[visit]struct{}{}}
}

func (w *walk) Settings() *Settings   { return w.c.settings }
func (w *walk) Overrides() *Overrides { return w.c.overrides }

func (w *walk) resolve(t reflect.Type, v1, v2 reflect.Value) Strategy {
	for _, s := range w.c.strategies {
		if s.IsMatch(t, v1, v2) {
			return s
		}
	}
	// The structural strategy matches everything.
	return structuralStrategy{settings: w.c.settings}
}

func (w *walk) Walk(t reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		v1, v2 = unwrap(v1), unwrap(v2)

		rt := t
		switch {
		case rt == nil || rt.Kind() == reflect.Interface:
			switch {
			case v1.IsValid() && v2.IsValid() && v1.Type() != v2.Type():
				yield(w.typeMismatch(node, v1, v2), nil)
				return
			case v1.IsValid():
				rt = v1.Type()
			case v2.IsValid():
				rt = v2.Type()
			default:
				return
			}
		case v1.IsValid() && v1.Type() != rt, v2.IsValid() && v2.Type() != rt:
			yield(w.typeMismatch(node, v1, v2), nil)
			return
		}

		if vc := w.c.overrides.Type(rt); vc != nil {
			if !vc.Compare(iface(v1), iface(v2), w.c.settings) {
				yield(w.NewDifference(node, Difference{
					Value1:    vc.ToString(iface(v1)),
					Value2:    vc.ToString(iface(v2)),
					Kind:      ValueMismatch,
					RawValue1: iface(v1),
					RawValue2: iface(v2),
				}), nil)
			}
			return
		}

		if key, ok := visitKey(rt, v1, v2); ok {
			if _, seen := w.visiting[key]; seen {
				log.Tracef("cycle: path=%s type=%s", node.Path(), rt)
				return
			}
			w.visiting[key] = struct{}{}
			defer delete(w.visiting, key)
		}

		s := w.resolve(rt, v1, v2)
		log.Tracef("dispatch: path=%s type=%s strategy=%T", node.Path(), rt, s)

		if _, ok := s.(object); ok && !w.c.settings.RecursiveComparison && node != w.root {
			if !defaultEqual(v1, v2) {
				yield(w.valueMismatch(node, v1, v2), nil)
			}
			return
		}

		if s.IsStopComparison(rt, v1, v2) {
			return
		}

		relay(s.BuildTree(w, rt, v1, v2, node), yield, nil)
	}
}

func visitKey(t reflect.Type, v1, v2 reflect.Value) (visit, bool) {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map:
	case reflect.Slice:
		if isNull(v1) || isNull(v2) || v1.Len() == 0 || v2.Len() == 0 {
			return visit{}, false
		}
	default:
		return visit{}, false
	}
	if isNull(v1) || isNull(v2) {
		return visit{}, false
	}
	return visit{v1.Pointer(), v2.Pointer(), t}, true
}

// CompareMember is shared by the structural and dynamic strategies.
func (w *walk) CompareMember(node *Node, owner reflect.Type, field *reflect.StructField, name string, v1, v2 reflect.Value) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		v1, v2 = unwrap(v1), unwrap(v2)
		n1, n2 := isNull(v1), isNull(v2)
		if n1 && n2 {
			return
		}

		present := v1
		if !v1.IsValid() {
			present = v2
		}

		vc := w.c.overrides.Member(owner, field, present.Type(), name)
		if _, skip := vc.(ignored); skip {
			return
		}

		child, err := w.MemberNode(node, Member{Name: name, Field: field})
		if err != nil {
			yield(DifferenceLocation{}, err)
			return
		}
		here := func(loc DifferenceLocation) DifferenceLocation {
			return w.Prefix(loc, name, node)
		}

		switch {
		case !n1 && !n2 && v1.Type() != v2.Type(),
			n1 != n2 && !nillable(present.Kind()):
			yield(here(w.typeMismatch(child, v1, v2)), nil)
			return
		}

		if vc != nil {
			if !vc.Compare(iface(v1), iface(v2), w.c.settings) {
				yield(here(w.NewDifference(child, Difference{
					Value1:    vc.ToString(iface(v1)),
					Value2:    vc.ToString(iface(v2)),
					Kind:      ValueMismatch,
					RawValue1: iface(v1),
					RawValue2: iface(v2),
				})), nil)
			}
			return
		}

		relay(w.Walk(present.Type(), v1, v2, child), yield, here)
	}
}

func (w *walk) SkipMember(t reflect.Type, f reflect.StructField) bool {
	for _, s := range w.c.strategies {
		if s.SkipMember(t, f) {
			return true
		}
	}
	return false
}

func (w *walk) treeOptions(ancestor *Node) TreeOptions {
	var opts TreeOptions
	if w.c.settings.DifferenceTree != nil {
		w.c.settings.DifferenceTree(ancestor, &opts)
	}
	return opts
}

func (w *walk) MemberNode(ancestor *Node, m Member) (*Node, error) {
	opts := w.treeOptions(ancestor)
	if opts.MemberFactory != nil {
		built := opts.MemberFactory(m)
		if built == nil {
			return nil, fmt.Errorf("%w: member factory returned nil for %q", ErrConfiguration, m.Name)
		}
		m = *built
	}
	return w.finishNode(opts, NewMemberNode(ancestor, m))
}

func (w *walk) ElementNode(ancestor *Node, label string) (*Node, error) {
	return w.finishNode(w.treeOptions(ancestor), NewElementNode(ancestor, label))
}

func (w *walk) finishNode(opts TreeOptions, n *Node) (*Node, error) {
	if opts.NodeFactory == nil {
		return n, nil
	}
	built := opts.NodeFactory(n)
	if built == nil {
		return nil, fmt.Errorf("%w: node factory returned nil at %q", ErrConfiguration, n.Path())
	}
	return built, nil
}

func (w *walk) NewDifference(node *Node, d Difference) DifferenceLocation {
	opts := DifferenceOptions{IncludeRawValues: true}
	if w.c.settings.Difference != nil {
		w.c.settings.Difference(node, &opts)
	}
	if !opts.IncludeRawValues {
		d.RawValue1, d.RawValue2 = nil, nil
	}
	if opts.Factory != nil {
		d = opts.Factory(DifferenceArgs{Node: node, Difference: d})
	}
	return DifferenceLocation{Difference: d, Node: node}
}

func (w *walk) Prefix(loc DifferenceLocation, segment string, parent *Node) DifferenceLocation {
	if w.c.settings.DifferencePath != nil {
		var opts PathOptions
		w.c.settings.DifferencePath(parent, &opts)
		if opts.InsertPath != nil {
			segment = opts.InsertPath(PathArgs{
				Parent:  parent,
				Node:    loc.Node,
				Segment: segment,
				Path:    loc.Difference.Path,
			})
		}
	}
	loc.Difference = loc.Difference.WithPath(insertPath(segment, loc.Difference.Path))
	return loc
}

func (w *walk) Format(v reflect.Value) string {
	return w.c.overrides.Format(iface(unwrap(v)))
}

func (w *walk) valueMismatch(node *Node, v1, v2 reflect.Value) DifferenceLocation {
	return w.mismatch(node, "", ValueMismatch, v1, v2)
}

func (w *walk) typeMismatch(node *Node, v1, v2 reflect.Value) DifferenceLocation {
	return w.mismatch(node, "", TypeMismatch, v1, v2)
}

func (w *walk) mismatch(node *Node, path string, kind Kind, v1, v2 reflect.Value) DifferenceLocation {
	return w.NewDifference(node, Difference{
		Path:      path,
		Value1:    w.Format(v1),
		Value2:    w.Format(v2),
		Kind:      kind,
		RawValue1: iface(unwrap(v1)),
		RawValue2: iface(unwrap(v2)),
	})
}

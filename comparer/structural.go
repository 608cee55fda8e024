// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// structuralStrategy compares structs member by member over their exported
// fields, including those promoted from embedded unexported structs. It
// matches every type, so it must be tried last.
type structuralStrategy struct {
	settings *Settings
}

func (structuralStrategy) object() {}

func (structuralStrategy) IsMatch(reflect.Type, reflect.Value, reflect.Value) bool {
	return true
}

func (structuralStrategy) IsStopComparison(_ reflect.Type, v1, v2 reflect.Value) bool {
	return isNull(v1) && isNull(v2)
}

func (structuralStrategy) SkipMember(_ reflect.Type, f reflect.StructField) bool {
	name, _, _ := strings.Cut(f.Tag.Get("diff"), ",")
	return name == "-"
}

func (s structuralStrategy) BuildTree(w Walker, t reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		if isNull(v1) || isNull(v2) || t.Kind() != reflect.Struct {
			if !defaultEqual(v1, v2) {
				yield(w.NewDifference(node, Difference{
					Value1:    w.Format(v1),
					Value2:    w.Format(v2),
					Kind:      ValueMismatch,
					RawValue1: iface(v1),
					RawValue2: iface(v2),
				}), nil)
			}
			return
		}

		for _, m := range structMembers(t) {
			f := m.field
			if w.SkipMember(m.owner, f) {
				continue
			}

			a, b := v1.FieldByIndex(m.index), v2.FieldByIndex(m.index)
			if !a.CanInterface() || !b.CanInterface() {
				yield(DifferenceLocation{}, fmt.Errorf("%w: cannot read member %s of %s", ErrInvalidArgument, f.Name, t))
				return
			}

			if !relay(w.CompareMember(node, m.owner, &f, memberName(f), a, b), yield, nil) {
				return
			}
		}
	}
}

type structMember struct {
	owner reflect.Type
	field reflect.StructField
	index []int
}

// structMembers lists the exported fields of t in declaration order. The
// exported fields of an embedded unexported struct are promoted in its place,
// unless shadowed. Embedded unexported pointers are skipped.
func structMembers(t reflect.Type) []structMember {
	var out []structMember
	var collect func(owner reflect.Type, prefix []int)
	collect = func(owner reflect.Type, prefix []int) {
		for i := range owner.NumField() {
			f := owner.Field(i)
			index := append(slices.Clone(prefix), i)
			if !f.IsExported() {
				if f.Anonymous && f.Type.Kind() == reflect.Struct {
					collect(f.Type, index)
				}
				continue
			}
			if len(prefix) > 0 {
				if top, ok := t.FieldByName(f.Name); !ok || !slices.Equal(top.Index, index) {
					continue
				}
			}
			out = append(out, structMember{owner: owner, field: f, index: index})
		}
	}
	collect(t, nil)
	return out
}

// memberName is the diff tag name of f, or its Go name.
func memberName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("diff"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"iter"
	"reflect"
	"slices"
)

// DynamicObject is a value whose member set is only known at run time.
type DynamicObject interface {
	MemberNames() []string
	Member(name string) (any, bool)
}

var dynamicObjectType = reflect.TypeFor[DynamicObject]()

// isDynamic reports whether t is compared member by member over a run-time
// member set.
func isDynamic(t reflect.Type) bool {
	if t.Implements(dynamicObjectType) {
		return true
	}
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String && t.Elem().Kind() == reflect.Interface
}

type dynamicStrategy struct {
	settings *Settings
}

func (dynamicStrategy) object() {}

func (dynamicStrategy) IsMatch(t reflect.Type, _, _ reflect.Value) bool {
	return isDynamic(t)
}

func (dynamicStrategy) IsStopComparison(_ reflect.Type, v1, v2 reflect.Value) bool {
	return isNull(v1) && isNull(v2)
}

func (dynamicStrategy) SkipMember(reflect.Type, reflect.StructField) bool {
	return false
}

func (s dynamicStrategy) BuildTree(w Walker, _ reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		if isNull(v1) || isNull(v2) {
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

		names1, get1 := dynamicMembers(v1)
		names2, get2 := dynamicMembers(v2)

		for _, name := range unionNames(names1, names2) {
			a, ok1 := get1(name)
			b, ok2 := get2(name)

			if !s.settings.UseDefaultForMissingMember && (!ok1 || !ok2) {
				child, err := w.MemberNode(node, Member{Name: name})
				if err != nil {
					yield(DifferenceLocation{}, err)
					return
				}
				var d Difference
				if ok1 {
					d.Kind, d.Value1, d.RawValue1 = MissingMemberInSecond, w.Format(a), iface(unwrap(a))
				} else {
					d.Kind, d.Value2, d.RawValue2 = MissingMemberInFirst, w.Format(b), iface(unwrap(b))
				}
				if !yield(w.Prefix(w.NewDifference(child, d), name, node), nil) {
					return
				}
				continue
			}

			switch {
			case !ok1:
				a = zeroOf(b)
			case !ok2:
				b = zeroOf(a)
			}

			if !relay(w.CompareMember(node, nil, nil, name, a, b), yield, nil) {
				return
			}
		}
	}
}

// dynamicMembers returns the member names of v and an accessor for them.
// Map keys are sorted.
func dynamicMembers(v reflect.Value) ([]string, func(string) (reflect.Value, bool)) {
	if v.Type().Implements(dynamicObjectType) && v.CanInterface() {
		d := v.Interface().(DynamicObject)
		return d.MemberNames(), func(name string) (reflect.Value, bool) {
			m, ok := d.Member(name)
			return reflect.ValueOf(m), ok
		}
	}

	keys := v.MapKeys()
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	slices.Sort(names)

	kt := v.Type().Key()
	return names, func(name string) (reflect.Value, bool) {
		mv := v.MapIndex(reflect.ValueOf(name).Convert(kt))
		return mv, mv.IsValid()
	}
}

// unionNames keeps the order of a, followed by the names only in b.
func unionNames(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, names := range [][]string{a, b} {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

func zeroOf(v reflect.Value) reflect.Value {
	v = unwrap(v)
	if !v.IsValid() {
		return v
	}
	return reflect.Zero(v.Type())
}

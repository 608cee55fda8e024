// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"

	"github.com/tfctl/objdiff/internal/log"
)

// KeyValue is one entry of a map compared as a sequence.
type KeyValue struct {
	Key   any
	Value any
}

// sequenceStrategy compares slices, arrays and maps. The non-generic variant
// handles sequences of interface elements, the generic variant typed ones and
// maps that are not compared as dynamic objects.
type sequenceStrategy struct {
	settings *Settings
	generic  bool
}

func (s sequenceStrategy) IsMatch(t reflect.Type, _, _ reflect.Value) bool {
	if t.Implements(dynamicObjectType) {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return (t.Elem().Kind() == reflect.Interface) != s.generic
	case reflect.Map:
		return s.generic && !isDynamic(t)
	}
	return false
}

func (s sequenceStrategy) IsStopComparison(_ reflect.Type, v1, v2 reflect.Value) bool {
	return isNull(v1) && isNull(v2)
}

func (sequenceStrategy) SkipMember(reflect.Type, reflect.StructField) bool {
	return false
}

func (s sequenceStrategy) BuildTree(w Walker, _ reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		if !s.settings.EmptyAndNullSequencesEqual && isNull(v1) != isNull(v2) {
			yield(w.NewDifference(node, Difference{
				Value1:    w.Format(v1),
				Value2:    w.Format(v2),
				Kind:      ValueMismatch,
				RawValue1: iface(v1),
				RawValue2: iface(v2),
			}), nil)
			return
		}

		list1, err := materialize(v1)
		if err != nil {
			yield(DifferenceLocation{}, err)
			return
		}
		list2, err := materialize(v2)
		if err != nil {
			yield(DifferenceLocation{}, err)
			return
		}

		opts := DefaultListOptions()
		if s.settings.ListComparison != nil {
			s.settings.ListComparison(node, &opts)
		}
		log.Tracef("sequence: path=%s mode=%s len1=%d len2=%d", node.Path(), opts.Mode(), len(list1), len(list2))

		if len(list1) != len(list2) {
			if !yield(w.NewDifference(node, Difference{
				Value1:    strconv.Itoa(len(list1)),
				Value2:    strconv.Itoa(len(list2)),
				Kind:      NumberOfElementsMismatch,
				RawValue1: len(list1),
				RawValue2: len(list2),
			}), nil) {
				return
			}
			if !opts.CompareUnequalLists {
				return
			}
		}

		if opts.Mode() == ByKey {
			compareByKey(w, list1, list2, node, opts.KeyOptions(), yield)
			return
		}
		compareByIndex(w, list1, list2, node, yield)
	}
}

// materialize lists the elements of a sequence. Maps become KeyValue pairs in
// key order. Null is empty.
func materialize(v reflect.Value) ([]reflect.Value, error) {
	v = unwrap(v)
	if isNull(v) {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]reflect.Value, v.Len())
		for i := range out {
			out[i] = v.Index(i)
		}
		return out, nil
	case reflect.Map:
		keys := v.MapKeys()
		slices.SortStableFunc(keys, compareKeys)
		out := make([]reflect.Value, len(keys))
		for i, k := range keys {
			out[i] = reflect.ValueOf(KeyValue{Key: iface(k), Value: iface(v.MapIndex(k))})
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s is not a sequence", ErrInvalidArgument, v.Type())
}

func compareKeys(a, b reflect.Value) int {
	a, b = unwrap(a), unwrap(b)
	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		}
	}
	return cmp.Compare(fmt.Sprint(iface(a)), fmt.Sprint(iface(b)))
}

func compareByIndex(w Walker, list1, list2 []reflect.Value, node *Node, yield func(DifferenceLocation, error) bool) {
	common := min(len(list1), len(list2))

	for i := range common {
		e1, e2 := unwrap(list1[i]), unwrap(list2[i])
		n1, n2 := isNull(e1), isNull(e2)
		if n1 && n2 {
			continue
		}

		label := strconv.Itoa(i)
		segment := "[" + label + "]"
		child, err := w.ElementNode(node, label)
		if err != nil {
			yield(DifferenceLocation{}, err)
			return
		}

		var ok bool
		switch {
		case n1 || n2:
			ok = yield(elementMismatch(w, child, segment, ValueMismatch, e1, e2), nil)
		case e1.Type() != e2.Type():
			ok = yield(elementMismatch(w, child, segment, TypeMismatch, e1, e2), nil)
		default:
			ok = relay(w.Walk(e1.Type(), e1, e2, child), yield, func(loc DifferenceLocation) DifferenceLocation {
				return w.Prefix(loc, segment, node)
			})
		}
		if !ok {
			return
		}
	}

	for i := common; i < max(len(list1), len(list2)); i++ {
		label := strconv.Itoa(i)
		child, err := w.ElementNode(node, label)
		if err != nil {
			yield(DifferenceLocation{}, err)
			return
		}

		d := Difference{Path: "[" + label + "]"}
		if i < len(list1) {
			d.Kind, d.Value1, d.RawValue1 = MissingElementInSecond, w.Format(list1[i]), iface(unwrap(list1[i]))
		} else {
			d.Kind, d.Value2, d.RawValue2 = MissingElementInFirst, w.Format(list2[i]), iface(unwrap(list2[i]))
		}
		if !yield(w.NewDifference(child, d), nil) {
			return
		}
	}
}

func elementMismatch(w Walker, node *Node, segment string, kind Kind, e1, e2 reflect.Value) DifferenceLocation {
	return w.NewDifference(node, Difference{
		Path:      segment,
		Value1:    w.Format(e1),
		Value2:    w.Format(e2),
		Kind:      kind,
		RawValue1: iface(e1),
		RawValue2: iface(e2),
	})
}

// keyed is an element with its resolved key.
type keyed struct {
	value reflect.Value
	key   any
	null  bool
	found bool
}

func resolveKeys(list []reflect.Value, opts *KeyOptions) ([]keyed, bool) {
	out := make([]keyed, len(list))
	anyNull := false
	for i, e := range list {
		e = unwrap(e)
		out[i].value = e
		if isNull(e) {
			out[i].null = true
			anyNull = true
			continue
		}
		out[i].key, out[i].found = opts.KeyProvider(iface(e))
	}
	return out, anyNull
}

func indexOfKey(list []keyed, key any) int {
	return slices.IndexFunc(list, func(k keyed) bool {
		return k.found && reflect.DeepEqual(k.key, key)
	})
}

func compareByKey(w Walker, list1, list2 []reflect.Value, node *Node, opts *KeyOptions, yield func(DifferenceLocation, error) bool) {
	if opts == nil {
		opts = DefaultKeyOptions()
	}
	keys1, null1 := resolveKeys(list1, opts)
	keys2, null2 := resolveKeys(list2, opts)

	// pass visits one side. Elements matched on the other side are compared
	// only on the first pass.
	pass := func(side, other []keyed, otherHasNull, first bool) bool {
		missing := MissingElementInSecond
		if !first {
			missing = MissingElementInFirst
		}

		for i, e := range side {
			if e.null {
				if otherHasNull {
					continue
				}
				label := opts.FormatNullElement(i)
				child, err := w.ElementNode(node, label)
				if err != nil {
					yield(DifferenceLocation{}, err)
					return false
				}
				if !yield(w.NewDifference(child, Difference{Path: "[" + label + "]", Kind: missing}), nil) {
					return false
				}
				continue
			}

			if !e.found {
				if !opts.ThrowKeyNotFound {
					continue
				}
				child, err := w.ElementNode(node, strconv.Itoa(i))
				if err != nil {
					yield(DifferenceLocation{}, err)
					return false
				}
				yield(DifferenceLocation{}, &ElementKeyNotFoundError{Element: iface(e.value), Node: child})
				return false
			}

			label := opts.FormatKey(KeyArgs{Index: i, Key: e.key, Element: iface(e.value)})
			segment := "[" + label + "]"
			child, err := w.ElementNode(node, label)
			if err != nil {
				yield(DifferenceLocation{}, err)
				return false
			}

			j := indexOfKey(other, e.key)
			switch {
			case j < 0:
				d := Difference{Path: segment, Kind: missing}
				if first {
					d.Value1, d.RawValue1 = w.Format(e.value), iface(e.value)
				} else {
					d.Value2, d.RawValue2 = w.Format(e.value), iface(e.value)
				}
				if !yield(w.NewDifference(child, d), nil) {
					return false
				}
			case first:
				if !relay(w.Walk(e.value.Type(), e.value, other[j].value, child), yield, func(loc DifferenceLocation) DifferenceLocation {
					return w.Prefix(loc, segment, node)
				}) {
					return false
				}
			}
		}
		return true
	}

	if pass(keys1, keys2, null2, true) {
		pass(keys2, keys1, null1, false)
	}
}

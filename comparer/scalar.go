// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"iter"
	"reflect"
)

// scalarStrategy compares leaf values with default equality.
type scalarStrategy struct{}

func (scalarStrategy) IsMatch(t reflect.Type, _, _ reflect.Value) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	_, ok := equalMethod(t)
	return ok
}

func (scalarStrategy) IsStopComparison(reflect.Type, reflect.Value, reflect.Value) bool {
	return false
}

func (scalarStrategy) SkipMember(reflect.Type, reflect.StructField) bool {
	return false
}

func (scalarStrategy) BuildTree(w Walker, _ reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error] {
	return func(yield func(DifferenceLocation, error) bool) {
		if defaultEqual(v1, v2) {
			return
		}
		yield(w.NewDifference(node, Difference{
			Value1:    w.Format(v1),
			Value2:    w.Format(v2),
			Kind:      ValueMismatch,
			RawValue1: iface(v1),
			RawValue2: iface(v2),
		}), nil)
	}
}

// pointerStrategy compares the values referenced by two pointers.
type pointerStrategy struct{}

func (pointerStrategy) IsMatch(t reflect.Type, _, _ reflect.Value) bool {
	return t.Kind() == reflect.Pointer
}

func (pointerStrategy) IsStopComparison(_ reflect.Type, v1, v2 reflect.Value) bool {
	return isNull(v1) && isNull(v2)
}

func (pointerStrategy) SkipMember(reflect.Type, reflect.StructField) bool {
	return false
}

func (pointerStrategy) BuildTree(w Walker, t reflect.Type, v1, v2 reflect.Value, node *Node) iter.Seq2[DifferenceLocation, error] {
	return w.Walk(t.Elem(), deref(v1), deref(v2), node)
}

func deref(v reflect.Value) reflect.Value {
	if isNull(v) {
		return reflect.Value{}
	}
	return v.Elem()
}

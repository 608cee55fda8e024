// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"math"
	"reflect"
)

// unwrap strips interface wrappers. A nil interface becomes the invalid Value.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isNull reports whether v is absent or a nil reference.
func isNull(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	if nillable(v.Kind()) {
		return v.IsNil()
	}
	return false
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

// iface returns the dynamic value held by v, or nil.
func iface(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

var boolType = reflect.TypeFor[bool]()

// equalMethod returns the Equal(T) bool method of t, if any.
func equalMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Equal")
	if !ok {
		return m, false
	}
	mt := m.Type
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.Out(0) != boolType || !t.AssignableTo(mt.In(1)) {
		return m, false
	}
	return m, true
}

// defaultEqual is the equality used wherever no override applies: both null,
// or same type and equal by Equal method, by ==, or by deep equality.
func defaultEqual(a, b reflect.Value) bool {
	a, b = unwrap(a), unwrap(b)
	if isNull(a) || isNull(b) {
		return isNull(a) && isNull(b)
	}
	if a.Type() != b.Type() {
		return false
	}
	if m, ok := equalMethod(a.Type()); ok && a.CanInterface() && b.CanInterface() {
		return m.Func.Call([]reflect.Value{a, b})[0].Bool()
	}

	switch a.Kind() {
	case reflect.Func:
		return a.Pointer() == b.Pointer()
	case reflect.Float32, reflect.Float64:
		return floatEqual(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		x, y := a.Complex(), b.Complex()
		return floatEqual(real(x), real(y)) && floatEqual(imag(x), imag(y))
	}

	if !a.CanInterface() || !b.CanInterface() {
		return a.Comparable() && b.Comparable() && a.Equal(b)
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// floatEqual treats NaN as equal to NaN.
func floatEqual(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}

// FormatValue is the default rendering of a compared value. Null renders as
// the empty string.
func FormatValue(v any) string {
	rv := unwrap(reflect.ValueOf(v))
	if isNull(rv) {
		return ""
	}
	return fmt.Sprint(v)
}

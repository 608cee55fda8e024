// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"reflect"
)

// ValueComparer replaces the comparison and rendering of a value.
type ValueComparer interface {
	Compare(a, b any, s *Settings) bool
	ToString(v any) string
}

type valueComparer struct {
	compare  func(a, b any, s *Settings) bool
	toString func(v any) string
}

func (c valueComparer) Compare(a, b any, s *Settings) bool { return c.compare(a, b, s) }
func (c valueComparer) ToString(v any) string              { return c.toString(v) }

// NewValueComparer adapts a pair of functions. A nil toString renders with
// FormatValue.
func NewValueComparer(compare func(a, b any, s *Settings) bool, toString func(v any) string) ValueComparer {
	if toString == nil {
		toString = FormatValue
	}
	return valueComparer{compare: compare, toString: toString}
}

// ValueComparerFor adapts typed functions. Null sides are equal only to each
// other and render as the empty string.
func ValueComparerFor[T any](compare func(a, b T, s *Settings) bool, toString func(v T) string) ValueComparer {
	return valueComparer{
		compare: func(a, b any, s *Settings) bool {
			ta, okA := a.(T)
			tb, okB := b.(T)
			if !okA || !okB {
				return a == nil && b == nil
			}
			return compare(ta, tb, s)
		},
		toString: func(v any) string {
			tv, ok := v.(T)
			switch {
			case !ok:
				return FormatValue(v)
			case toString == nil:
				return FormatValue(tv)
			}
			return toString(tv)
		},
	}
}

// DefaultValueComparer applies the comparer's default equality.
var DefaultValueComparer ValueComparer = NewValueComparer(func(a, b any, _ *Settings) bool {
	return defaultEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}, nil)

// DoNotCompare treats every pair as equal. Members overridden with it are
// skipped entirely, type mismatches included.
var DoNotCompare ValueComparer = ignored{}

type ignored struct{}

func (ignored) Compare(any, any, *Settings) bool { return true }
func (ignored) ToString(v any) string            { return FormatValue(v) }

type fieldKey struct {
	owner reflect.Type
	name  string
}

// Overrides is a registry of ValueComparers. Member lookups prefer a specific
// struct field, then the value type, then the member name.
type Overrides struct {
	byField    map[fieldKey]ValueComparer
	byType     map[reflect.Type]ValueComparer
	byName     map[string]ValueComparer
	formatters map[reflect.Type]func(v any) string
}

func NewOverrides() *Overrides {
	return &Overrides{
		byField:    map[fieldKey]ValueComparer{},
		byType:     map[reflect.Type]ValueComparer{},
		byName:     map[string]ValueComparer{},
		formatters: map[reflect.Type]func(any) string{},
	}
}

// AddField overrides the struct field named field (its Go name) of owner.
func (o *Overrides) AddField(owner reflect.Type, field string, vc ValueComparer) {
	o.byField[fieldKey{owner, field}] = vc
}

// AddType overrides every value of type t, wherever it appears.
func (o *Overrides) AddType(t reflect.Type, vc ValueComparer) {
	o.byType[t] = vc
}

// AddName overrides every member named name.
func (o *Overrides) AddName(name string, vc ValueComparer) {
	o.byName[name] = vc
}

// AddFormatter renders values of type t with fn without changing how they
// are compared.
func (o *Overrides) AddFormatter(t reflect.Type, fn func(v any) string) {
	o.formatters[t] = fn
}

// Type returns the override registered for t, or nil.
func (o *Overrides) Type(t reflect.Type) ValueComparer {
	if t == nil {
		return nil
	}
	return o.byType[t]
}

// Member returns the override for a member, or nil. owner and field are nil
// for members of dynamic objects.
func (o *Overrides) Member(owner reflect.Type, field *reflect.StructField, valueType reflect.Type, name string) ValueComparer {
	if owner != nil && field != nil {
		if vc, ok := o.byField[fieldKey{owner, field.Name}]; ok {
			return vc
		}
	}
	if vc := o.Type(valueType); vc != nil {
		return vc
	}
	return o.byName[name]
}

// Format renders v with the override or formatter of its type.
func (o *Overrides) Format(v any) string {
	rv := unwrap(reflect.ValueOf(v))
	if isNull(rv) {
		return ""
	}
	if vc := o.byType[rv.Type()]; vc != nil {
		return vc.ToString(v)
	}
	if fn, ok := o.formatters[rv.Type()]; ok {
		return fn(v)
	}
	return FormatValue(v)
}

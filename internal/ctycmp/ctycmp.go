// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ctycmp

import (
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/tfctl/objdiff/comparer"
)

// Unknown is the rendering of a value that is not known yet.
const Unknown = "(known after apply)"

var (
	valueType    = reflect.TypeFor[cty.Value]()
	objectType   = reflect.TypeFor[object]()
	sequenceType = reflect.TypeFor[[]cty.Value]()
)

// object exposes the attributes of a cty object or map to the dynamic
// object strategy.
type object map[string]cty.Value

func (o object) MemberNames() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (o object) Member(name string) (any, bool) {
	v, ok := o[name]
	return v, ok
}

// Options registers the strategy and renderers with a comparer.
func Options() []comparer.Option {
	return []comparer.Option{
		comparer.WithStrategy(Strategy{}),
		comparer.WithFormatter(valueType, Format),
		comparer.WithFormatter(objectType, Format),
	}
}

// Strategy compares cty.Value.
type Strategy struct{}

func (Strategy) IsMatch(t reflect.Type, _, _ reflect.Value) bool {
	return t == valueType
}

func (Strategy) IsStopComparison(_ reflect.Type, v1, v2 reflect.Value) bool {
	return value(v1).IsNull() && value(v2).IsNull()
}

func (Strategy) SkipMember(reflect.Type, reflect.StructField) bool {
	return false
}

func (Strategy) BuildTree(w comparer.Walker, _ reflect.Type, v1, v2 reflect.Value, node *comparer.Node) iter.Seq2[comparer.DifferenceLocation, error] {
	return func(yield func(comparer.DifferenceLocation, error) bool) {
		a, b := value(v1), value(v2)

		mismatch := func(kind comparer.Kind) {
			yield(w.NewDifference(node, comparer.Difference{
				Value1:    Format(a),
				Value2:    Format(b),
				Kind:      kind,
				RawValue1: a,
				RawValue2: b,
			}), nil)
		}

		switch {
		case a.IsNull() || b.IsNull():
			mismatch(comparer.ValueMismatch)
			return
		case !a.IsKnown() || !b.IsKnown():
			if a.IsKnown() != b.IsKnown() || !a.Type().Equals(b.Type()) {
				mismatch(comparer.ValueMismatch)
			}
			return
		}

		sa, sb := shapeOf(a.Type()), shapeOf(b.Type())
		if sa != sb {
			mismatch(comparer.TypeMismatch)
			return
		}

		var seq iter.Seq2[comparer.DifferenceLocation, error]
		switch sa {
		case shapeObject:
			seq = w.Walk(objectType, reflect.ValueOf(members(a)), reflect.ValueOf(members(b)), node)
		case shapeSequence:
			seq = w.Walk(sequenceType, reflect.ValueOf(elements(a)), reflect.ValueOf(elements(b)), node)
		default:
			switch {
			case !a.Type().Equals(b.Type()):
				mismatch(comparer.TypeMismatch)
			case !a.RawEquals(b):
				mismatch(comparer.ValueMismatch)
			}
			return
		}

		for loc, err := range seq {
			if !yield(loc, err) || err != nil {
				return
			}
		}
	}
}

type shape int

const (
	shapePrimitive shape = iota
	shapeObject
	shapeSequence
)

func shapeOf(t cty.Type) shape {
	switch {
	case t.IsObjectType(), t.IsMapType():
		return shapeObject
	case t.IsListType(), t.IsTupleType(), t.IsSetType():
		return shapeSequence
	}
	return shapePrimitive
}

// value is the cty.Value held by v, or cty.NilVal.
func value(v reflect.Value) cty.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return cty.NilVal
		}
		v = v.Elem()
	}
	if !v.IsValid() || !v.CanInterface() {
		return cty.NilVal
	}
	if cv, ok := v.Interface().(cty.Value); ok {
		return cv
	}
	return cty.NilVal
}

func members(v cty.Value) object {
	m := v.AsValueMap()
	if m == nil {
		m = map[string]cty.Value{}
	}
	return object(m)
}

func elements(v cty.Value) []cty.Value {
	s := v.AsValueSlice()
	if s == nil {
		s = []cty.Value{}
	}
	return s
}

// Format renders cty values: primitives bare, collections as JSON.
func Format(v any) string {
	var cv cty.Value
	switch t := v.(type) {
	case cty.Value:
		cv = t
	case object:
		cv = cty.ObjectVal(t)
	default:
		return comparer.FormatValue(v)
	}

	switch {
	case cv.IsNull():
		return ""
	case !cv.IsKnown():
		return Unknown
	case cv.Type().Equals(cty.String):
		return cv.AsString()
	case cv.Type().Equals(cty.Number):
		return cv.AsBigFloat().Text('f', -1)
	case cv.Type().Equals(cty.Bool):
		return strconv.FormatBool(cv.True())
	}

	b, err := ctyjson.Marshal(cv, cv.Type())
	if err != nil {
		return cv.GoString()
	}
	return string(b)
}

// ToNative converts v to the plain Go values the rest of the comparer
// understands: map[string]any, []any, string, float64 and bool.
func ToNative(v cty.Value) any {
	switch {
	case v.IsNull() || !v.IsKnown():
		return nil
	case v.Type().Equals(cty.String):
		return v.AsString()
	case v.Type().Equals(cty.Number):
		f, _ := v.AsBigFloat().Float64()
		return f
	case v.Type().Equals(cty.Bool):
		return v.True()
	}

	switch shapeOf(v.Type()) {
	case shapeObject:
		out := map[string]any{}
		for k, e := range v.AsValueMap() {
			out[k] = ToNative(e)
		}
		return out
	case shapeSequence:
		out := []any{}
		for _, e := range v.AsValueSlice() {
			out = append(out, ToNative(e))
		}
		return out
	}
	return Format(v)
}

// KeyProvider keys cty object elements by the first of names present as an
// attribute. Dotted names descend into nested objects. Other elements are
// keyed by comparer.MemberKeyProvider.
func KeyProvider(names ...string) func(element any) (any, bool) {
	fallback := comparer.MemberKeyProvider(names...)
	return func(element any) (any, bool) {
		cv, ok := element.(cty.Value)
		if !ok {
			return fallback(element)
		}
		for _, name := range names {
			if k, ok := lookup(cv, name); ok {
				return k, true
			}
		}
		return nil, false
	}
}

func lookup(v cty.Value, path string) (any, bool) {
	for _, part := range strings.Split(path, ".") {
		if v.IsNull() || !v.IsKnown() {
			return nil, false
		}
		t := v.Type()
		switch {
		case t.IsObjectType() && t.HasAttribute(part):
			v = v.GetAttr(part)
		case t.IsMapType() && v.HasIndex(cty.StringVal(part)).True():
			v = v.Index(cty.StringVal(part))
		default:
			return nil, false
		}
	}
	k := ToNative(v)
	return k, k != nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comparer

import (
	"fmt"
	"reflect"
	"strings"
)

// ListMode selects how sequence elements are paired.
type ListMode int

const (
	ByIndex ListMode = iota
	ByKey
)

func (m ListMode) String() string {
	if m == ByKey {
		return "ByKey"
	}
	return "ByIndex"
}

// DefaultKeyNames are looked up, in order, when no key is configured.
var DefaultKeyNames = []string{"ID", "Id", "Key", "Name"}

// ListOptions control the comparison of one sequence.
type ListOptions struct {
	// CompareUnequalLists keeps comparing elements after a
	// NumberOfElementsMismatch.
	CompareUnequalLists bool

	mode ListMode
	keys *KeyOptions
}

// DefaultListOptions pairs elements by index and stops on unequal lengths.
func DefaultListOptions() ListOptions {
	return ListOptions{}
}

// Mode reports the configured pairing mode.
func (o *ListOptions) Mode() ListMode { return o.mode }

// KeyOptions returns the key configuration, or nil in index mode.
func (o *ListOptions) KeyOptions() *KeyOptions { return o.keys }

// CompareElementsByIndex pairs the i-th elements of both sequences.
func (o *ListOptions) CompareElementsByIndex() *ListOptions {
	o.mode = ByIndex
	o.keys = nil
	return o
}

// CompareElementsByKey pairs elements having equal keys. With no configure
// functions the DefaultKeyNames are used.
func (o *ListOptions) CompareElementsByKey(configure ...func(*KeyOptions)) *ListOptions {
	o.mode = ByKey
	o.keys = DefaultKeyOptions()
	for _, fn := range configure {
		fn(o.keys)
	}
	return o
}

// KeyArgs are handed to KeyOptions.FormatKey.
type KeyArgs struct {
	Index   int
	Key     any
	Element any
}

// KeyOptions control keyed sequence comparison.
type KeyOptions struct {
	// KeyProvider extracts the key of a non-null element.
	KeyProvider func(element any) (any, bool)

	// ThrowKeyNotFound fails the comparison with an ElementKeyNotFoundError
	// when an element has no key. Otherwise such elements are skipped.
	ThrowKeyNotFound bool

	// FormatKey renders the key used in the element path segment.
	FormatKey func(args KeyArgs) string

	// FormatNullElement renders the path segment of a null element.
	FormatNullElement func(index int) string
}

// DefaultKeyOptions look up the DefaultKeyNames and fail on missing keys.
func DefaultKeyOptions() *KeyOptions {
	return &KeyOptions{
		KeyProvider:       MemberKeyProvider(DefaultKeyNames...),
		ThrowKeyNotFound:  true,
		FormatKey:         func(args KeyArgs) string { return fmt.Sprint(args.Key) },
		FormatNullElement: func(int) string { return "NULLREF" },
	}
}

// UseKey keys elements by the first of names that resolves on an element.
func (k *KeyOptions) UseKey(names ...string) *KeyOptions {
	k.KeyProvider = MemberKeyProvider(names...)
	return k
}

// UseKeyFunc keys elements with fn. A nil key counts as not found.
func (k *KeyOptions) UseKeyFunc(fn func(element any) any) *KeyOptions {
	k.KeyProvider = func(element any) (any, bool) {
		key := fn(element)
		return key, key != nil
	}
	return k
}

// MemberKeyProvider returns a key provider resolving the first of names that
// exists on an element. A name is a struct field (Go name or diff tag), a
// string map key, or a DynamicObject member. Dotted names descend into nested
// values, e.g. "metadata.name".
func MemberKeyProvider(names ...string) func(element any) (any, bool) {
	return func(element any) (any, bool) {
		for _, name := range names {
			if v, ok := lookupPath(reflect.ValueOf(element), name); ok {
				return v.Interface(), true
			}
		}
		return nil, false
	}
}

func lookupPath(v reflect.Value, path string) (reflect.Value, bool) {
	for _, part := range strings.Split(path, ".") {
		var ok bool
		if v, ok = lookupMember(v, part); !ok {
			return reflect.Value{}, false
		}
	}
	v = unwrap(v)
	if isNull(v) || !v.CanInterface() {
		return reflect.Value{}, false
	}
	return v, true
}

func lookupMember(v reflect.Value, name string) (reflect.Value, bool) {
	v = unwrap(v)
	if isNull(v) {
		return reflect.Value{}, false
	}

	if v.Type().Implements(dynamicObjectType) && v.CanInterface() {
		m, ok := v.Interface().(DynamicObject).Member(name)
		return reflect.ValueOf(m), ok
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() && (f.Name == name || memberName(f) == name) {
				return v.Field(i), true
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		return mv, mv.IsValid()
	}
	return reflect.Value{}, false
}

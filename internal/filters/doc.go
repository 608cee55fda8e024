// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects a subset of the differences found between two
// documents.
//
// Filters are specified as key-operator-target expressions and are combined
// using a configurable delimiter (default: comma, override with
// OBJDIFF_FILTER_DELIM). A difference is kept only when it matches every
// filter.
//
// Keys:
//
//   - path   : the difference path, e.g. "spec.ports[0].port"
//   - kind   : the difference kind, e.g. "ValueMismatch"
//   - value1 : the rendered value from the first document
//   - value2 : the rendered value from the second document
//   - depth  : the depth of the node the difference was found at
//
// Operators:
//
//   - = : exact match (numeric when both sides are numbers)
//   - ~ : case insensitive match
//   - ^ : prefix match
//   - < : less than (numeric when both sides are numbers)
//   - > : greater than (numeric when both sides are numbers)
//   - @ : contains substring
//   - / : regular expression match
//
// Every operator may be negated with a leading "!". A key without an operator
// matches differences where that field is not empty.
//
// Examples:
//
//   - "path^spec." : differences below spec
//   - "kind!=TypeMismatch" : everything but type mismatches
//   - "value2" : differences where the second value is present
//   - "path/\.tags\b" : differences touching a tags member
package filters

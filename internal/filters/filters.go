// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfctl/objdiff/comparer"
	"github.com/tfctl/objdiff/internal/log"
)

// ErrInvalidFilter is returned by Validate for a malformed filter spec.
var ErrInvalidFilter = errors.New("invalid filter")

// Keys are the difference fields a filter may test.
var Keys = []string{"path", "kind", "value1", "value2", "depth"}

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "path" (key only), "path=value"
// (key + operator + target), "value1=" (key + operator, no target).
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	filters, errs := parse(spec)
	for _, err := range errs {
		log.Errorf("%v", err)
	}
	return filters
}

// Validate reports the first invalid entry of spec.
func Validate(spec string) error {
	_, errs := parse(spec)
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func parse(spec string) ([]Filter, []error) {
	//nolint:prealloc
	var (
		filters []Filter
		errs    []error
	)

	if spec == "" {
		return filters, nil
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("OBJDIFF_FILTER_DELIM"); ok {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		// parts[1] is the key
		// parts[2] is the optional operator (may include negation like "!")
		// parts[3] is the optional target
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidFilter, filterSpec))
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[1]))
		operand := parts[2]
		target := parts[3]

		if key == "" {
			errs = append(errs, fmt.Errorf("%w: empty key in %s", ErrInvalidFilter, filterSpec))
			continue
		}
		if !validKey(key) {
			errs = append(errs, fmt.Errorf("%w: unknown key %q, want one of %s", ErrInvalidFilter, key, strings.Join(Keys, ", ")))
			continue
		}
		if operand == "" && target != "" {
			errs = append(errs, fmt.Errorf("%w: missing operator in %s", ErrInvalidFilter, filterSpec))
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		if operand == "/" {
			if _, err := regexp.Compile(target); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidFilter, filterSpec, err))
				continue
			}
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters, errs
}

func validKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Apply returns the differences of locs that match every filter in spec. The
// order of locs is preserved.
func Apply(locs []comparer.DifferenceLocation, spec string) []comparer.DifferenceLocation {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return locs
	}

	var kept []comparer.DifferenceLocation
	for _, loc := range locs {
		if Match(loc, filters) {
			kept = append(kept, loc)
		}
	}
	log.Debugf("filters: kept=%d of=%d", len(kept), len(locs))
	return kept
}

// Match returns true if loc matches all of the provided filters.
func Match(loc comparer.DifferenceLocation, filters []Filter) bool {
	for _, filter := range filters {
		value := field(loc, filter.Key)

		var result bool
		switch {
		case filter.Operand == "":
			result = value != ""
		default:
			if num, ok := toFloat64(value); ok && isNumericOperand(filter.Operand) {
				if tgt, ok := toFloat64(filter.Value); ok {
					result = checkNumericOperand(num, tgt, filter)
					break
				}
			}
			result = checkStringOperand(value, filter)
		}

		if !result {
			return false
		}
	}
	return true
}

func field(loc comparer.DifferenceLocation, key string) string {
	d := loc.Difference
	switch key {
	case "path":
		return d.Path
	case "kind":
		return d.Kind.String()
	case "value1":
		return d.Value1
	case "value2":
		return d.Value2
	case "depth":
		if loc.Node == nil {
			return "0"
		}
		return strconv.Itoa(loc.Node.Depth())
	}
	return ""
}

func isNumericOperand(op string) bool {
	return op == "=" || op == "<" || op == ">"
}

// checkNumericOperand compares a numeric value against the filter target using
// numeric semantics.
func checkNumericOperand(value, tgt float64, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}

// toFloat64 parses a rendered value as a number.
func toFloat64(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

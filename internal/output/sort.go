// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tfctl/objdiff/comparer"
)

// SortDifferences orders locs by a comma separated list of fields among path,
// kind, value1, value2 and depth. A leading "-" sorts descending and a leading
// "!" makes string comparison case sensitive. An empty spec keeps the order in
// which the differences were found.
func SortDifferences(locs []comparer.DifferenceLocation, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(locs, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)

			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := sortValue(locs[one], field)
			twoValue := sortValue(locs[two], field)

			// Numbers compare numerically.
			oneNum, oneErr := strconv.ParseFloat(oneValue, 64)
			twoNum, twoErr := strconv.ParseFloat(twoValue, 64)
			if oneErr == nil && twoErr == nil {
				if oneNum != twoNum {
					if ascending {
						return oneNum < twoNum
					}
					return oneNum > twoNum
				}
				continue
			}

			if !caseSensitive {
				oneValue = strings.ToLower(oneValue)
				twoValue = strings.ToLower(twoValue)
			}

			if oneValue != twoValue {
				if ascending {
					return oneValue < twoValue
				}
				return oneValue > twoValue
			}
		}
		return false
	})
}

func sortValue(loc comparer.DifferenceLocation, field string) string {
	d := loc.Difference
	switch field {
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

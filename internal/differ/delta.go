// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/objdiff/internal/document"
	"github.com/tfctl/objdiff/internal/log"
)

// Delta writes an annotated JSON delta of two documents to w. Top level keys
// named in ignore are dropped from both sides first. It reports whether the
// documents differ.
func Delta(w io.Writer, left, right *document.Document, ignore []string, color bool) (bool, error) {
	log.Debugf(">> differ.Delta()")

	one, err := native(left)
	if err != nil {
		return false, err
	}
	two, err := native(right)
	if err != nil {
		return false, err
	}

	differ := gojsondiff.New()

	var diff gojsondiff.Diff
	switch l := one.(type) {
	case map[string]interface{}:
		r, ok := two.(map[string]interface{})
		if !ok {
			return false, fmt.Errorf("cannot delta an object against %T", two)
		}
		for _, key := range ignore {
			delete(l, key)
			delete(r, key)
		}
		diff = differ.CompareObjects(l, r)
	case []interface{}:
		r, ok := two.([]interface{})
		if !ok {
			return false, fmt.Errorf("cannot delta a list against %T", two)
		}
		diff = differ.CompareArrays(l, r)
	default:
		return false, fmt.Errorf("delta needs an object or a list, got %T", one)
	}

	if !diff.Modified() {
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}

	out, err := formatter.NewAsciiFormatter(one, config).Format(diff)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(w, out)
	return true, nil
}

// native decodes the JSON rendering of doc so that both sides share the
// shapes gojsondiff expects.
func native(doc *document.Document) (interface{}, error) {
	data, err := doc.JSON()
	if err != nil {
		return nil, err
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", doc.Source, err)
	}
	return v, nil
}

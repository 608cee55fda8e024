// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tidwall/gjson"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for a format name Load does not know.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrParse is returned when a document cannot be parsed.
	ErrParse = errors.New("failed to parse document")
)

// ParseFormat resolves a format name. An empty name means autodetect and
// returns the empty Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "":
		return "", nil
	case "json", "tfstate":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "hcl", "tfvars":
		return HCL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Detect picks the format of a document, first by the extension of source
// and then by its content. HCL is only ever chosen by extension.
func Detect(source string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json", ".tfstate":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".tfvars", ".hcl":
		return HCL
	}

	if gjson.ValidBytes(raw) {
		return JSON
	}
	return YAML
}

// Parse turns raw into a document value of the given format.
func Parse(source string, format Format, raw []byte) (any, error) {
	switch format {
	case JSON:
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("%w: %s: invalid json", ErrParse, source)
		}
		return gjson.ParseBytes(raw).Value(), nil
	case YAML:
		return parseYAML(source, raw)
	case HCL:
		return parseHCL(source, raw)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func parseYAML(source string, raw []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, source, err)
	}
	return normalize(v), nil
}

// normalize gives YAML values the shapes a JSON document decodes to, so that
// a YAML document compares equal to the same JSON document.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return v
}

func parseHCL(source string, raw []byte) (any, error) {
	file, diags := hclparse.NewParser().ParseHCL(raw, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	vals := make(map[string]cty.Value, len(attrs))
	for _, name := range names {
		v, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
		}
		vals[name] = v
	}
	return cty.ObjectVal(vals), nil
}

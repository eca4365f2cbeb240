package logic

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// placeholderRegex matches {{ path }} placeholders.
var placeholderRegex = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// ResolveParams returns a copy of params with every placeholder replaced by the
// matching value from data. Missing values never fail: a string that is a single
// placeholder resolves to nil, an embedded placeholder to "".
func ResolveParams(params map[string]any, data map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = resolveValue(v, data)
	}
	return out
}

func resolveValue(v any, data map[string]any) any {
	switch t := v.(type) {
	case string:
		return ResolveString(t, data)
	case map[string]any:
		return ResolveParams(t, data)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = resolveValue(item, data)
		}
		return out
	}
	return v
}

// ResolveString resolves the placeholders in s. When s consists of exactly one
// placeholder the raw value is returned, keeping its type.
func ResolveString(s string, data map[string]any) any {
	matches := placeholderRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		value, _ := Lookup(data, s[matches[0][2]:matches[0][3]])
		return value
	}

	return placeholderRegex.ReplaceAllStringFunc(s, func(match string) string {
		sub := placeholderRegex.FindStringSubmatch(match)
		value, ok := Lookup(data, sub[1])
		if !ok {
			return ""
		}
		return stringify(value)
	})
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

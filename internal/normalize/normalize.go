// Package normalize is the single coercion point between how list fields are
// stored (native array, JSON-encoded string, delimited string) and the
// []string the rest of the service works with.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Delimiters used by the split fallback.
const (
	Comma     = ","
	Semicolon = ";"
)

// Strings coerces v into a list of trimmed, non-empty strings. Strings that
// are not a JSON array are split on delim. It never fails: anything it cannot
// read yields an empty, non-nil slice.
func Strings(v any, delim string) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return clean(val)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, scalar(item))
		}
		return clean(out)
	case List:
		return clean(val)
	case string:
		return fromString(val, delim)
	case *string:
		if val == nil {
			return []string{}
		}
		return fromString(*val, delim)
	case json.RawMessage:
		return fromRaw(val, delim)
	case []byte:
		return fromRaw(val, delim)
	default:
		s := scalar(val)
		return clean([]string{s})
	}
}

// Join renders a list for the delimited storage form.
func Join(list []string) string {
	return strings.Join(list, Comma+" ")
}

func fromString(s string, delim string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}
	if strings.HasPrefix(trimmed, "[") {
		if arr, ok := decodeArray([]byte(trimmed)); ok {
			return arr
		}
	}
	if delim == "" {
		delim = Comma
	}
	return clean(strings.Split(trimmed, delim))
}

// fromRaw handles column values handed over as undecoded JSON. A JSON string
// is unwrapped and re-read with the string rule, since the column may hold a
// JSON string that itself encodes an array.
func fromRaw(raw []byte, delim string) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []string{}
	}
	if arr, ok := decodeArray(trimmed); ok {
		return arr
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return fromString(s, delim)
	}
	return fromString(string(trimmed), delim)
}

func decodeArray(data []byte) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, false
	}
	// Anything after the array makes the whole value a plain string.
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, scalar(item))
	}
	return clean(out), true
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func clean(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

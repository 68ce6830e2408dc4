package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

var (
	ErrNotJSON   = errors.New("response body is not valid JSON")
	ErrNoValue   = errors.New("no value found")
	ErrNotString = errors.New("value is not a string")
)

// Document is a parsed JSON response body queried with JSONPath.
type Document struct {
	root any
}

// Parse decodes body as JSON.
func Parse(body []byte) (Document, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	return Document{root: root}, nil
}

// Lookup evaluates expr and returns the raw value.
// A missing key and an empty value both yield ErrNoValue.
func (d Document) Lookup(expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty jsonpath expression")
	}

	val, err := jsonpath.Get(expr, d.root)
	if err != nil {
		// jsonpath reports missing keys as evaluation errors.
		return nil, fmt.Errorf("%s: %w (%v)", expr, ErrNoValue, err)
	}
	if isEmptyValue(val) {
		return nil, fmt.Errorf("%s: %w", expr, ErrNoValue)
	}
	return val, nil
}

// String evaluates expr and requires a JSON string result. Arrays are
// rejected, even with a single element.
func (d Document) String(expr string) (string, error) {
	val, err := d.Lookup(expr)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w (got %T)", expr, ErrNotString, val)
	}
	return s, nil
}

// Text evaluates expr and renders scalars as text. A single-element array is
// unwrapped; other objects and arrays are JSON-encoded.
func (d Document) Text(expr string) (string, error) {
	val, err := d.Lookup(expr)
	if err != nil {
		return "", err
	}
	return toString(val)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return toString(arr[0])
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

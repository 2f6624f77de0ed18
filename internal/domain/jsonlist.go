package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StringList is a list of strings persisted as JSON text. Historical rows hold
// either a JSON array or a JSON string that itself encodes an array; Scan
// accepts both so callers only ever see a typed slice.
type StringList []string

// IntList is a list of integers persisted as JSON text. Elements may have been
// written as numbers or numeric strings.
type IntList []int

func (l *StringList) Scan(src any) error {
	raw, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	out, err := ParseStringList(raw)
	if err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IntList) Scan(src any) error {
	raw, err := scanText(src)
	if err != nil {
		return fmt.Errorf("scan int list: %w", err)
	}
	out, err := ParseIntList(raw)
	if err != nil {
		return fmt.Errorf("scan int list: %w", err)
	}
	*l = out
	return nil
}

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		l = IntList{}
	}
	b, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// ParseStringList decodes raw into a list, unwrapping one level of JSON string
// encoding. Empty input and "null" yield an empty list.
func ParseStringList(raw string) (StringList, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	out := make(StringList, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case nil:
		default:
			return nil, fmt.Errorf("unsupported list element %T", it)
		}
	}
	return out, nil
}

// ParseIntList decodes raw into a list of integers. Numeric strings are
// accepted; blank strings and nulls are skipped.
func ParseIntList(raw string) (IntList, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	out := make(IntList, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case float64:
			out = append(out, int(v))
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("list element %q is not an integer", v)
			}
			out = append(out, n)
		case nil:
		default:
			return nil, fmt.Errorf("unsupported list element %T", it)
		}
	}
	return out, nil
}

func decodeArray(raw string) ([]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("decode json list: %w", err)
	}
	// A JSON string holding an encoded array.
	if s, ok := v.(string); ok {
		return decodeArray(s)
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("decode json list: expected array, got %T", v)
	}
	return arr, nil
}

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported source type %T", src)
	}
}

// Package normalize coerces the heterogeneous response shapes of the store API into the canonical
// client-side model.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedShape is returned when a payload is neither a list nor a known wrapper.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Wrapper keys probed, in order, when a list response arrives as an object.
var listWrapperKeys = []string{"data", "orders", "items", "results"}

// Wrapper keys probed when a single-record response arrives wrapped.
var objectWrapperKeys = []string{"data", "order", "result"}

const maxUnwrapDepth = 4

// Decode parses raw JSON keeping numbers as json.Number so that decimals survive untouched.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return v, nil
}

// UnwrapList extracts the logical list from a bare array or a {data|orders|items|results: [...]} wrapper.
// Non-object elements are dropped.
func UnwrapList(raw []byte) ([]map[string]any, error) {
	v, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return UnwrapListValue(v)
}

// UnwrapListValue is UnwrapList over an already decoded payload.
func UnwrapListValue(v any) ([]map[string]any, error) {
	list, ok := unwrapList(v, 0)
	if !ok {
		return []map[string]any{}, ErrUnexpectedShape
	}

	records := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if rec, ok := el.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func unwrapList(v any, depth int) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case map[string]any:
		if depth >= maxUnwrapDepth {
			return nil, false
		}
		for _, key := range listWrapperKeys {
			inner, ok := t[key]
			if !ok || inner == nil {
				continue
			}
			if list, ok := unwrapList(inner, depth+1); ok {
				return list, true
			}
		}
	}
	return nil, false
}

// UnwrapObject extracts a single record from a bare object or a {data|order|result: {...}} wrapper.
func UnwrapObject(raw []byte) (map[string]any, error) {
	v, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return UnwrapObjectValue(v)
}

// UnwrapObjectValue is UnwrapObject over an already decoded payload.
func UnwrapObjectValue(v any) (map[string]any, error) {
	rec, ok := unwrapObject(v, 0)
	if !ok {
		return nil, ErrUnexpectedShape
	}
	return rec, nil
}

func unwrapObject(v any, depth int) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		if depth < maxUnwrapDepth {
			for _, key := range objectWrapperKeys {
				if inner, ok := t[key].(map[string]any); ok {
					return unwrapObject(inner, depth+1)
				}
			}
		}
		return t, true
	case []any:
		if len(t) == 1 {
			return unwrapObject(t[0], depth+1)
		}
	}
	return nil, false
}

// UnmarshalList unwraps a list response and decodes its records into out, which must point to a slice.
func UnmarshalList(raw []byte, out any) error {
	records, err := UnwrapList(raw)
	if err != nil {
		return err
	}
	return Remarshal(records, out)
}

// UnmarshalObject unwraps a single-record response and decodes it into out.
func UnmarshalObject(raw []byte, out any) error {
	rec, err := UnwrapObject(raw)
	if err != nil {
		return err
	}
	return Remarshal(rec, out)
}

// Remarshal converts decoded JSON values into a typed value.
func Remarshal(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode unwrapped payload: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode unwrapped payload: %w", err)
	}
	return nil
}

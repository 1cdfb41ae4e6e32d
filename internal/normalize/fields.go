package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// pick returns the first non-empty value among keys.
func pick(rec map[string]any, keys ...string) any {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

// object returns the first map-valued key.
func object(rec map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if m, ok := rec[key].(map[string]any); ok {
			return m
		}
	}
	return nil
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func dec(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(t)
		if cleaned == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(cleaned)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	}
	return decimal.Zero, false
}

func integer(v any) (int, bool) {
	d, ok := dec(v)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func timestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return time.Time{}, false
		}
		// Millisecond epochs are what JavaScript backends emit.
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), true
		}
		return time.Unix(n, 0).UTC(), true
	}
	return time.Time{}, false
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

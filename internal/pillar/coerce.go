package pillar

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Float coerces a raw column value to a score. Go numeric kinds,
// json.Number and numeric strings are accepted; anything else is nil.
func Float(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case *float64:
		if x == nil {
			return nil
		}
		f = *x
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Features coerces a raw top-features value to a string slice. Only
// sequences are accepted; non-string elements are dropped. Any other shape
// yields an empty, non-nil slice.
func Features(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case []string:
		out = append(out, x...)
	case []any:
		for _, el := range x {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
	default:
		if v != nil {
			zap.L().Debug("pillar: coerced non-array features to empty",
				zap.String("type", typeName(v)),
			)
		}
	}
	return out
}

// Text coerces a raw value to a string. Non-strings yield "".
func Text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case *string:
		if x != nil {
			return *x
		}
	}
	return ""
}

// Time coerces a raw value to a timestamp. time.Time, RFC 3339 and
// YYYY-MM-DD strings are accepted.
func Time(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return &x
	case *time.Time:
		return x
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	return nil
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	default:
		if Float(v) != nil {
			return "number"
		}
		return "other"
	}
}

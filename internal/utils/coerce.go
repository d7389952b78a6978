package utils

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Coercion helpers for loosely typed values coming out of decoded columnar
// rows and cached API responses, where ids may arrive as strings or numbers
// depending on the writer.

// ToStringFallback converts v to a string, returning fallback when v is
// absent or empty.
func ToStringFallback(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return strconv.Itoa(int(t))
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.Itoa(int(t))
	case json.Number:
		if i, err := strconv.Atoi(t.String()); err == nil {
			return strconv.Itoa(i)
		}
		return t.String()
	}
	return fallback
}

func ToFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(t, 64)
	case json.Number:
		return t.Float64()
	default:
		return 0, errors.New("not a float")
	}
}

func ToInt(v any) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int64:
		return int(t), nil
	case int32:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	case json.Number:
		i64, err := t.Int64()
		return int(i64), err
	default:
		return 0, errors.New("not an int")
	}
}

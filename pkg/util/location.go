package util

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnknownLocation is the bucket for rows without a usable location.
const UnknownLocation = "Unknown"

// NormalizeLocation trims a raw location and maps absent or blank values to
// UnknownLocation. Case is preserved, so "Austin" and "austin" stay distinct buckets.
func NormalizeLocation(raw *string) string {
	if key, ok := LocationKey(raw); ok {
		return key
	}
	return UnknownLocation
}

// LocationKey returns the trimmed location and false when it is absent or blank.
// Views that exclude unlocated rows use this instead of NormalizeLocation.
func LocationKey(raw *string) (string, bool) {
	if raw == nil {
		return "", false
	}
	key := strings.TrimSpace(*raw)
	if key == "" {
		return "", false
	}
	return key, true
}

// MatchLocation reports whether a raw location equals city after trimming,
// ignoring case. Unlocated rows never match.
func MatchLocation(raw *string, city string) bool {
	key, ok := LocationKey(raw)
	if !ok {
		return false
	}
	return strings.EqualFold(key, strings.TrimSpace(city))
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// ToFloat coerces a semi-structured amount to a float. Missing, non-numeric
// and non-finite values become 0.
func ToFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		return parseFloat(t)
	case []byte:
		return parseFloat(string(t))
	case *float64:
		if t == nil {
			return 0
		}
		f = *t
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizeStatus lower-cases and trims a free-text status value.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

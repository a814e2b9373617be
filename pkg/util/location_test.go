package util

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  string
	}{
		{name: "nil becomes Unknown", input: nil, want: UnknownLocation},
		{name: "empty becomes Unknown", input: StringPtr(""), want: UnknownLocation},
		{name: "whitespace only becomes Unknown", input: StringPtr("  \t\n "), want: UnknownLocation},
		{name: "trims surrounding whitespace", input: StringPtr("  Austin "), want: "Austin"},
		{name: "preserves case", input: StringPtr("austin"), want: "austin"},
		{name: "keeps inner spacing", input: StringPtr("New  York"), want: "New  York"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLocation(tt.input); got != tt.want {
				t.Errorf("NormalizeLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationKey(t *testing.T) {
	if _, ok := LocationKey(nil); ok {
		t.Error("nil location should not produce a key")
	}
	if _, ok := LocationKey(StringPtr("   ")); ok {
		t.Error("blank location should not produce a key")
	}
	key, ok := LocationKey(StringPtr(" Denver "))
	if !ok || key != "Denver" {
		t.Errorf("LocationKey = (%q, %v), want (Denver, true)", key, ok)
	}
}

func TestMatchLocation(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		city string
		want bool
	}{
		{name: "exact", raw: StringPtr("Austin"), city: "Austin", want: true},
		{name: "case-insensitive", raw: StringPtr("AUSTIN"), city: "austin", want: true},
		{name: "trims both sides", raw: StringPtr(" Austin "), city: "austin  ", want: true},
		{name: "no substring match", raw: StringPtr("Austin North"), city: "Austin", want: false},
		{name: "nil never matches", raw: nil, city: "Unknown", want: false},
		{name: "blank never matches", raw: StringPtr(""), city: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchLocation(tt.raw, tt.city); got != tt.want {
				t.Errorf("MatchLocation(%v, %q) = %v, want %v", tt.raw, tt.city, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{name: "nil", input: nil, want: 0},
		{name: "float64", input: 12.5, want: 12.5},
		{name: "int", input: 7, want: 7},
		{name: "int64", input: int64(9), want: 9},
		{name: "numeric string", input: " 100.25 ", want: 100.25},
		{name: "garbage string", input: "abc", want: 0},
		{name: "empty string", input: "", want: 0},
		{name: "json number", input: json.Number("42"), want: 42},
		{name: "NaN", input: math.NaN(), want: 0},
		{name: "infinity", input: math.Inf(1), want: 0},
		{name: "NaN string", input: "NaN", want: 0},
		{name: "bool", input: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat(tt.input); got != tt.want {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("  Active "); got != "active" {
		t.Errorf("NormalizeStatus = %q, want active", got)
	}
}

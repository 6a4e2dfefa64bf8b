package commands

import (
	"reflect"
	"testing"
)

func TestParseJSONFlag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    any
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"object", `{"a":1}`, map[string]any{"a": float64(1)}, false},
		{"array", `[1,2]`, []any{float64(1), float64(2)}, false},
		{"invalid", "{oops", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJSONFlag("test", tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseJSONFlag(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseJSONFlag(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseRangeFlag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []int
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"window", "0:49", []int{0, 49}, false},
		{"offset window", "100:199", []int{100, 199}, false},
		{"missing separator", "42", nil, true},
		{"non-numeric", "a:b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRangeFlag(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRangeFlag(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseRangeFlag(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

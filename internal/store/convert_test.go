package store

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeValueScalars(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"string passthrough", "hello", "hello"},
		{"bool passthrough", true, true},
		{"nil passthrough", nil, nil},
		{"float passthrough", 3.14, 3.14},
		{"int64 narrows", int64(42), 42},
		{"whole json number", json.Number("10"), 10},
		{"fractional json number", json.Number("3.14"), 3.14},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeValue(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeValue(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeValueEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"string envelope", map[string]any{"S": "foo"}, "foo"},
		{"whole number envelope", map[string]any{"N": "100"}, 100},
		{"fractional number envelope", map[string]any{"N": "1.5"}, 1.5},
		{"bool envelope", map[string]any{"BOOL": true}, true},
		{"null envelope", map[string]any{"NULL": true}, nil},
		{
			"list envelope",
			map[string]any{"L": []any{map[string]any{"S": "a"}, map[string]any{"N": "1"}}},
			[]any{"a", 1},
		},
		{
			"map envelope",
			map[string]any{"M": map[string]any{"count": map[string]any{"N": "3"}, "ok": map[string]any{"BOOL": true}}},
			map[string]any{"count": 3, "ok": true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeValue(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeValue(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeRecordNested(t *testing.T) {
	rec := map[string]any{
		"job_id":           "j1",
		"progress_percent": int64(100),
		"status":           "COMPLETED",
		"results": map[string]any{
			"duration_seconds": json.Number("120"),
			"nested":           map[string]any{"score": json.Number("0")},
		},
	}
	want := map[string]any{
		"job_id":           "j1",
		"progress_percent": 100,
		"status":           "COMPLETED",
		"results": map[string]any{
			"duration_seconds": 120,
			"nested":           map[string]any{"score": 0},
		},
	}
	if got := NormalizeRecord(rec); !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeRecord mismatch:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestNormalizeRecordNil(t *testing.T) {
	if got := NormalizeRecord(nil); got != nil {
		t.Fatalf("NormalizeRecord(nil) = %#v, want nil", got)
	}
}

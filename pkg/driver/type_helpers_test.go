package driver

import (
	"errors"
	"testing"
	"time"
)

func TestAsTimeConversions(t *testing.T) {
	want := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"native", want, true},
		{"date string", "2023-05-01", true},
		{"rfc3339", "2023-05-01T00:00:00Z", true},
		{"garbage", "yesterday", false},
		{"wrong type", 42, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AsTime(tc.value)
			if ok != tc.ok {
				t.Fatalf("AsTime(%v) ok = %v, want %v", tc.value, ok, tc.ok)
			}
			if ok && !got.Equal(want) {
				t.Errorf("AsTime(%v) = %v, want %v", tc.value, got, want)
			}
		})
	}
}

func TestMustString(t *testing.T) {
	s, err := MustString("P1", "player_id")
	if err != nil || s != "P1" {
		t.Fatalf("MustString = %q, %v", s, err)
	}

	_, err = MustString(42, "player_id")
	var convErr *TypeConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("MustString(42) error = %v, want TypeConversionError", err)
	}
	if convErr.Field != "player_id" {
		t.Errorf("Field = %q, want player_id", convErr.Field)
	}
}

func TestAsRecordForms(t *testing.T) {
	if _, ok := AsRecord(Record{"k": "v"}); !ok {
		t.Error("Record form rejected")
	}
	if _, ok := AsRecord(map[string]any{"k": "v"}); !ok {
		t.Error("map form rejected")
	}
	if _, ok := AsRecord("not a record"); ok {
		t.Error("string accepted")
	}
}

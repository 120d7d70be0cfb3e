package utils

import (
	"testing"
	"time"
)

func TestParseCivilTime(t *testing.T) {
	got, err := ParseCivilTime("2026-03-15 09:30")
	if err != nil {
		t.Fatalf("ParseCivilTime failed: %v", err)
	}
	want := time.Date(2026, 3, 15, 1, 30, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("ParseCivilTime = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("stored instant location = %v, want UTC", got.Location())
	}
}

func TestParseCivilTimeEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		got, err := ParseCivilTime(input)
		if err != nil {
			t.Errorf("ParseCivilTime(%q) error: %v", input, err)
		}
		if got != nil {
			t.Errorf("ParseCivilTime(%q) = %v, want nil", input, got)
		}
	}
}

func TestParseCivilTimeInvalid(t *testing.T) {
	for _, input := range []string{"2026-03-15", "15/03/2026 09:30", "2026-03-15T09:30:00Z"} {
		if _, err := ParseCivilTime(input); err == nil {
			t.Errorf("ParseCivilTime(%q) accepted malformed input", input)
		}
	}
}

func TestFormatCivilTime(t *testing.T) {
	instant := time.Date(2026, 3, 15, 1, 30, 0, 0, time.UTC)
	if got := FormatCivilTime(&instant); got != "2026-03-15 09:30" {
		t.Errorf("FormatCivilTime = %q, want %q", got, "2026-03-15 09:30")
	}
	if got := FormatCivilTime(nil); got != "" {
		t.Errorf("FormatCivilTime(nil) = %q, want empty", got)
	}
}

func TestCivilTimeRoundTrip(t *testing.T) {
	const civil = "2025-12-31 23:59"
	parsed, err := ParseCivilTime(civil)
	if err != nil {
		t.Fatalf("ParseCivilTime failed: %v", err)
	}
	if got := FormatCivilTime(parsed); got != civil {
		t.Errorf("round trip = %q, want %q", got, civil)
	}
}

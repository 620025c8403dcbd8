package deltatime

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	in := time.Date(2023, 1, 1, 12, 0, 0, 123456789, time.UTC)
	if got := Format(in); got != "20230101120000123456" {
		t.Fatalf("Format = %q", got)
	}

	// Non-UTC inputs are normalised.
	loc := time.FixedZone("plus2", 2*3600)
	in = time.Date(2023, 1, 1, 14, 0, 0, 0, loc)
	if got := Format(in); got != "20230101120000000000" {
		t.Fatalf("Format (zoned) = %q", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	in := time.Date(2018, 6, 30, 23, 59, 59, 999999000, time.UTC)
	got, err := Parse(Format(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Equal(in) {
		t.Fatalf("round trip: got %v want %v", got, in)
	}
}

func TestParseOrdering(t *testing.T) {
	older, err := Parse("20180101000000000000")
	if err != nil {
		t.Fatalf("Parse older: %v", err)
	}
	newer, err := Parse("20230101120000000001")
	if err != nil {
		t.Fatalf("Parse newer: %v", err)
	}
	if !older.Before(newer) {
		t.Fatalf("expected %v before %v", older, newer)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"20230101120000",        // too short
		"2023010112000012345",   // 19 digits
		"202301011200001234567", // 21 digits
		"2023010112000012345x",
		"20231301120000000000", // month 13
		"20230101120000-12345",
	} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error", s)
		}
	}
}

func TestPublishedAt(t *testing.T) {
	in := time.Date(2024, 2, 29, 8, 5, 3, 500000000, time.UTC)
	if got := PublishedAt(in); got != "2024-02-29T08:05:03" {
		t.Fatalf("PublishedAt = %q", got)
	}
}

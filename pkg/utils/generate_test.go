package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateBookingCode(t *testing.T) {
	pattern := regexp.MustCompile(`^OR-\d{8}-\d{4}$`)

	code := GenerateBookingCode()
	if !pattern.MatchString(code) {
		t.Errorf("booking code %q does not match OR-YYYYMMDD-NNNN", code)
	}

	wantDate := time.Now().Format("20060102")
	if !strings.Contains(code, wantDate) {
		t.Errorf("booking code %q missing today's date %s", code, wantDate)
	}
}

func TestGeneratePaymentReference(t *testing.T) {
	ref := GeneratePaymentReference("cash")
	if !strings.HasPrefix(ref, "manual_cash_") {
		t.Errorf("reference %q missing manual_cash_ prefix", ref)
	}

	if ref == GeneratePaymentReference("cash") {
		t.Error("consecutive references should differ")
	}
}

func TestParseDate(t *testing.T) {
	parsed := ParseDate("2026-01-15")
	if parsed.Year() != 2026 || parsed.Month() != time.January || parsed.Day() != 15 {
		t.Errorf("parsed %v, want 2026-01-15", parsed)
	}

	// Malformed input falls back to today rather than erroring.
	fallback := ParseDate("not-a-date")
	if fallback.IsZero() {
		t.Error("fallback date should not be zero")
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		value string
		def   int
		want  int
	}{
		{"5", 1, 5},
		{"", 10, 10},
		{"abc", 3, 3},
		{"0", 7, 7},
		{"-2", 7, 7},
	}

	for _, tt := range tests {
		if got := ParseInt(tt.value, tt.def); got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
		}
	}
}

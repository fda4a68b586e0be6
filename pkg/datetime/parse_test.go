package datetime

import (
	"testing"
	"time"
)

func TestTranslatePattern(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		expected string
	}{
		{"Full month name", "dd MMMM yyyy", "02 January 2006"},
		{"Abbreviated month", "dd MMM yyyy", "02 Jan 2006"},
		{"Numeric dashed", "yyyy-MM-dd", "2006-01-02"},
		{"Numeric slashed", "dd/MM/yyyy", "02/01/2006"},
		{"Single digit tokens", "d M yy", "2 1 06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslatePattern(tt.pattern); got != tt.expected {
				t.Errorf("TranslatePattern(%q) = %q, expected %q", tt.pattern, got, tt.expected)
			}
		})
	}
}

func TestParseWithPattern(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		value     string
		expected  string
		expectErr bool
	}{
		{name: "Numeric", pattern: "yyyy-MM-dd", value: "2012-03-04", expected: "2012-03-04"},
		{name: "Month name", pattern: "dd MMMM yyyy", value: "04 March 2012", expected: "2012-03-04"},
		{name: "Lowercased month name", pattern: "dd MMMM yyyy", value: "04 march 2012", expected: "2012-03-04"},
		{name: "Abbreviated lowercase", pattern: "dd MMM yyyy", value: "04 mar 2012", expected: "2012-03-04"},
		{name: "Garbage", pattern: "dd MMMM yyyy", value: "not a date", expectErr: true},
		{name: "Wrong format", pattern: "yyyy-MM-dd", value: "04 March 2012", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWithPattern(tt.pattern, tt.value)

			if tt.expectErr {
				if err == nil {
					t.Fatalf("ParseWithPattern(%q, %q) = %v, expected error", tt.pattern, tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWithPattern(%q, %q) unexpected error: %v", tt.pattern, tt.value, err)
			}
			if got.Format(DateTimeLayout) != tt.expected {
				t.Errorf("ParseWithPattern(%q, %q) = %v, expected %s", tt.pattern, tt.value, got, tt.expected)
			}
		})
	}
}

func TestDateBeforeDate(t *testing.T) {
	before, err := DateBeforeDate("2012-01-01", "2012-02-01")
	if err != nil {
		t.Fatalf("DateBeforeDate() unexpected error: %v", err)
	}
	if !before {
		t.Error("DateBeforeDate() = false, expected true")
	}

	same, err := DateBeforeDate("2012-01-01", "2012-01-01")
	if err != nil {
		t.Fatalf("DateBeforeDate() unexpected error: %v", err)
	}
	if same {
		t.Error("DateBeforeDate() = true for equal dates, expected false")
	}
}

func TestMustParseTime(t *testing.T) {
	got := MustParseTime(DateTimeLayout, "2012-06-15")
	if got.Month() != time.June || got.Day() != 15 {
		t.Errorf("MustParseTime() = %v, expected 2012-06-15", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParseTime() did not panic on invalid input")
		}
	}()
	MustParseTime(DateTimeLayout, "garbage")
}

package params

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLocalizedDecimal(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		locale    Locale
		expected  string
		expectErr bool
	}{
		{
			name:     "English plain",
			source:   "200.25",
			locale:   Locale{Language: "en"},
			expected: "200.25",
		},
		{
			name:     "English grouped",
			source:   "1,000,000.5",
			locale:   Locale{Language: "en"},
			expected: "1000000.5",
		},
		{
			name:     "German comma decimal dot grouping",
			source:   "1.000,25",
			locale:   Locale{Language: "de"},
			expected: "1000.25",
		},
		{
			name:     "French comma decimal space grouping",
			source:   "1 000,25",
			locale:   Locale{Language: "fr"},
			expected: "1000.25",
		},
		{
			name:     "French non-breaking space grouping",
			source:   "1\u00a0234,5",
			locale:   Locale{Language: "fr"},
			expected: "1234.5",
		},
		{
			name:     "Negative amount",
			source:   "-2,500.75",
			locale:   Locale{Language: "en"},
			expected: "-2500.75",
		},
		{
			name:      "Misplaced grouping separator",
			source:    "10,5",
			locale:    Locale{Language: "en"},
			expectErr: true,
		},
		{
			name:      "Misplaced grouping separator german",
			source:    "10.5",
			locale:    Locale{Language: "de"},
			expectErr: true,
		},
		{
			name:      "Multiple decimal separators",
			source:    "1.2.3",
			locale:    Locale{Language: "en"},
			expectErr: true,
		},
		{
			name:      "Not a number",
			source:    "abc",
			locale:    Locale{Language: "en"},
			expectErr: true,
		},
		{
			name:      "Grouping separator after decimal point",
			source:    "1.2,3",
			locale:    Locale{Language: "en"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseLocalizedDecimal(tt.source, tt.locale)

			if tt.expectErr {
				if err == nil {
					t.Fatalf("parseLocalizedDecimal(%q) = %s, expected error", tt.source, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLocalizedDecimal(%q) unexpected error: %v", tt.source, err)
			}
			if !d.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("parseLocalizedDecimal(%q) = %s, expected %s", tt.source, d, tt.expected)
			}
		})
	}
}

// Formatting a decimal under a locale then parsing it back under the same
// locale must return the original value.
func TestDecimalRoundTrip(t *testing.T) {
	locales := []Locale{
		{Language: "en", Country: "US"},
		{Language: "fr", Country: "FR"},
		{Language: "de", Country: "DE"},
	}
	values := []string{"0", "0.5", "1000", "1234567.89", "-99999.99", "100.001"}

	for _, loc := range locales {
		for _, v := range values {
			original := decimal.RequireFromString(v)
			formatted := FormatDecimal(original, loc)
			parsed, err := parseLocalizedDecimal(formatted, loc)
			if err != nil {
				t.Fatalf("locale %s: parse(%q) unexpected error: %v", loc, formatted, err)
			}
			if !parsed.Equal(original) {
				t.Errorf("locale %s: round trip %s -> %q -> %s", loc, original, formatted, parsed)
			}
		}
	}
}

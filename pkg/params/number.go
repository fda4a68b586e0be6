package params

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const nbsp = '\u00a0'

// separators holds the decimal and grouping separator characters for a
// locale's number format.
type separators struct {
	decimal  rune
	grouping rune
}

// separatorsByLanguage covers the client languages the platform accepts
// numeric input in. Languages not listed use the English convention.
var separatorsByLanguage = map[string]separators{
	"en": {decimal: '.', grouping: ','},
	"de": {decimal: ',', grouping: '.'},
	"es": {decimal: ',', grouping: '.'},
	"it": {decimal: ',', grouping: '.'},
	"nl": {decimal: ',', grouping: '.'},
	"pt": {decimal: ',', grouping: '.'},
	"tr": {decimal: ',', grouping: '.'},
	"fr": {decimal: ',', grouping: nbsp},
	"ru": {decimal: ',', grouping: nbsp},
}

func localeSeparators(loc Locale) separators {
	if sep, ok := separatorsByLanguage[loc.Language]; ok {
		return sep
	}
	return separatorsByLanguage["en"]
}

// parseLocalizedDecimal parses a locale-formatted number into an exact
// decimal. Grouping separators must split the integer part into standard
// groups of three; a lone or misplaced separator rejects the whole value
// rather than silently shifting magnitude.
func parseLocalizedDecimal(source string, loc Locale) (decimal.Decimal, error) {
	sep := localeSeparators(loc)
	s := strings.TrimSpace(source)

	// Locales that group with non-breaking space commonly arrive with a
	// plain space instead; normalize before parsing.
	if sep.grouping == nbsp {
		s = strings.ReplaceAll(s, " ", string(nbsp))
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexRune(s, sep.decimal); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
		if strings.ContainsRune(fracPart, sep.decimal) {
			return decimal.Decimal{}, fmt.Errorf("multiple decimal separators in %q", source)
		}
		if strings.ContainsRune(fracPart, sep.grouping) {
			return decimal.Decimal{}, fmt.Errorf("grouping separator in fractional part of %q", source)
		}
	}

	intDigits, err := stripGrouping(intPart, sep.grouping)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%v in %q", err, source)
	}

	plain := intDigits
	if fracPart != "" {
		plain += "." + fracPart
	}
	if negative {
		plain = "-" + plain
	}

	d, err := decimal.NewFromString(plain)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a number: %q", source)
	}
	return d, nil
}

// stripGrouping removes grouping separators after checking they divide the
// digits into a leading group of one to three digits followed by groups of
// exactly three.
func stripGrouping(intPart string, grouping rune) (string, error) {
	if intPart == "" {
		return "", fmt.Errorf("missing integer digits")
	}
	groups := strings.Split(intPart, string(grouping))
	for i, g := range groups {
		if i == 0 {
			if len(g) < 1 || (len(groups) > 1 && len(g) > 3) {
				return "", fmt.Errorf("misplaced grouping separator")
			}
			continue
		}
		if len(g) != 3 {
			return "", fmt.Errorf("misplaced grouping separator")
		}
	}
	return strings.Join(groups, ""), nil
}

// FormatDecimal renders a decimal using the locale's separators with
// standard three-digit grouping. Parsing the result under the same locale
// returns the original value.
func FormatDecimal(d decimal.Decimal, loc Locale) string {
	sep := localeSeparators(loc)
	plain := d.String()

	negative := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")

	intPart := plain
	fracPart := ""
	if idx := strings.Index(plain, "."); idx >= 0 {
		intPart = plain[:idx]
		fracPart = plain[idx+1:]
	}

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteRune(sep.grouping)
		}
		grouped.WriteRune(r)
	}

	out := grouped.String()
	if fracPart != "" {
		out += string(sep.decimal) + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

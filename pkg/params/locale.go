package params

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies a client locale as language[, country[, variant]].
type Locale struct {
	Language string
	Country  string
	Variant  string
}

func (l Locale) String() string {
	s := l.Language
	if l.Country != "" {
		s += "_" + l.Country
	}
	if l.Variant != "" {
		s += "_" + l.Variant
	}
	return s
}

// ParseLocale splits a locale string on "_" and validates the language
// against ISO-639 and the country, when present, against ISO-3166. All
// problems with one locale string are collected together rather than
// failing on the first.
func ParseLocale(localeStr string) (Locale, []ValidationError) {
	var errs []ValidationError

	if strings.TrimSpace(localeStr) == "" {
		errs = append(errs, ValidationError{
			ParameterName: "locale",
			Code:          CodeInvalidLocale,
			Message:       "The parameter locale is invalid. It cannot be blank.",
		})
		return Locale{}, errs
	}

	var loc Locale
	parts := strings.Split(localeStr, "_")
	switch len(parts) {
	case 1:
		loc.Language = parts[0]
	case 2:
		loc.Language = parts[0]
		loc.Country = parts[1]
	case 3:
		loc.Language = parts[0]
		loc.Country = parts[1]
		loc.Variant = parts[2]
	default:
		errs = append(errs, ValidationError{
			ParameterName: "locale",
			Code:          CodeInvalidLocale,
			Message:       fmt.Sprintf("The parameter locale has an invalid value %s.", localeStr),
			Value:         localeStr,
		})
		return Locale{}, errs
	}

	if _, err := language.ParseBase(strings.ToLower(loc.Language)); err != nil {
		errs = append(errs, ValidationError{
			ParameterName: "locale",
			Code:          CodeInvalidLocale,
			Message:       fmt.Sprintf("The parameter locale has an invalid language value %s.", loc.Language),
			Value:         loc.Language,
		})
	}

	if loc.Country != "" {
		if _, err := language.ParseRegion(strings.ToUpper(loc.Country)); err != nil {
			errs = append(errs, ValidationError{
				ParameterName: "locale",
				Code:          CodeInvalidLocale,
				Message:       fmt.Sprintf("The parameter locale has an invalid country value %s.", loc.Country),
				Value:         loc.Country,
			})
		}
	}

	if len(errs) > 0 {
		return Locale{}, errs
	}

	loc.Language = strings.ToLower(loc.Language)
	loc.Country = strings.ToUpper(loc.Country)
	return loc, nil
}

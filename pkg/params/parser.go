package params

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lendwise/loan-ledger/pkg/constants"
	"github.com/lendwise/loan-ledger/pkg/datetime"
	"github.com/shopspring/decimal"
)

// Parser extracts typed values from one request payload. It is scoped to a
// single parse attempt: extraction methods record which parameters were
// present (the modified set) and accumulate validation errors, which Err
// surfaces once as a complete ordered list.
type Parser struct {
	payload  map[string]string
	modified map[string]struct{}
	errs     []ValidationError
}

// New returns a Parser over the given untyped payload.
func New(payload map[string]string) *Parser {
	return &Parser{
		payload:  payload,
		modified: make(map[string]struct{}),
	}
}

// Modified returns the set of parameter names that were present and
// non-blank in the payload, regardless of whether their values parsed.
func (p *Parser) Modified() map[string]struct{} {
	out := make(map[string]struct{}, len(p.modified))
	for k := range p.modified {
		out[k] = struct{}{}
	}
	return out
}

// Err returns nil when no validation errors were recorded, otherwise a
// ValidationFailedError carrying every error from this parse attempt.
// Callers must abort the operation on a non-nil result; the payload is
// applied atomically or not at all.
func (p *Parser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	errs := make([]ValidationError, len(p.errs))
	copy(errs, p.errs)
	return &ValidationFailedError{Errors: errs}
}

// raw marks the parameter modified when present and non-blank and returns
// the trimmed value.
func (p *Parser) raw(name string) (string, bool) {
	v, ok := p.payload[name]
	if !ok {
		return "", false
	}
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	p.modified[name] = struct{}{}
	return strings.TrimSpace(v), true
}

// ExtractString returns the named string value, or nil when absent or blank.
func (p *Parser) ExtractString(name string) *string {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	return &v
}

// ExtractLong converts the named value directly to an int64 without locale
// awareness. Absent or blank yields nil without error.
func (p *Parser) ExtractLong(name string) *int64 {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeInvalidInteger,
			Message:       fmt.Sprintf("The parameter %s has value: %s which is not a valid number.", name, v),
			Value:         v,
		})
		return nil
	}
	return &n
}

// ExtractBool converts the named value to a bool. Absent or blank yields
// nil without error.
func (p *Parser) ExtractBool(name string) *bool {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeInvalidBoolean,
			Message:       fmt.Sprintf("The parameter %s has value: %s which is not a valid boolean.", name, v),
			Value:         v,
		})
		return nil
	}
	return &b
}

// ExtractDecimal parses the named value as a locale-formatted decimal. The
// payload must carry a companion locale parameter; its absence is a hard
// validation error.
func (p *Parser) ExtractDecimal(name string) *decimal.Decimal {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}

	loc, ok := p.requireLocale(name)
	if !ok {
		return nil
	}

	d, err := parseLocalizedDecimal(v, loc)
	if err != nil {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeInvalidDecimal,
			Message: fmt.Sprintf("The parameter %s has value: %s which is invalid decimal value for provided locale of [%s].",
				name, v, loc),
			Value: v,
			Args:  []string{loc.String()},
		})
		return nil
	}
	return &d
}

// ExtractInteger parses the named value as a locale-formatted integer. A
// value containing the locale's decimal separator, or carrying a nonzero
// fractional remainder, is rejected so "1.5" never parses as integer 1.
func (p *Parser) ExtractInteger(name string) *int64 {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}

	loc, ok := p.requireLocale(name)
	if !ok {
		return nil
	}

	invalid := func() *int64 {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeInvalidInteger,
			Message: fmt.Sprintf("The parameter %s has value: %s which is invalid integer value for provided locale of [%s].",
				name, v, loc),
			Value: v,
			Args:  []string{loc.String()},
		})
		return nil
	}

	if strings.ContainsRune(v, localeSeparators(loc).decimal) {
		return invalid()
	}

	d, err := parseLocalizedDecimal(v, loc)
	if err != nil {
		return invalid()
	}
	if !d.Equal(d.Truncate(0)) {
		return invalid()
	}

	n := d.IntPart()
	return &n
}

// ExtractDate parses the named value against the payload's dateFormat
// parameter; a missing dateFormat is a hard validation error.
func (p *Parser) ExtractDate(name string) *time.Time {
	v, ok := p.raw(name)
	if !ok {
		return nil
	}

	format, hasFormat := p.payload[constants.DateFormatParameter]
	if strings.TrimSpace(format) == "" || !hasFormat {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeMissingDateFormat,
			Message:       fmt.Sprintf("The parameter '%s' requires a 'dateFormat' parameter to be passed with it.", name),
		})
		return nil
	}

	t, err := datetime.ParseWithPattern(format, v)
	if err != nil {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeInvalidDate,
			Message: fmt.Sprintf("The parameter %s is invalid based on the dateFormat provided: %s",
				name, format),
			Value: v,
			Args:  []string{format},
		})
		return nil
	}
	return &t
}

// requireLocale resolves the payload's locale parameter for a
// locale-sensitive field, recording the appropriate errors when it is
// missing or invalid.
func (p *Parser) requireLocale(name string) (Locale, bool) {
	localeStr, ok := p.payload[constants.LocaleParameter]
	if !ok || strings.TrimSpace(localeStr) == "" {
		p.errs = append(p.errs, ValidationError{
			ParameterName: name,
			Code:          CodeMissingLocale,
			Message:       fmt.Sprintf("The parameter '%s' requires a 'locale' parameter to be passed with it.", name),
		})
		return Locale{}, false
	}

	loc, errs := ParseLocale(localeStr)
	if len(errs) > 0 {
		p.errs = append(p.errs, errs...)
		return Locale{}, false
	}
	return loc, true
}

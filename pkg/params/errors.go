// Package params extracts and validates typed values from untyped request
// payloads. Numeric and date fields are locale-sensitive: decimals and
// integers require a companion "locale" parameter, dates a "dateFormat"
// parameter. Errors accumulate per parse attempt and are surfaced once as a
// complete set.
package params

import (
	"fmt"
	"strings"
)

// Message codes carried on validation errors.
const (
	CodeMissingLocale     = "validation.msg.missing.locale.parameter"
	CodeMissingDateFormat = "validation.msg.missing.dateFormat.parameter"
	CodeInvalidDecimal    = "validation.msg.invalid.decimal.format"
	CodeInvalidInteger    = "validation.msg.invalid.integer.format"
	CodeInvalidBoolean    = "validation.msg.invalid.boolean.format"
	CodeInvalidDate       = "validation.msg.invalid.date.format"
	CodeInvalidLocale     = "validation.msg.invalid.locale.format"
)

// ValidationError describes a single problem with one request parameter.
type ValidationError struct {
	ParameterName string
	Code          string
	Message       string
	Value         string
	// Args carries secondary context such as the locale or date format
	// involved in the failed parse.
	Args []string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.ParameterName, e.Message)
}

// ValidationFailedError aggregates every validation error raised by one
// parse attempt. It is never raised with an empty list.
type ValidationFailedError struct {
	Errors []ValidationError
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return "validation errors exist: " + strings.Join(msgs, "; ")
}

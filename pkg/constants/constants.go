// Package constants provides shared constants for the loan-ledger application.
package constants

// DateTimeLayout is the format expected in snapshot files and is also the
// output date format.
const DateTimeLayout = "2006-01-02"

// Reserved payload parameter names.
const (
	// LocaleParameter accompanies every locale-sensitive numeric field.
	LocaleParameter = "locale"

	// DateFormatParameter accompanies every date field.
	DateFormatParameter = "dateFormat"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-ledger: logging and output
// options, feature toggles, and the loan snapshot the tool operates on.
type Configuration struct {
	Logging    LoggingConfig  `yaml:"logging,omitempty"`
	Output     OutputConfig   `yaml:"output,omitempty"`
	Features   FeaturesConfig `yaml:"features,omitempty"`
	Currencies []CurrencyConfig
	Loans      []LoanConfig
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// FeaturesConfig holds product feature toggles.
type FeaturesConfig struct {
	WaiverEnabled bool `yaml:"waiverEnabled,omitempty"`
}

// CurrencyConfig describes one currency in the registry.
type CurrencyConfig struct {
	Code          string
	Name          string
	DisplaySymbol string
	NameCode      string
	DecimalPlaces int32
}

// LoanConfig is the stored form of one loan snapshot. Amounts are strings
// so the exact decimal survives YAML decoding untouched.
type LoanConfig struct {
	ID                     int64
	ExternalID             string
	ClientID               int64
	CurrencyCode           string
	Principal              string
	TermFrequency          int
	TermFrequencyType      int
	RepayEvery             int
	RepaymentFrequencyType int
	NumberOfRepayments     int
	Status                 int
	TransactionStrategyID  int64
	SubmittedOnDate        string
	ApprovedOnDate         string
	DisbursedOnDate        string
	ClosedOnDate           string
	Periods                []PeriodConfig
	Transactions           []TransactionConfig
}

// PeriodConfig is a stored repayment schedule row. InterestWaived is blank
// when the store holds no value.
type PeriodConfig struct {
	Number         int
	DueDate        string
	PrincipalDue   string
	PrincipalPaid  string
	InterestDue    string
	InterestPaid   string
	InterestWaived string
	ChargesDue     string
	ChargesPaid    string
}

// TransactionConfig is a stored ledger transaction row.
type TransactionConfig struct {
	ID       int64
	Type     int
	Date     string
	Amount   string
	ContraID *int64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

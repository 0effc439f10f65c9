// Package domain defines the persisted input model for a forecast
// document: global settings plus the polymorphic per-account inputs.
package domain

import "github.com/shopspring/decimal"

// Span is a low/high pair used by the social security settings.
type Span struct {
	Low  decimal.Decimal `json:"low" yaml:"low"`
	High decimal.Decimal `json:"high" yaml:"high"`
}

// SsaSettings carries the social security taxation breakpoints. They are
// persisted and surfaced to the user but the social security account type
// is currently a stub, so nothing consumes them during simulation yet.
type SsaSettings struct {
	BreakPoints             Span `json:"breakPoints" yaml:"breakPoints"`
	TaxableIncomePercentage Span `json:"taxableIncomePercentage" yaml:"taxableIncomePercentage"`
}

// Settings holds the global assumptions a forecast runs under.
type Settings struct {
	// Age at which the user plans to retire
	AgeRetire int `json:"ageRetire" yaml:"ageRetire"`
	// Age the forecast runs out to
	AgeDie int `json:"ageDie" yaml:"ageDie"`
	// Calendar year the user was born
	YearBorn int `json:"yearBorn" yaml:"yearBorn"`
	// First calendar year of the simulation
	YearStart int `json:"yearStart" yaml:"yearStart"`
	// Assumed yearly inflation as a percent
	InflationBase decimal.Decimal `json:"inflationBase" yaml:"inflationBase"`
	// Income tax rate as a percent
	TaxIncome decimal.Decimal `json:"taxIncome" yaml:"taxIncome"`
	// Capital gains tax rate as a percent
	TaxCapitalGains decimal.Decimal `json:"taxCapitalGains" yaml:"taxCapitalGains"`
	// Percent of pre-retirement cost of living spent after retiring
	RetirementCostOfLiving decimal.Decimal `json:"retirementCostOfLiving" yaml:"retirementCostOfLiving"`
	// Social security taxation spans
	Ssa SsaSettings `json:"ssa" yaml:"ssa"`
}

// YearRetire returns the calendar year the user retires.
func (s *Settings) YearRetire() int {
	return s.YearBorn + s.AgeRetire
}

// YearDie returns the calendar year the forecast runs out to.
func (s *Settings) YearDie() int {
	return s.YearBorn + s.AgeDie
}

// YearEnd returns the last calendar year of the simulation.
func (s *Settings) YearEnd() int {
	return s.YearDie()
}

// IsRetired reports whether the user is retired in the given year.
func (s *Settings) IsRetired(year int) bool {
	return year >= s.YearRetire()
}

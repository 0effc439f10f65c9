package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type percentKind int

const (
	percentConstant percentKind = iota
	percentInflationBase
)

// PercentInput is a user-authored percentage: a literal number, a number
// written as a string, or the name of a suggested rate. The only suggestion
// today is "inflationBase", which tracks the settings' inflation assumption.
type PercentInput struct {
	kind  percentKind
	value decimal.Decimal
}

// ConstantPercent returns a literal percentage input.
func ConstantPercent(value decimal.Decimal) PercentInput {
	return PercentInput{kind: percentConstant, value: value}
}

// ConstantPercentFloat returns a literal percentage input from a float.
func ConstantPercentFloat(value float64) PercentInput {
	return ConstantPercent(decimal.NewFromFloat(value))
}

// InflationBasePercent returns an input that resolves to the settings'
// base inflation rate.
func InflationBasePercent() PercentInput {
	return PercentInput{kind: percentInflationBase}
}

// Value resolves the input to a percent (25 means 25%, not 0.25).
func (p PercentInput) Value(settings *Settings) decimal.Decimal {
	if p.kind == percentInflationBase {
		return settings.InflationBase
	}
	return p.value
}

// UnmarshalJSON accepts a number, a numeric string, or "inflationBase".
func (p *PercentInput) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = ConstantPercentFloat(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return p.fromString(s)
	}
	return fmt.Errorf("invalid percent input %s", string(data))
}

// MarshalJSON writes back the same shape that was parsed.
func (p PercentInput) MarshalJSON() ([]byte, error) {
	if p.kind == percentInflationBase {
		return json.Marshal("inflationBase")
	}
	f, _ := p.value.Float64()
	return json.Marshal(f)
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (p *PercentInput) UnmarshalYAML(node *yaml.Node) error {
	var f float64
	if err := node.Decode(&f); err == nil {
		*p = ConstantPercentFloat(f)
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		return p.fromString(s)
	}
	return fmt.Errorf("invalid percent input at line %d", node.Line)
}

// MarshalYAML writes back the same shape that was parsed.
func (p PercentInput) MarshalYAML() (interface{}, error) {
	if p.kind == percentInflationBase {
		return "inflationBase", nil
	}
	f, _ := p.value.Float64()
	return f, nil
}

func (p *PercentInput) fromString(s string) error {
	if s == "inflationBase" {
		*p = InflationBasePercent()
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid percent input %q: %w", s, err)
	}
	*p = ConstantPercent(v)
	return nil
}

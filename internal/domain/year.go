package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YearRange is an inclusive span of calendar years.
type YearRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Contains reports whether year falls within the range, ends included.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Dates holds an account's resolved activity windows: when money flows in
// and when it flows out. Either may be absent for a given account type.
type Dates struct {
	YearIn  *YearRange `json:"yearIn" yaml:"yearIn"`
	YearOut *YearRange `json:"yearOut" yaml:"yearOut"`
}

// YearSuggestion names a year that is derived from settings or from a
// linked account rather than written out literally.
type YearSuggestion string

const (
	SuggestYearStart  YearSuggestion = "yearStart"
	SuggestYearRetire YearSuggestion = "yearRetire"
	SuggestYearDie    YearSuggestion = "yearDie"
	SuggestYearEnd    YearSuggestion = "yearEnd"
	SuggestIncomeLink YearSuggestion = "incomeLink"
)

// YearEvalType tells an incomeLink suggestion which end of which window of
// the linked account to resolve against.
type YearEvalType int

const (
	EvalStartIn YearEvalType = iota
	EvalEndIn
	EvalStartOut
	EvalEndOut
)

func (s YearSuggestion) resolve(settings *Settings, linked *Dates, eval YearEvalType) (int, error) {
	switch s {
	case SuggestYearStart:
		return settings.YearStart, nil
	case SuggestYearRetire:
		return settings.YearRetire(), nil
	case SuggestYearDie:
		return settings.YearDie(), nil
	case SuggestYearEnd:
		return settings.YearEnd(), nil
	case SuggestIncomeLink:
		if linked == nil {
			return 0, fmt.Errorf("income link year suggested but no linked account dates available")
		}
		switch eval {
		case EvalStartIn:
			if linked.YearIn == nil {
				return 0, fmt.Errorf("linked account has no in range")
			}
			return linked.YearIn.Start, nil
		case EvalEndIn:
			if linked.YearIn == nil {
				return 0, fmt.Errorf("linked account has no in range")
			}
			return linked.YearIn.End, nil
		case EvalStartOut:
			if linked.YearOut == nil {
				return 0, fmt.Errorf("linked account has no out range")
			}
			return linked.YearOut.Start, nil
		case EvalEndOut:
			if linked.YearOut == nil {
				return 0, fmt.Errorf("linked account has no out range")
			}
			return linked.YearOut.End, nil
		}
	}
	return 0, fmt.Errorf("unknown year suggestion %q", string(s))
}

type yearInputKind int

const (
	yearConstant yearInputKind = iota
	yearSuggested
	yearCalculated
)

// YearInput is a user-authored year: a literal calendar year, a named
// suggestion, or a suggestion adjusted by a delta. It persists as a bare
// number, a bare string, or a {base, delta} mapping respectively.
type YearInput struct {
	kind  yearInputKind
	year  int
	base  YearSuggestion
	delta int
}

// ConstantYear returns a literal year input.
func ConstantYear(year int) YearInput {
	return YearInput{kind: yearConstant, year: year}
}

// SuggestedYear returns a named-suggestion year input.
func SuggestedYear(base YearSuggestion) YearInput {
	return YearInput{kind: yearSuggested, base: base}
}

// CalculatedYear returns a suggestion offset by delta years.
func CalculatedYear(base YearSuggestion, delta int) YearInput {
	return YearInput{kind: yearCalculated, base: base, delta: delta}
}

// Value resolves the input to a calendar year. Linked dates are only
// consulted for incomeLink suggestions.
func (y YearInput) Value(settings *Settings, linked *Dates, eval YearEvalType) (int, error) {
	switch y.kind {
	case yearConstant:
		return y.year, nil
	case yearSuggested:
		return y.base.resolve(settings, linked, eval)
	case yearCalculated:
		base, err := y.base.resolve(settings, linked, eval)
		if err != nil {
			return 0, err
		}
		return base + y.delta, nil
	}
	return 0, fmt.Errorf("year input is not initialized")
}

type yearCalculate struct {
	Base  YearSuggestion `json:"base" yaml:"base"`
	Delta int            `json:"delta" yaml:"delta"`
}

// UnmarshalJSON accepts a number, a suggestion string, or a base/delta pair.
func (y *YearInput) UnmarshalJSON(data []byte) error {
	var year int
	if err := json.Unmarshal(data, &year); err == nil {
		*y = ConstantYear(year)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = SuggestedYear(YearSuggestion(s))
		return nil
	}
	var calc yearCalculate
	if err := json.Unmarshal(data, &calc); err == nil && calc.Base != "" {
		*y = CalculatedYear(calc.Base, calc.Delta)
		return nil
	}
	return fmt.Errorf("invalid year input %s", string(data))
}

// MarshalJSON writes back the same shape that was parsed.
func (y YearInput) MarshalJSON() ([]byte, error) {
	switch y.kind {
	case yearConstant:
		return json.Marshal(y.year)
	case yearSuggested:
		return json.Marshal(string(y.base))
	default:
		return json.Marshal(yearCalculate{Base: y.base, Delta: y.delta})
	}
}

// UnmarshalYAML accepts the same three shapes as UnmarshalJSON.
func (y *YearInput) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var year int
		if err := node.Decode(&year); err == nil {
			*y = ConstantYear(year)
			return nil
		}
		var s string
		if err := node.Decode(&s); err == nil {
			*y = SuggestedYear(YearSuggestion(s))
			return nil
		}
	case yaml.MappingNode:
		var calc yearCalculate
		if err := node.Decode(&calc); err == nil && calc.Base != "" {
			*y = CalculatedYear(calc.Base, calc.Delta)
			return nil
		}
	}
	return fmt.Errorf("invalid year input at line %d", node.Line)
}

// MarshalYAML writes back the same shape that was parsed.
func (y YearInput) MarshalYAML() (interface{}, error) {
	switch y.kind {
	case yearConstant:
		return y.year, nil
	case yearSuggested:
		return string(y.base), nil
	default:
		return yearCalculate{Base: y.base, Delta: y.delta}, nil
	}
}

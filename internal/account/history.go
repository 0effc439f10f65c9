package account

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// History is a persisted year-to-amount table. Years are calendar years,
// so decoding rejects keys that are not non-negative integers instead of
// letting a typo silently seed the simulation.
type History map[int]decimal.Decimal

func (h *History) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return h.fromStringKeys(raw)
}

func (h *History) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]decimal.Decimal
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return h.fromStringKeys(raw)
}

func (h *History) fromStringKeys(raw map[string]decimal.Decimal) error {
	table := make(History, len(raw))
	for key, value := range raw {
		year, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("table key %q is not a year: %w", key, err)
		}
		if year < 0 {
			return fmt.Errorf("table key %d is not a valid year", year)
		}
		table[year] = value
	}
	*h = table
	return nil
}

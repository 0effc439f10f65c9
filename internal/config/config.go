// Package config loads, validates and saves forecast documents.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fincast/fincast/internal/account"
	"github.com/fincast/fincast/internal/domain"
)

// InputParser handles parsing of forecast document files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a document from a YAML or JSON file, chosen by
// extension, and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*account.UserData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc account.UserData
	if isJSON(filename) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.Validate(&doc); err != nil {
		return nil, fmt.Errorf("document validation failed: %w", err)
	}
	return &doc, nil
}

// SaveToFile writes the document back out as YAML or JSON, chosen by
// extension.
func (ip *InputParser) SaveToFile(doc *account.UserData, filename string) error {
	var data []byte
	var err error
	if isJSON(filename) {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

func isJSON(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// Validate checks the document for problems that would make a simulation
// run meaningless or fail halfway through.
func (ip *InputParser) Validate(doc *account.UserData) error {
	if err := ip.validateSettings(&doc.Settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}
	if len(doc.Accounts) == 0 {
		return fmt.Errorf("document has no accounts")
	}
	for id, w := range doc.Accounts {
		if w == nil || w.Account == nil {
			return fmt.Errorf("account %s is empty", id)
		}
		if err := ip.validateAccount(doc, id, w.Account); err != nil {
			return fmt.Errorf("account %s (%s) validation failed: %w", id, w.Account.Name(), err)
		}
	}
	return nil
}

func (ip *InputParser) validateSettings(s *domain.Settings) error {
	if s.YearBorn <= 0 {
		return fmt.Errorf("yearBorn is required")
	}
	if s.AgeDie <= 0 {
		return fmt.Errorf("ageDie must be positive")
	}
	if s.AgeRetire <= 0 || s.AgeRetire > s.AgeDie {
		return fmt.Errorf("ageRetire must be positive and at most ageDie")
	}
	if s.YearStart >= s.YearEnd() {
		return fmt.Errorf("yearStart %d is not before the final year %d", s.YearStart, s.YearEnd())
	}
	if s.YearStart > s.YearRetire() {
		return fmt.Errorf("yearStart %d is after the retirement year %d", s.YearStart, s.YearRetire())
	}
	if s.TaxIncome.IsNegative() || s.TaxCapitalGains.IsNegative() {
		return fmt.Errorf("tax rates cannot be negative")
	}
	if s.RetirementCostOfLiving.IsNegative() {
		return fmt.Errorf("retirementCostOfLiving cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAccount(doc *account.UserData, id string, acct account.Account) error {
	if acct.Name() == "" {
		return fmt.Errorf("name is required")
	}
	if linkID := acct.LinkID(); linkID != "" {
		linked, ok := doc.Account(linkID)
		if !ok {
			return fmt.Errorf("linked account %s does not exist", linkID)
		}
		if linked.Type() != account.TypeIncome {
			return fmt.Errorf("linked account %s is a %s account, expected income", linkID, linked.Type())
		}
	}
	if ret, ok := acct.(*account.Retirement); ok {
		if ret.Matching != nil && ret.IncomeLink == "" {
			return fmt.Errorf("employer matching requires an income link")
		}
	}
	if col, ok := acct.(*account.College); ok {
		if col.TaxStatus != domain.ContributeTaxedEarningsUntaxedWhenUsed {
			return fmt.Errorf("tax status %q is not implemented for college accounts", string(col.TaxStatus))
		}
	}
	return nil
}

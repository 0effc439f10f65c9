package account

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Wrapper is the persisted form of an account: the concrete account's
// fields plus a "type" tag that selects which kind to decode into.
type Wrapper struct {
	Account Account
}

func newAccount(t Type) (Account, error) {
	switch t {
	case TypeIncome:
		return &Income{}, nil
	case TypeSsa:
		return &Ssa{}, nil
	case TypeExpense:
		return &Expense{}, nil
	case TypeHsa:
		return &Hsa{}, nil
	case TypeMortgage:
		return &Mortgage{}, nil
	case TypeLoan:
		return &Loan{}, nil
	case TypeCollege:
		return &College{}, nil
	case TypeRetirement:
		return &Retirement{}, nil
	case TypeSavings:
		return &Savings{}, nil
	}
	return nil, fmt.Errorf("unknown account type %q", string(t))
}

type typeTag struct {
	Type Type `json:"type" yaml:"type"`
}

// UnmarshalJSON decodes the tagged union into the concrete account type.
func (w *Wrapper) UnmarshalJSON(data []byte) error {
	var tag typeTag
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("account is missing a type tag: %w", err)
	}
	acct, err := newAccount(tag.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, acct); err != nil {
		return fmt.Errorf("failed to decode %s account: %w", tag.Type, err)
	}
	w.Account = acct
	return nil
}

// MarshalJSON writes the concrete account's fields with the type tag
// spliced back in.
func (w Wrapper) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(w.Account)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(w.Account.Type())
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

// UnmarshalYAML decodes the tagged union into the concrete account type.
func (w *Wrapper) UnmarshalYAML(node *yaml.Node) error {
	var tag typeTag
	if err := node.Decode(&tag); err != nil {
		return fmt.Errorf("account is missing a type tag: %w", err)
	}
	acct, err := newAccount(tag.Type)
	if err != nil {
		return err
	}
	if err := node.Decode(acct); err != nil {
		return fmt.Errorf("failed to decode %s account: %w", tag.Type, err)
	}
	w.Account = acct
	return nil
}

// MarshalYAML writes the concrete account's fields with the type tag
// spliced back in.
func (w Wrapper) MarshalYAML() (interface{}, error) {
	raw, err := yaml.Marshal(w.Account)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = string(w.Account.Type())
	return fields, nil
}

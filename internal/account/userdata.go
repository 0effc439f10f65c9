package account

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fincast/fincast/internal/domain"
)

// UserData is a complete forecast document: global settings plus the
// accounts keyed by their IDs.
type UserData struct {
	Settings domain.Settings     `json:"settings" yaml:"settings"`
	Accounts map[string]*Wrapper `json:"accounts" yaml:"accounts"`
}

// Account returns the concrete account stored under id.
func (u *UserData) Account(id string) (Account, bool) {
	w, ok := u.Accounts[id]
	if !ok || w.Account == nil {
		return nil, false
	}
	return w.Account, true
}

// Order returns every account ID in simulation order: grouped by type in
// the fixed type order, IDs sorted within a type for determinism.
func (u *UserData) Order() []string {
	order := make([]string, 0, len(u.Accounts))
	for _, t := range TypeOrder() {
		var ids []string
		for id, w := range u.Accounts {
			if w.Account != nil && w.Account.Type() == t {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		order = append(order, ids...)
	}
	return order
}

// WriteTables dumps every account's result tables as CSV files in dir,
// one file per account named after its ID.
func (u *UserData) WriteTables(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	for _, id := range u.Order() {
		acct, _ := u.Account(id)
		if err := acct.Write(filepath.Join(dir, id+".csv")); err != nil {
			return fmt.Errorf("failed to write tables for account %s: %w", id, err)
		}
	}
	return nil
}

package ledger

import (
	"errors"
	"time"

	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

// ErrNotFound is returned when a mutation targets a record that neither
// exists as an actual record nor resolves to a synthesized instance.
var ErrNotFound = errors.New("record not found")

// Ledger holds the five top-level collections. It is passed by value: every
// mutation returns a new Ledger and leaves the receiver untouched, so a
// caller always holds a consistent snapshot.
type Ledger struct {
	Accounts          []model.Account          `json:"accounts"`
	Expenses          []model.Expense          `json:"expenses"`
	Income            []model.Income           `json:"income"`
	RecurringExpenses []model.RecurringExpense `json:"recurringExpenses"`
	RecurringIncome   []model.RecurringIncome  `json:"recurringIncome"`
}

// Account looks up an account by ID. Dangling references elsewhere simply
// miss here; nothing prevents creating them.
func (l Ledger) Account(id string) (model.Account, bool) {
	for _, a := range l.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// Expense looks up an actual expense record by ID.
func (l Ledger) Expense(id string) (model.Expense, bool) {
	for _, e := range l.Expenses {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}

// IncomeRecord looks up an actual income record by ID.
func (l Ledger) IncomeRecord(id string) (model.Income, bool) {
	for _, in := range l.Income {
		if in.ID == id {
			return in, true
		}
	}
	return model.Income{}, false
}

// RecurringExpense looks up an expense rule by ID.
func (l Ledger) RecurringExpense(id string) (model.RecurringExpense, bool) {
	for _, r := range l.RecurringExpenses {
		if r.ID == id {
			return r, true
		}
	}
	return model.RecurringExpense{}, false
}

// RecurringIncomeRule looks up an income rule by ID.
func (l Ledger) RecurringIncomeRule(id string) (model.RecurringIncome, bool) {
	for _, r := range l.RecurringIncome {
		if r.ID == id {
			return r, true
		}
	}
	return model.RecurringIncome{}, false
}

// MergedExpenses expands active expense rules to the horizon and merges the
// synthesized instances with the actual records. Recomputed on every call;
// instances never outlive the result.
func (l Ledger) MergedExpenses(horizon time.Time) []recur.ExpenseEntry {
	synth := recur.ExpandExpenses(l.RecurringExpenses, l.Expenses, horizon)
	return recur.MergeExpenses(l.Expenses, synth)
}

// MergedIncome is the income counterpart of MergedExpenses.
func (l Ledger) MergedIncome(horizon time.Time) []recur.IncomeEntry {
	synth := recur.ExpandIncome(l.RecurringIncome, l.Income, horizon)
	return recur.MergeIncome(l.Income, synth)
}

package store

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/cashplan-dev/cashplan/internal/ledger"
	"github.com/cashplan-dev/cashplan/internal/model"
)

// Load assembles a Ledger from the five stored collections. A missing or
// malformed collection falls back to its built-in seed data; both cases are
// logged and neither surfaces as an error.
func Load(kv KV, userID string, log *logrus.Logger) ledger.Ledger {
	return ledger.Ledger{
		Accounts:          loadCollection(kv, userID, KeyAccounts, SeedAccounts(), log),
		Expenses:          loadCollection(kv, userID, KeyExpenses, SeedExpenses(), log),
		Income:            loadCollection(kv, userID, KeyIncome, SeedIncome(), log),
		RecurringExpenses: loadCollection(kv, userID, KeyRecurringExpenses, SeedRecurringExpenses(), log),
		RecurringIncome:   loadCollection(kv, userID, KeyRecurringIncome, SeedRecurringIncome(), log),
	}
}

// Save writes all five collections back. Best effort: a failed write is
// already logged by the KV, so Save only reports whether everything stuck.
func Save(kv KV, userID string, l ledger.Ledger) bool {
	ok := saveCollection(kv, userID, KeyAccounts, l.Accounts)
	ok = saveCollection(kv, userID, KeyExpenses, l.Expenses) && ok
	ok = saveCollection(kv, userID, KeyIncome, l.Income) && ok
	ok = saveCollection(kv, userID, KeyRecurringExpenses, l.RecurringExpenses) && ok
	ok = saveCollection(kv, userID, KeyRecurringIncome, l.RecurringIncome) && ok
	return ok
}

// Reset deletes all five collections for a user.
func Reset(kv KV, userID string) bool {
	ok := true
	for _, key := range []string{KeyAccounts, KeyExpenses, KeyIncome, KeyRecurringExpenses, KeyRecurringIncome} {
		ok = kv.Delete(userID, key) && ok
	}
	return ok
}

func loadCollection[T any](kv KV, userID, key string, seed []T, log *logrus.Logger) []T {
	raw, ok := kv.Get(userID, key)
	if !ok {
		log.WithField("key", key).Info("no stored data, using seed defaults")
		return seed
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.WithError(err).WithField("key", key).Warn("corrupt stored data, using seed defaults")
		return seed
	}
	return out
}

func saveCollection[T any](kv KV, userID, key string, records []T) bool {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return false
	}
	return kv.Set(userID, key, string(data))
}

// Seed defaults below give a first-time user something to look at and keep
// the app usable when the store is unreachable.

// SeedAccounts is the default accounts collection.
func SeedAccounts() []model.Account {
	return []model.Account{
		{ID: "seed-checking", Name: "Checking", Balance: dec("2500.00"), AsOf: seedDate()},
		{ID: "seed-savings", Name: "Savings", Balance: dec("10000.00"), AsOf: seedDate()},
	}
}

// SeedExpenses is the default expenses collection.
func SeedExpenses() []model.Expense {
	return []model.Expense{
		{ID: "seed-electric", Name: "Electric bill", Amount: dec("140.00"), DueOn: seedDate().AddDate(0, 0, 12), Payments: []model.Payment{}},
	}
}

// SeedIncome is the default income collection.
func SeedIncome() []model.Income {
	return []model.Income{}
}

// SeedRecurringExpenses is the default recurring-expense rules collection.
func SeedRecurringExpenses() []model.RecurringExpense {
	return []model.RecurringExpense{
		{ID: "seed-rent", Name: "Rent", Amount: dec("1200.00"), Frequency: model.FrequencyMonthly, StartDate: seedDate(), Active: true},
	}
}

// SeedRecurringIncome is the default recurring-income rules collection.
func SeedRecurringIncome() []model.RecurringIncome {
	return []model.RecurringIncome{
		{ID: "seed-salary", Name: "Salary", Amount: dec("3200.00"), Frequency: model.FrequencyBiweekly, StartDate: seedDate(), AccountID: "seed-checking", Active: true},
	}
}

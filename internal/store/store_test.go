package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashplan-dev/cashplan/internal/ledger"
	"github.com/cashplan-dev/cashplan/internal/model"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFileKVRoundTrip(t *testing.T) {
	kv := NewFileKV(t.TempDir(), quietLog())

	_, ok := kv.Get("u1", KeyAccounts)
	assert.False(t, ok, "no data yet")

	require.True(t, kv.Set("u1", KeyAccounts, `[{"id":"a"}]`))
	got, ok := kv.Get("u1", KeyAccounts)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, got)

	require.True(t, kv.Delete("u1", KeyAccounts))
	_, ok = kv.Get("u1", KeyAccounts)
	assert.False(t, ok)

	// Deleting again is still fine.
	assert.True(t, kv.Delete("u1", KeyAccounts))
}

func TestFileKVScopedPerUser(t *testing.T) {
	kv := NewFileKV(t.TempDir(), quietLog())
	kv.Set("alice", KeyExpenses, "[1]")
	kv.Set("bob", KeyExpenses, "[2]")

	got, ok := kv.Get("alice", KeyExpenses)
	require.True(t, ok)
	assert.Equal(t, "[1]", got)
}

func TestLoad_NoDataUsesSeeds(t *testing.T) {
	kv := NewFileKV(t.TempDir(), quietLog())

	l := Load(kv, "u1", quietLog())
	assert.Equal(t, SeedAccounts(), l.Accounts)
	assert.Equal(t, SeedRecurringExpenses(), l.RecurringExpenses)
	assert.Equal(t, SeedRecurringIncome(), l.RecurringIncome)
}

func TestLoad_CorruptCollectionFallsBack(t *testing.T) {
	kv := NewFileKV(t.TempDir(), quietLog())
	kv.Set("u1", KeyAccounts, "{not json")
	kv.Set("u1", KeyExpenses, `[]`)

	l := Load(kv, "u1", quietLog())
	assert.Equal(t, SeedAccounts(), l.Accounts, "corrupt collection replaced by seeds")
	assert.Empty(t, l.Expenses, "valid empty collection stays empty")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := NewFileKV(t.TempDir(), quietLog())
	due := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	in := ledger.Ledger{
		Accounts: []model.Account{{ID: "a1", Name: "Checking", Balance: decimal.RequireFromString("1234.56"), AsOf: due}},
		Expenses: []model.Expense{{
			ID:     "e1",
			Name:   "Water",
			Amount: decimal.RequireFromString("60.25"),
			DueOn:  due,
			Payments: []model.Payment{
				{ID: "p1", Amount: decimal.RequireFromString("20"), AccountID: "a1", PaidOn: due},
			},
		}},
		Income: []model.Income{{ID: "i1", Name: "Salary", Amount: decimal.RequireFromString("3200"), ExpectedOn: due, AccountID: "a1"}},
		RecurringExpenses: []model.RecurringExpense{{
			ID: "r1", Name: "Rent", Amount: decimal.RequireFromString("1200"),
			Frequency: model.FrequencyMonthly, StartDate: due, Active: true,
		}},
		RecurringIncome: []model.RecurringIncome{},
	}

	require.True(t, Save(kv, "u1", in))
	got := Load(kv, "u1", quietLog())

	assert.Equal(t, in.Accounts, got.Accounts)
	assert.Equal(t, in.Expenses, got.Expenses)
	assert.Equal(t, in.Income, got.Income)
	assert.Equal(t, in.RecurringExpenses, got.RecurringExpenses)
	assert.Empty(t, got.RecurringIncome)
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	kv := NewFileKV(dir, quietLog())
	require.True(t, Save(kv, "u1", ledger.Ledger{}))

	require.True(t, Reset(kv, "u1"))
	entries, err := os.ReadDir(filepath.Join(dir, "u1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

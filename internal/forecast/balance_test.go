package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCurrentBalance(t *testing.T) {
	accounts := []model.Account{
		{ID: "checking", Balance: dec("1000")},
		{ID: "savings", Balance: dec("5000")},
	}
	expenses := []recur.ExpenseEntry{
		{Expense: model.Expense{
			ID:     "e1",
			Amount: dec("300"),
			Payments: []model.Payment{
				{Amount: dec("100"), AccountID: "checking"},
				{Amount: dec("50"), AccountID: "savings"},
			},
		}, Kind: recur.KindActual},
		{Expense: model.Expense{
			ID:       "e2",
			Amount:   dec("40"),
			Payments: []model.Payment{{Amount: dec("40"), AccountID: "checking"}},
		}, Kind: recur.KindActual},
	}

	got := CurrentBalance(accounts, expenses)
	assert.True(t, got.ByAccount["checking"].Equal(dec("860")))
	assert.True(t, got.ByAccount["savings"].Equal(dec("4950")))
	assert.True(t, got.Total.Equal(dec("5810")))
}

// Total equals sum of snapshot balances minus every recorded payment.
func TestCurrentBalance_Conservation(t *testing.T) {
	accounts := []model.Account{
		{ID: "a", Balance: dec("120.50")},
		{ID: "b", Balance: dec("79.50")},
	}
	expenses := []recur.ExpenseEntry{
		{Expense: model.Expense{Payments: []model.Payment{
			{Amount: dec("10.25"), AccountID: "a"},
			{Amount: dec("5"), AccountID: "b"},
		}}},
		{Expense: model.Expense{Payments: []model.Payment{
			{Amount: dec("14.75"), AccountID: "a"},
		}}},
	}

	got := CurrentBalance(accounts, expenses)
	want := dec("200").Sub(dec("30")) // 120.50+79.50 - (10.25+5+14.75)
	assert.True(t, got.Total.Equal(want), "got %s want %s", got.Total, want)
}

// A payment against a deleted account affects nothing; the dangling
// reference is permitted.
func TestCurrentBalance_DanglingAccount(t *testing.T) {
	accounts := []model.Account{{ID: "a", Balance: dec("100")}}
	expenses := []recur.ExpenseEntry{
		{Expense: model.Expense{Payments: []model.Payment{{Amount: dec("25"), AccountID: "gone"}}}},
	}

	got := CurrentBalance(accounts, expenses)
	assert.True(t, got.ByAccount["a"].Equal(dec("100")))
	assert.True(t, got.Total.Equal(dec("100")))
}

func TestCurrentBalance_SynthesizedNeverAffects(t *testing.T) {
	accounts := []model.Account{{ID: "a", Balance: dec("100")}}
	synth := recur.ExpandExpenses([]model.RecurringExpense{{
		ID:        "r",
		Amount:    dec("80"),
		Frequency: model.FrequencyWeekly,
		StartDate: date(2026, time.January, 1),
		Active:    true,
	}}, nil, date(2026, time.March, 1))
	require.NotEmpty(t, synth)

	got := CurrentBalance(accounts, synth)
	assert.True(t, got.Total.Equal(dec("100")))
}

func TestCurrentBalance_NoAccounts(t *testing.T) {
	got := CurrentBalance(nil, nil)
	assert.True(t, got.Total.IsZero())
	assert.Empty(t, got.ByAccount)
}

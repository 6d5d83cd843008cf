package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strp(s string) *string            { return &s }
func decp(s string) *decimal.Decimal   { d := dec(s); return &d }

func testLedger() Ledger {
	return Ledger{
		Accounts: []model.Account{{ID: "checking", Name: "Checking", Balance: dec("1000"), AsOf: date(2026, time.January, 1)}},
		RecurringExpenses: []model.RecurringExpense{{
			ID:        "rent",
			Name:      "Rent",
			Amount:    dec("80"),
			Frequency: model.FrequencyMonthly,
			StartDate: date(2026, time.January, 15),
			Active:    true,
		}},
	}
}

func TestMergedExpenses(t *testing.T) {
	l := testLedger()
	merged := l.MergedExpenses(date(2026, time.April, 1))
	require.Len(t, merged, 3)
	for _, e := range merged {
		assert.Equal(t, recur.KindSynthesized, e.Kind)
	}
}

func TestPayExpense_PromotesInstance(t *testing.T) {
	l := testLedger()
	target := id.FormatInstanceID("rent", date(2026, time.February, 15))

	got, err := l.PayExpense(target, model.Payment{ID: "p1", Amount: dec("80"), AccountID: "checking", PaidOn: date(2026, time.February, 14)})
	require.NoError(t, err)

	// Original snapshot untouched.
	assert.Empty(t, l.Expenses)

	require.Len(t, got.Expenses, 1)
	promoted := got.Expenses[0]
	assert.NotEqual(t, target, promoted.ID, "promotion mints a fresh ID")
	assert.Equal(t, "Rent", promoted.Name)
	assert.True(t, promoted.Amount.Equal(dec("80")))
	assert.Equal(t, date(2026, time.February, 15), promoted.DueOn)
	assert.Equal(t, "rent", promoted.RecurringID)
	require.Len(t, promoted.Payments, 1)
	assert.True(t, promoted.Paid())

	// The paid occurrence no longer materializes; Jan and Mar still do.
	merged := got.MergedExpenses(date(2026, time.April, 1))
	require.Len(t, merged, 3)
	var synthDates []string
	for _, e := range merged {
		if e.Kind == recur.KindSynthesized {
			synthDates = append(synthDates, model.DateKey(e.DueOn))
		}
	}
	assert.Equal(t, []string{"2026-01-15", "2026-03-15"}, synthDates)
}

func TestPayExpense_ActualInPlace(t *testing.T) {
	l := testLedger().AddExpense(model.Expense{ID: "e1", Name: "Vet", Amount: dec("200"), DueOn: date(2026, time.March, 1)})

	got, err := l.PayExpense("e1", model.Payment{ID: "p1", Amount: dec("50"), AccountID: "checking"})
	require.NoError(t, err)

	e, ok := got.Expense("e1")
	require.True(t, ok)
	assert.True(t, e.TotalPaid().Equal(dec("50")))

	// Copy-on-write: the pre-mutation snapshot still shows no payments.
	orig, _ := l.Expense("e1")
	assert.Empty(t, orig.Payments)
}

// Paying twice is fine, even past the full amount.
func TestPayExpense_OverpaymentPermitted(t *testing.T) {
	l := testLedger().AddExpense(model.Expense{ID: "e1", Amount: dec("100")})

	l, err := l.PayExpense("e1", model.Payment{ID: "p1", Amount: dec("80"), AccountID: "checking"})
	require.NoError(t, err)
	l, err = l.PayExpense("e1", model.Payment{ID: "p2", Amount: dec("80"), AccountID: "checking"})
	require.NoError(t, err)

	e, _ := l.Expense("e1")
	assert.True(t, e.TotalPaid().Equal(dec("160")))
	assert.True(t, e.Remaining().Equal(dec("-60")))
}

func TestUpdateExpense_PromotionPreservesValue(t *testing.T) {
	l := testLedger()
	target := id.FormatInstanceID("rent", date(2026, time.March, 15))

	got, err := l.UpdateExpense(target, ExpenseChange{Amount: decp("95")}, false)
	require.NoError(t, err)

	require.Len(t, got.Expenses, 1)
	promoted := got.Expenses[0]
	assert.True(t, promoted.Amount.Equal(dec("95")), "targeted field changed")
	assert.Equal(t, "Rent", promoted.Name, "untouched fields copied from the instance")
	assert.Equal(t, date(2026, time.March, 15), promoted.DueOn)
	assert.Equal(t, "rent", promoted.RecurringID)

	// Rule untouched without apply-to-future.
	rule, _ := got.RecurringExpense("rent")
	assert.True(t, rule.Amount.Equal(dec("80")))
}

func TestUpdateExpense_ApplyToFuture(t *testing.T) {
	l := testLedger()
	target := id.FormatInstanceID("rent", date(2026, time.February, 15))

	got, err := l.UpdateExpense(target, ExpenseChange{Amount: decp("95"), Name: strp("Rent (new lease)")}, true)
	require.NoError(t, err)

	rule, _ := got.RecurringExpense("rent")
	assert.True(t, rule.Amount.Equal(dec("95")))
	assert.Equal(t, "Rent (new lease)", rule.Name)

	// Future occurrences pick up the new amount; the promoted February
	// record keeps its own copy.
	merged := got.MergedExpenses(date(2026, time.April, 1))
	for _, e := range merged {
		if e.Kind == recur.KindSynthesized {
			assert.True(t, e.Amount.Equal(dec("95")), "instance %s", e.ID)
		}
	}
}

func TestUpdateExpense_ActualInPlace(t *testing.T) {
	l := testLedger().AddExpense(model.Expense{ID: "e1", Name: "Vet", Amount: dec("200")})

	got, err := l.UpdateExpense("e1", ExpenseChange{Name: strp("Vet visit")}, false)
	require.NoError(t, err)

	e, _ := got.Expense("e1")
	assert.Equal(t, "Vet visit", e.Name)
	assert.True(t, e.Amount.Equal(dec("200")))
	require.Len(t, got.Expenses, 1, "no promotion for an actual record")
}

func TestActualizeExpense(t *testing.T) {
	l := testLedger()
	l.RecurringExpenses[0].Projected = true
	target := id.FormatInstanceID("rent", date(2026, time.January, 15))

	got, err := l.ActualizeExpense(target)
	require.NoError(t, err)

	require.Len(t, got.Expenses, 1)
	assert.False(t, got.Expenses[0].Projected)
	assert.Equal(t, "rent", got.Expenses[0].RecurringID)
}

// Deleting an actualized occurrence brings its synthesized instance back on
// the next expansion pass.
func TestDeleteExpense_UnActualizes(t *testing.T) {
	l := testLedger()
	target := id.FormatInstanceID("rent", date(2026, time.February, 15))
	l, err := l.PayExpense(target, model.Payment{ID: "p1", Amount: dec("80"), AccountID: "checking"})
	require.NoError(t, err)

	merged := l.MergedExpenses(date(2026, time.March, 1))
	require.Len(t, merged, 2) // actual Feb + synthesized Jan

	got, err := l.DeleteExpense(l.Expenses[0].ID)
	require.NoError(t, err)

	merged = got.MergedExpenses(date(2026, time.March, 1))
	var febSynth bool
	for _, e := range merged {
		if e.Kind == recur.KindSynthesized && model.SameDate(e.DueOn, date(2026, time.February, 15)) {
			febSynth = true
		}
	}
	assert.True(t, febSynth, "instance regenerated after the actual record is gone")
}

func TestMutationsOnMissingTargets(t *testing.T) {
	l := testLedger()

	_, err := l.PayExpense("nope", model.Payment{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.UpdateExpense(id.FormatInstanceID("ghost-rule", date(2026, time.January, 1)), ExpenseChange{}, false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.DeleteExpense("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.DeleteAccount("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateIncome_PromotesInstance(t *testing.T) {
	l := Ledger{
		RecurringIncome: []model.RecurringIncome{{
			ID:        "salary",
			Name:      "Salary",
			Amount:    dec("2500"),
			Frequency: model.FrequencyBiweekly,
			StartDate: date(2026, time.January, 2),
			AccountID: "checking",
			Active:    true,
		}},
	}
	target := id.FormatInstanceID("salary", date(2026, time.January, 16))

	got, err := l.UpdateIncome(target, IncomeChange{Amount: decp("2650")}, false)
	require.NoError(t, err)

	require.Len(t, got.Income, 1)
	promoted := got.Income[0]
	assert.True(t, promoted.Amount.Equal(dec("2650")))
	assert.Equal(t, "Salary", promoted.Name)
	assert.Equal(t, "checking", promoted.AccountID)
	assert.Equal(t, "salary", promoted.RecurringID)

	// The edited occurrence is covered; its neighbors still materialize.
	merged := got.MergedIncome(date(2026, time.January, 31))
	require.Len(t, merged, 3)
}

func TestSetRecurringExpenseActive(t *testing.T) {
	l := testLedger()

	got, err := l.SetRecurringExpenseActive("rent", false)
	require.NoError(t, err)
	assert.Empty(t, got.MergedExpenses(date(2026, time.June, 1)), "paused rule stops materializing")

	got, err = got.SetRecurringExpenseActive("rent", true)
	require.NoError(t, err)
	assert.NotEmpty(t, got.MergedExpenses(date(2026, time.June, 1)))
}

func TestAccountCRUD(t *testing.T) {
	l := testLedger()

	l = l.AddAccount(model.Account{ID: "savings", Name: "Savings", Balance: dec("5000")})
	a, ok := l.Account("savings")
	require.True(t, ok)
	assert.Equal(t, "Savings", a.Name)

	a.Balance = dec("5500")
	l, err := l.UpdateAccount(a)
	require.NoError(t, err)
	a, _ = l.Account("savings")
	assert.True(t, a.Balance.Equal(dec("5500")))

	l, err = l.DeleteAccount("savings")
	require.NoError(t, err)
	_, ok = l.Account("savings")
	assert.False(t, ok)
}

func TestDeleteRecurringExpense_KeepsActualized(t *testing.T) {
	l := testLedger()
	target := id.FormatInstanceID("rent", date(2026, time.January, 15))
	l, err := l.ActualizeExpense(target)
	require.NoError(t, err)

	got, err := l.DeleteRecurringExpense("rent")
	require.NoError(t, err)
	require.Len(t, got.Expenses, 1, "actualized record survives rule deletion")
	assert.Len(t, got.MergedExpenses(date(2026, time.June, 1)), 1, "no further instances")
}

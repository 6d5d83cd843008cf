package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExpenseTotalPaid(t *testing.T) {
	e := Expense{
		Amount: dec("1500"),
		Payments: []Payment{
			{Amount: dec("600"), AccountID: "a1", PaidOn: date(2026, time.January, 5)},
			{Amount: dec("250.50"), AccountID: "a2", PaidOn: date(2026, time.January, 9)},
		},
	}
	assert.True(t, e.TotalPaid().Equal(dec("850.50")))
	assert.True(t, e.Remaining().Equal(dec("649.50")))
	assert.False(t, e.Paid())
}

func TestExpenseNoPayments(t *testing.T) {
	e := Expense{Amount: dec("80")}
	assert.True(t, e.TotalPaid().IsZero())
	assert.True(t, e.Remaining().Equal(dec("80")))
	assert.False(t, e.Paid())
}

// Overpayment is permitted; Remaining goes negative rather than clamping.
func TestExpenseOverpaid(t *testing.T) {
	e := Expense{
		Amount:   dec("100"),
		Payments: []Payment{{Amount: dec("120"), AccountID: "a1"}},
	}
	assert.True(t, e.Paid())
	assert.True(t, e.Remaining().Equal(dec("-20")))
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single payment applied to an expense. Payments are owned by
// their parent expense and have no independent lifecycle. The sum of an
// expense's payments may exceed its amount; overpayment is permitted.
type Payment struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountId"`
	PaidOn    time.Time       `json:"datePaid"`
}

// Expense is a persisted expense record. RecurringID, when set, links the
// record back to the recurring rule it was actualized from.
type Expense struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueOn       time.Time       `json:"dateDue"`
	Payments    []Payment       `json:"payments"`
	Projected   bool            `json:"isProjected"`
	RecurringID string          `json:"recurringId,omitempty"`
}

// TotalPaid sums all payments recorded against the expense.
func (e Expense) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Remaining is the unpaid balance. Negative when overpaid.
func (e Expense) Remaining() decimal.Decimal {
	return e.Amount.Sub(e.TotalPaid())
}

// Paid reports whether payments cover the full amount.
func (e Expense) Paid() bool {
	return e.TotalPaid().GreaterThanOrEqual(e.Amount)
}

// Income is a persisted income record. Income has no payment concept; it is
// assumed realized on its expected date.
type Income struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	ExpectedOn  time.Time       `json:"dateExpected"`
	AccountID   string          `json:"accountId"`
	RecurringID string          `json:"recurringId,omitempty"`
}

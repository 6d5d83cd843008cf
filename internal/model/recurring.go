package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the repeat interval of a recurring rule.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Next returns the occurrence after t, using native calendar rollover
// (Jan 31 + 1 month lands on Mar 2/3). The second result is false for an
// unrecognized frequency, which ends expansion for the rule without error.
func (f Frequency) Next(t time.Time) (time.Time, bool) {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7), true
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14), true
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0), true
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0), true
	case FrequencyYearly:
		return t.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// RecurringExpense is a template for a repeating expense.
type RecurringExpense struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	StartDate time.Time       `json:"startDate"`
	Projected bool            `json:"isProjected"`
	Active    bool            `json:"isActive"`
}

// RecurringIncome is a template for a repeating income. Unlike expenses,
// income rules always name the receiving account.
type RecurringIncome struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
	StartDate time.Time       `json:"startDate"`
	AccountID string          `json:"accountId"`
	Active    bool            `json:"isActive"`
}

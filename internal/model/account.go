package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout used everywhere dates are compared
// or embedded in identifiers. Comparisons are by calendar date, never by
// instant.
const DateFormat = "2006-01-02"

// DateKey formats a time as a calendar date for comparison and ID purposes.
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDate reports whether two times fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// Account is a cash account with a snapshot balance. The balance is cash on
// hand as of AsOf, before any recorded payments are netted against it.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOfDate"`
}

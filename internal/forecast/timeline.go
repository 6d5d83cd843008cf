package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

// EventType tags a timeline event as an expense or income.
type EventType string

const (
	EventExpense EventType = "expense"
	EventIncome  EventType = "income"
)

// Event is one dated cash movement in a projection timeline. Amount is
// signed: negative for unpaid expense remainders, positive for income.
// Balance is the running total after the event.
type Event struct {
	Date      time.Time       `json:"date"`
	Type      EventType       `json:"type"`
	Name      string          `json:"name"`
	ID        string          `json:"id"`
	AccountID string          `json:"accountId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"totalBalance"`
}

// Projection is a chronological event sequence with its balance endpoints.
type Projection struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	EndBalance     decimal.Decimal `json:"projectedEndBalance"`
	Timeline       []Event         `json:"timeline"`
}

// Timeline folds accounts, a window-filtered expense view, and a
// window-filtered income view into a running-balance projection.
//
// The balance baseline comes from allExpenses, the unfiltered merged view:
// payments outside the window still count toward cash on hand; only the
// event list is windowed. Unpaid expenses contribute their remainder;
// fully paid ones already moved the baseline and emit nothing. Income is
// assumed realized on its expected date, paid or not.
func Timeline(accounts []model.Account, allExpenses, windowExpenses []recur.ExpenseEntry, windowIncome []recur.IncomeEntry) Projection {
	current := CurrentBalance(accounts, allExpenses)

	events := make([]Event, 0, len(windowExpenses)+len(windowIncome))
	for _, e := range windowExpenses {
		remaining := e.Remaining()
		if !remaining.IsPositive() {
			continue
		}
		events = append(events, Event{
			Date:   e.DueOn,
			Type:   EventExpense,
			Name:   e.Name,
			ID:     e.ID,
			Amount: remaining.Neg(),
		})
	}
	for _, in := range windowIncome {
		events = append(events, Event{
			Date:      in.ExpectedOn,
			Type:      EventIncome,
			Name:      in.Name,
			ID:        in.ID,
			AccountID: in.AccountID,
			Amount:    in.Amount,
		})
	}

	// Stable keeps expenses ahead of income on shared dates, since expenses
	// were appended first. Output order is part of the contract.
	sort.SliceStable(events, func(i, j int) bool {
		return model.DateKey(events[i].Date) < model.DateKey(events[j].Date)
	})

	running := current.Total
	for i := range events {
		running = running.Add(events[i].Amount)
		events[i].Balance = running
	}

	return Projection{
		CurrentBalance: current.Total,
		EndBalance:     running,
		Timeline:       events,
	}
}

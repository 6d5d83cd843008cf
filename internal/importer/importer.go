package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/model"
)

// Row layout for bank-style expense exports: date, name, amount, account.
// Negative amounts are debits; the sign is dropped on import since expense
// amounts are always positive.
const (
	numFields  = 4
	colDate    = 0
	colName    = 1
	colAmount  = 2
	colAccount = 3
)

// Result is the outcome of one import pass.
type Result struct {
	Expenses []model.Expense
	Skipped  int // zero-amount rows
}

// ReadExpenses parses a bank-style CSV into paid expense records: each row
// becomes an expense due on the transaction date with a single covering
// payment from the named account.
func ReadExpenses(r io.Reader, paidFrom string) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(records) <= 1 {
		return Result{}, nil
	}

	var res Result
	for i, rec := range records[1:] {
		e, ok, err := parseRow(rec, paidFrom)
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Expenses = append(res.Expenses, e)
	}
	return res, nil
}

func parseRow(rec []string, paidFrom string) (model.Expense, bool, error) {
	date, err := time.Parse(model.DateFormat, rec[colDate])
	if err != nil {
		return model.Expense{}, false, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
	}

	amount, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return model.Expense{}, false, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}
	amount = amount.Abs()
	if amount.IsZero() {
		return model.Expense{}, false, nil
	}

	account := rec[colAccount]
	if account == "" {
		account = paidFrom
	}

	return model.Expense{
		ID:     id.New(),
		Name:   rec[colName],
		Amount: amount,
		DueOn:  date,
		Payments: []model.Payment{{
			ID:        id.New(),
			Amount:    amount,
			AccountID: account,
			PaidOn:    date,
		}},
	}, true, nil
}

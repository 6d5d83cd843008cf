package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/cashplan-dev/cashplan/internal/model"
	"github.com/cashplan-dev/cashplan/internal/recur"
)

// Balances holds the rolling balance per account plus the aggregate.
type Balances struct {
	ByAccount map[string]decimal.Decimal `json:"byAccount"`
	Total     decimal.Decimal            `json:"total"`
}

// CurrentBalance nets every recorded payment against its account's snapshot
// balance. Synthesized instances carry no payments, so only actual records
// move the numbers. Payments referencing an unknown account are ignored, the
// same way unknown-account lookups resolve to not-found elsewhere.
func CurrentBalance(accounts []model.Account, expenses []recur.ExpenseEntry) Balances {
	byAccount := make(map[string]decimal.Decimal, len(accounts))
	total := decimal.Zero

	for _, acct := range accounts {
		balance := acct.Balance
		for _, e := range expenses {
			for _, p := range e.Payments {
				if p.AccountID == acct.ID {
					balance = balance.Sub(p.Amount)
				}
			}
		}
		byAccount[acct.ID] = balance
		total = total.Add(balance)
	}

	return Balances{ByAccount: byAccount, Total: total}
}

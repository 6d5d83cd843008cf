package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/model"
)

// ExpenseChange names the expense fields an edit may touch. Nil fields are
// left as they are.
type ExpenseChange struct {
	Name      *string
	Amount    *decimal.Decimal
	DueOn     *time.Time
	Projected *bool
}

// IncomeChange names the income fields an edit may touch.
type IncomeChange struct {
	Name       *string
	Amount     *decimal.Decimal
	ExpectedOn *time.Time
	AccountID  *string
}

// AddAccount appends an account.
func (l Ledger) AddAccount(a model.Account) Ledger {
	l.Accounts = append(cloneSlice(l.Accounts), a)
	return l
}

// UpdateAccount replaces the account with the same ID.
func (l Ledger) UpdateAccount(a model.Account) (Ledger, error) {
	accounts := cloneSlice(l.Accounts)
	for i := range accounts {
		if accounts[i].ID == a.ID {
			accounts[i] = a
			l.Accounts = accounts
			return l, nil
		}
	}
	return l, fmt.Errorf("account %s: %w", a.ID, ErrNotFound)
}

// DeleteAccount removes an account. Payments and income referencing it stay
// behind as dangling references; lookups resolve to not-found.
func (l Ledger) DeleteAccount(accountID string) (Ledger, error) {
	accounts, ok := deleteByID(l.Accounts, accountID, func(a model.Account) string { return a.ID })
	if !ok {
		return l, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	l.Accounts = accounts
	return l, nil
}

// AddExpense appends an actual expense record.
func (l Ledger) AddExpense(e model.Expense) Ledger {
	l.Expenses = append(cloneSlice(l.Expenses), e)
	return l
}

// UpdateExpense edits an expense. A synthesized-instance target is promoted:
// a fresh actual record is created from the rule occurrence with the change
// applied, and the rule is left untouched unless applyToFuture is set, in
// which case the name/amount/projected change is written back to the rule so
// not-yet-materialized occurrences pick it up.
func (l Ledger) UpdateExpense(target string, change ExpenseChange, applyToFuture bool) (Ledger, error) {
	expenses := cloneSlice(l.Expenses)

	if i := indexByID(expenses, target, func(e model.Expense) string { return e.ID }); i >= 0 {
		expenses[i] = applyExpenseChange(expenses[i], change)
		l.Expenses = expenses
		return l.maybeApplyExpenseFuture(expenses[i].RecurringID, change, applyToFuture)
	}

	inst, err := l.expenseInstance(target)
	if err != nil {
		return l, err
	}
	promoted := applyExpenseChange(inst, change)
	promoted.ID = id.New()
	l.Expenses = append(expenses, promoted)
	return l.maybeApplyExpenseFuture(promoted.RecurringID, change, applyToFuture)
}

// PayExpense records a payment against an expense, promoting a synthesized
// target first. Overpayment is not clamped.
func (l Ledger) PayExpense(target string, p model.Payment) (Ledger, error) {
	expenses := cloneSlice(l.Expenses)

	if i := indexByID(expenses, target, func(e model.Expense) string { return e.ID }); i >= 0 {
		expenses[i].Payments = append(cloneSlice(expenses[i].Payments), p)
		l.Expenses = expenses
		return l, nil
	}

	inst, err := l.expenseInstance(target)
	if err != nil {
		return l, err
	}
	inst.ID = id.New()
	inst.Payments = []model.Payment{p}
	l.Expenses = append(expenses, inst)
	return l, nil
}

// ActualizeExpense converts a projected record into a committed one. For a
// synthesized target this is promotion with no field change beyond clearing
// the projected mark.
func (l Ledger) ActualizeExpense(target string) (Ledger, error) {
	expenses := cloneSlice(l.Expenses)

	if i := indexByID(expenses, target, func(e model.Expense) string { return e.ID }); i >= 0 {
		expenses[i].Projected = false
		l.Expenses = expenses
		return l, nil
	}

	inst, err := l.expenseInstance(target)
	if err != nil {
		return l, err
	}
	inst.ID = id.New()
	inst.Projected = false
	l.Expenses = append(expenses, inst)
	return l, nil
}

// DeleteExpense removes an actual expense. Deleting a record that actualized
// a rule occurrence un-actualizes it: with the record gone, the next
// expansion pass regenerates the synthesized instance for that date.
func (l Ledger) DeleteExpense(expenseID string) (Ledger, error) {
	expenses, ok := deleteByID(l.Expenses, expenseID, func(e model.Expense) string { return e.ID })
	if !ok {
		return l, fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
	}
	l.Expenses = expenses
	return l, nil
}

// AddIncome appends an actual income record.
func (l Ledger) AddIncome(in model.Income) Ledger {
	l.Income = append(cloneSlice(l.Income), in)
	return l
}

// UpdateIncome edits an income record, promoting a synthesized target the
// same way UpdateExpense does.
func (l Ledger) UpdateIncome(target string, change IncomeChange, applyToFuture bool) (Ledger, error) {
	income := cloneSlice(l.Income)

	if i := indexByID(income, target, func(in model.Income) string { return in.ID }); i >= 0 {
		income[i] = applyIncomeChange(income[i], change)
		l.Income = income
		return l.maybeApplyIncomeFuture(income[i].RecurringID, change, applyToFuture)
	}

	inst, err := l.incomeInstance(target)
	if err != nil {
		return l, err
	}
	promoted := applyIncomeChange(inst, change)
	promoted.ID = id.New()
	l.Income = append(income, promoted)
	return l.maybeApplyIncomeFuture(promoted.RecurringID, change, applyToFuture)
}

// DeleteIncome removes an actual income record.
func (l Ledger) DeleteIncome(incomeID string) (Ledger, error) {
	income, ok := deleteByID(l.Income, incomeID, func(in model.Income) string { return in.ID })
	if !ok {
		return l, fmt.Errorf("income %s: %w", incomeID, ErrNotFound)
	}
	l.Income = income
	return l, nil
}

// AddRecurringExpense appends an expense rule.
func (l Ledger) AddRecurringExpense(r model.RecurringExpense) Ledger {
	l.RecurringExpenses = append(cloneSlice(l.RecurringExpenses), r)
	return l
}

// UpdateRecurringExpense replaces the rule with the same ID.
func (l Ledger) UpdateRecurringExpense(r model.RecurringExpense) (Ledger, error) {
	rules := cloneSlice(l.RecurringExpenses)
	for i := range rules {
		if rules[i].ID == r.ID {
			rules[i] = r
			l.RecurringExpenses = rules
			return l, nil
		}
	}
	return l, fmt.Errorf("recurring expense %s: %w", r.ID, ErrNotFound)
}

// SetRecurringExpenseActive pauses or resumes a rule. Paused rules stop
// producing instances but keep their actualized history.
func (l Ledger) SetRecurringExpenseActive(ruleID string, active bool) (Ledger, error) {
	rules := cloneSlice(l.RecurringExpenses)
	for i := range rules {
		if rules[i].ID == ruleID {
			rules[i].Active = active
			l.RecurringExpenses = rules
			return l, nil
		}
	}
	return l, fmt.Errorf("recurring expense %s: %w", ruleID, ErrNotFound)
}

// DeleteRecurringExpense removes a rule. Actualized records keep their
// RecurringID; with the rule gone they are plain expenses.
func (l Ledger) DeleteRecurringExpense(ruleID string) (Ledger, error) {
	rules, ok := deleteByID(l.RecurringExpenses, ruleID, func(r model.RecurringExpense) string { return r.ID })
	if !ok {
		return l, fmt.Errorf("recurring expense %s: %w", ruleID, ErrNotFound)
	}
	l.RecurringExpenses = rules
	return l, nil
}

// AddRecurringIncome appends an income rule.
func (l Ledger) AddRecurringIncome(r model.RecurringIncome) Ledger {
	l.RecurringIncome = append(cloneSlice(l.RecurringIncome), r)
	return l
}

// UpdateRecurringIncome replaces the rule with the same ID.
func (l Ledger) UpdateRecurringIncome(r model.RecurringIncome) (Ledger, error) {
	rules := cloneSlice(l.RecurringIncome)
	for i := range rules {
		if rules[i].ID == r.ID {
			rules[i] = r
			l.RecurringIncome = rules
			return l, nil
		}
	}
	return l, fmt.Errorf("recurring income %s: %w", r.ID, ErrNotFound)
}

// SetRecurringIncomeActive pauses or resumes an income rule.
func (l Ledger) SetRecurringIncomeActive(ruleID string, active bool) (Ledger, error) {
	rules := cloneSlice(l.RecurringIncome)
	for i := range rules {
		if rules[i].ID == ruleID {
			rules[i].Active = active
			l.RecurringIncome = rules
			return l, nil
		}
	}
	return l, fmt.Errorf("recurring income %s: %w", ruleID, ErrNotFound)
}

// DeleteRecurringIncome removes an income rule.
func (l Ledger) DeleteRecurringIncome(ruleID string) (Ledger, error) {
	rules, ok := deleteByID(l.RecurringIncome, ruleID, func(r model.RecurringIncome) string { return r.ID })
	if !ok {
		return l, fmt.Errorf("recurring income %s: %w", ruleID, ErrNotFound)
	}
	l.RecurringIncome = rules
	return l, nil
}

// expenseInstance rebuilds the synthesized expense a mutation is aimed at.
// The instance ID encodes the (rule, date) coordinate, so the instance is
// reconstructed from the current rule rather than trusting caller state.
func (l Ledger) expenseInstance(instanceID string) (model.Expense, error) {
	ruleID, on, err := id.ParseInstanceID(instanceID)
	if err != nil {
		return model.Expense{}, fmt.Errorf("expense %s: %w", instanceID, ErrNotFound)
	}
	rule, ok := l.RecurringExpense(ruleID)
	if !ok {
		return model.Expense{}, fmt.Errorf("recurring expense %s: %w", ruleID, ErrNotFound)
	}
	return model.Expense{
		ID:          instanceID,
		Name:        rule.Name,
		Amount:      rule.Amount,
		DueOn:       on,
		Projected:   rule.Projected,
		RecurringID: rule.ID,
	}, nil
}

func (l Ledger) incomeInstance(instanceID string) (model.Income, error) {
	ruleID, on, err := id.ParseInstanceID(instanceID)
	if err != nil {
		return model.Income{}, fmt.Errorf("income %s: %w", instanceID, ErrNotFound)
	}
	rule, ok := l.RecurringIncomeRule(ruleID)
	if !ok {
		return model.Income{}, fmt.Errorf("recurring income %s: %w", ruleID, ErrNotFound)
	}
	return model.Income{
		ID:          instanceID,
		Name:        rule.Name,
		Amount:      rule.Amount,
		ExpectedOn:  on,
		AccountID:   rule.AccountID,
		RecurringID: rule.ID,
	}, nil
}

// maybeApplyExpenseFuture writes an edit's name/amount/projected change back
// to the linked rule. Date changes stay on the single occurrence; the rule's
// schedule is edited through UpdateRecurringExpense.
func (l Ledger) maybeApplyExpenseFuture(ruleID string, change ExpenseChange, applyToFuture bool) (Ledger, error) {
	if !applyToFuture || ruleID == "" {
		return l, nil
	}
	rule, ok := l.RecurringExpense(ruleID)
	if !ok {
		return l, nil
	}
	if change.Name != nil {
		rule.Name = *change.Name
	}
	if change.Amount != nil {
		rule.Amount = *change.Amount
	}
	if change.Projected != nil {
		rule.Projected = *change.Projected
	}
	return l.UpdateRecurringExpense(rule)
}

func (l Ledger) maybeApplyIncomeFuture(ruleID string, change IncomeChange, applyToFuture bool) (Ledger, error) {
	if !applyToFuture || ruleID == "" {
		return l, nil
	}
	rule, ok := l.RecurringIncomeRule(ruleID)
	if !ok {
		return l, nil
	}
	if change.Name != nil {
		rule.Name = *change.Name
	}
	if change.Amount != nil {
		rule.Amount = *change.Amount
	}
	if change.AccountID != nil {
		rule.AccountID = *change.AccountID
	}
	return l.UpdateRecurringIncome(rule)
}

func applyExpenseChange(e model.Expense, change ExpenseChange) model.Expense {
	if change.Name != nil {
		e.Name = *change.Name
	}
	if change.Amount != nil {
		e.Amount = *change.Amount
	}
	if change.DueOn != nil {
		e.DueOn = *change.DueOn
	}
	if change.Projected != nil {
		e.Projected = *change.Projected
	}
	return e
}

func applyIncomeChange(in model.Income, change IncomeChange) model.Income {
	if change.Name != nil {
		in.Name = *change.Name
	}
	if change.Amount != nil {
		in.Amount = *change.Amount
	}
	if change.ExpectedOn != nil {
		in.ExpectedOn = *change.ExpectedOn
	}
	if change.AccountID != nil {
		in.AccountID = *change.AccountID
	}
	return in
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func indexByID[T any](s []T, id string, key func(T) string) int {
	for i, v := range s {
		if key(v) == id {
			return i
		}
	}
	return -1
}

func deleteByID[T any](s []T, id string, key func(T) string) ([]T, bool) {
	for i, v := range s {
		if key(v) == id {
			out := make([]T, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...), true
		}
	}
	return s, false
}

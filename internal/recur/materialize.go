package recur

import (
	"time"

	"github.com/cashplan-dev/cashplan/internal/id"
	"github.com/cashplan-dev/cashplan/internal/model"
)

// Kind discriminates persisted records from synthesized occurrences in a
// merged view.
type Kind string

const (
	KindActual      Kind = "actual"
	KindSynthesized Kind = "synthesized"
)

// ExpenseEntry is one row of the merged expense view: either a persisted
// expense or a synthesized occurrence of a recurring rule.
type ExpenseEntry struct {
	model.Expense
	Kind Kind `json:"kind"`
}

// IncomeEntry is one row of the merged income view.
type IncomeEntry struct {
	model.Income
	Kind Kind `json:"kind"`
}

// ExpandExpenses walks every active expense rule from its start date to the
// horizon, emitting a synthesized entry for each occurrence date not already
// covered by an actual record with the same rule and due date. The result is
// a pure function of its inputs; entries are never stored.
func ExpandExpenses(rules []model.RecurringExpense, actual []model.Expense, horizon time.Time) []ExpenseEntry {
	covered := make(map[string]bool)
	for _, e := range actual {
		if e.RecurringID != "" {
			covered[e.RecurringID+"/"+model.DateKey(e.DueOn)] = true
		}
	}

	var out []ExpenseEntry
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		for cursor := rule.StartDate; !cursor.After(horizon); {
			if !covered[rule.ID+"/"+model.DateKey(cursor)] {
				out = append(out, ExpenseEntry{
					Expense: model.Expense{
						ID:          id.FormatInstanceID(rule.ID, cursor),
						Name:        rule.Name,
						Amount:      rule.Amount,
						DueOn:       cursor,
						Projected:   rule.Projected,
						RecurringID: rule.ID,
					},
					Kind: KindSynthesized,
				})
			}
			next, ok := rule.Frequency.Next(cursor)
			if !ok {
				break
			}
			cursor = next
		}
	}
	return out
}

// ExpandIncome is the income counterpart of ExpandExpenses.
func ExpandIncome(rules []model.RecurringIncome, actual []model.Income, horizon time.Time) []IncomeEntry {
	covered := make(map[string]bool)
	for _, in := range actual {
		if in.RecurringID != "" {
			covered[in.RecurringID+"/"+model.DateKey(in.ExpectedOn)] = true
		}
	}

	var out []IncomeEntry
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		for cursor := rule.StartDate; !cursor.After(horizon); {
			if !covered[rule.ID+"/"+model.DateKey(cursor)] {
				out = append(out, IncomeEntry{
					Income: model.Income{
						ID:          id.FormatInstanceID(rule.ID, cursor),
						Name:        rule.Name,
						Amount:      rule.Amount,
						ExpectedOn:  cursor,
						AccountID:   rule.AccountID,
						RecurringID: rule.ID,
					},
					Kind: KindSynthesized,
				})
			}
			next, ok := rule.Frequency.Next(cursor)
			if !ok {
				break
			}
			cursor = next
		}
	}
	return out
}

// MergeExpenses concatenates actual records and synthesized instances into a
// single view. No dedup is needed: expansion already skips covered dates.
func MergeExpenses(actual []model.Expense, synthesized []ExpenseEntry) []ExpenseEntry {
	out := make([]ExpenseEntry, 0, len(actual)+len(synthesized))
	for _, e := range actual {
		out = append(out, ExpenseEntry{Expense: e, Kind: KindActual})
	}
	out = append(out, synthesized...)
	return out
}

// MergeIncome concatenates actual income and synthesized instances.
func MergeIncome(actual []model.Income, synthesized []IncomeEntry) []IncomeEntry {
	out := make([]IncomeEntry, 0, len(actual)+len(synthesized))
	for _, in := range actual {
		out = append(out, IncomeEntry{Income: in, Kind: KindActual})
	}
	out = append(out, synthesized...)
	return out
}

// FilterExpenses keeps entries due within [from, to], by calendar date.
func FilterExpenses(entries []ExpenseEntry, from, to time.Time) []ExpenseEntry {
	var out []ExpenseEntry
	for _, e := range entries {
		if inWindow(e.DueOn, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// FilterIncome keeps entries expected within [from, to], by calendar date.
func FilterIncome(entries []IncomeEntry, from, to time.Time) []IncomeEntry {
	var out []IncomeEntry
	for _, in := range entries {
		if inWindow(in.ExpectedOn, from, to) {
			out = append(out, in)
		}
	}
	return out
}

func inWindow(t, from, to time.Time) bool {
	k := model.DateKey(t)
	return k >= model.DateKey(from) && k <= model.DateKey(to)
}

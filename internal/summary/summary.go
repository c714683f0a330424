// Package summary is the pure aggregation core: grouping, period totals,
// budget health classification and yearly report rows. Every function is a
// deterministic computation over the slices it receives; none of them touch a
// repository, the clock, or any ambient state. All date bucketing uses the
// UTC calendar day of the stored timestamp.
package summary

import (
	"fmt"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	budgetWarningPct  = decimal.NewFromInt(75)
	budgetCriticalPct = decimal.NewFromInt(90)
	budgetOverPct     = decimal.NewFromInt(100)

	tierGreenPct  = decimal.NewFromInt(75)
	tierYellowPct = decimal.NewFromInt(35)
)

// dayUTC truncates a timestamp to its UTC calendar day.
func dayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GroupByCategory partitions expenses by category name in a single pass,
// preserving first-seen category order and accumulating exact decimal
// subtotals. Expenses without a category are bucketed under
// domain.UncategorizedName rather than rejected. A negative amount fails
// fast with ErrInvalidAmount: skipping the record would corrupt totals.
func GroupByCategory(expenses []*domain.Expense) ([]*domain.CategoryGroup, error) {
	groups := make([]*domain.CategoryGroup, 0)
	index := make(map[string]*domain.CategoryGroup)

	for _, e := range expenses {
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %d has negative amount %s", domain.ErrInvalidAmount, e.ID, e.Amount)
		}

		name := e.CategoryName
		if name == "" {
			name = domain.UncategorizedName
		}

		g, ok := index[name]
		if !ok {
			g = &domain.CategoryGroup{
				CategoryName: name,
				Expenses:     make([]*domain.Expense, 0, 1),
				Subtotal:     decimal.Zero,
			}
			index[name] = g
			groups = append(groups, g)
		}

		g.Expenses = append(g.Expenses, e)
		g.Subtotal = g.Subtotal.Add(e.Amount)
	}

	return groups, nil
}

// Summarize filters expenses and incomes to the inclusive [from, to] range
// and derives the period totals. A degenerate range (from after to) yields
// zero totals, not an error; zero-valued bounds fail with ErrInvalidDateRange.
func Summarize(expenses []*domain.Expense, incomes []*domain.Income, from, to time.Time) (*domain.PeriodSummary, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: missing bound", domain.ErrInvalidDateRange)
	}

	fromDay := dayUTC(from)
	toDay := dayUTC(to)

	totalExpense := decimal.Zero
	totalIncome := decimal.Zero

	for _, e := range expenses {
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense %d has negative amount %s", domain.ErrInvalidAmount, e.ID, e.Amount)
		}
		if inRange(e.OccurredAt, fromDay, toDay) {
			totalExpense = totalExpense.Add(e.Amount)
		}
	}
	for _, in := range incomes {
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: income %d has negative amount %s", domain.ErrInvalidAmount, in.ID, in.Amount)
		}
		if inRange(in.OccurredAt, fromDay, toDay) {
			totalIncome = totalIncome.Add(in.Amount)
		}
	}

	remaining := totalIncome.Sub(totalExpense)

	return &domain.PeriodSummary{
		From:         fromDay,
		To:           toDay,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Remaining:    remaining,
		HealthTier:   ClassifyRemainingBalance(remaining, totalIncome),
	}, nil
}

func inRange(t, fromDay, toDay time.Time) bool {
	d := dayUTC(t)
	return !d.Before(fromDay) && !d.After(toDay)
}

// ClassifyBudget derives the spending percentage and traffic-light status of
// spending against a monthly limit. The thresholds are business-visible:
// <75% ok, 75–<90% warning, 90–<100% critical, >=100% over_budget. A zero or
// negative limit is malformed input and fails with ErrInvalidLimit.
func ClassifyBudget(spending, limit decimal.Decimal) (*domain.BudgetHealth, error) {
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidLimit, limit)
	}
	if spending.IsNegative() {
		return nil, fmt.Errorf("%w: negative spending %s", domain.ErrInvalidAmount, spending)
	}

	// Status thresholds compare the exact quotient; rounding first would push
	// values like 74.9975% across the 75% boundary. Only the reported
	// percentage is rounded for display.
	pct := spending.Div(limit).Mul(hundred)

	var status domain.BudgetStatus
	switch {
	case pct.GreaterThanOrEqual(budgetOverPct):
		status = domain.BudgetStatusOverBudget
	case pct.GreaterThanOrEqual(budgetCriticalPct):
		status = domain.BudgetStatusCritical
	case pct.GreaterThanOrEqual(budgetWarningPct):
		status = domain.BudgetStatusWarning
	default:
		status = domain.BudgetStatusOK
	}

	return &domain.BudgetHealth{Percentage: pct.Round(2), Status: status}, nil
}

// ClassifyRemainingBalance maps a remaining balance to a display tier using a
// runway heuristic: green when at least 75% of income is still unspent,
// yellow from 35%, red below. With no income at all the tier is red only when
// the balance went negative.
func ClassifyRemainingBalance(remaining, totalIncome decimal.Decimal) domain.HealthTier {
	if totalIncome.LessThanOrEqual(decimal.Zero) {
		if remaining.IsNegative() {
			return domain.HealthTierRed
		}
		return domain.HealthTierGreen
	}

	pct := remaining.Div(totalIncome).Mul(hundred)
	switch {
	case pct.GreaterThanOrEqual(tierGreenPct):
		return domain.HealthTierGreen
	case pct.GreaterThanOrEqual(tierYellowPct):
		return domain.HealthTierYellow
	default:
		return domain.HealthTierRed
	}
}

// BuildYearlyRows buckets expenses of one UTC calendar year by month and
// always emits all 12 months in ascending order, zero-filled for months with
// no activity, so exports have a dense, predictable shape.
func BuildYearlyRows(expenses []*domain.Expense, year int) []*domain.MonthlyReportRow {
	rows := make([]*domain.MonthlyReportRow, 12)
	for i := range rows {
		rows[i] = &domain.MonthlyReportRow{Month: i + 1, Total: decimal.Zero}
	}

	for _, e := range expenses {
		d := dayUTC(e.OccurredAt)
		if d.Year() != year {
			continue
		}
		row := rows[int(d.Month())-1]
		row.Total = row.Total.Add(e.Amount)
		row.TransactionCount++
	}

	return rows
}

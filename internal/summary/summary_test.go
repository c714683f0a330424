package summary

import (
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(id int32, amount string, category string, date string) *domain.Expense {
	occurred, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &domain.Expense{
		ID:           id,
		Amount:       decimal.RequireFromString(amount),
		CategoryName: category,
		OccurredAt:   occurred,
	}
}

func income(id int32, amount string, date string) *domain.Income {
	occurred, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return &domain.Income{
		ID:         id,
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: occurred,
	}
}

func day(date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGroupByCategory_FirstSeenOrder(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "20.00", "Food", "2024-01-05"),
		expense(2, "15.00", "Transport", "2024-01-06"),
		expense(3, "30.00", "Food", "2024-01-10"),
		expense(4, "5.00", "Coffee", "2024-01-11"),
	}

	groups, err := GroupByCategory(expenses)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "Food", groups[0].CategoryName)
	assert.Equal(t, "Transport", groups[1].CategoryName)
	assert.Equal(t, "Coffee", groups[2].CategoryName)

	assert.Equal(t, "50.00", groups[0].Subtotal.StringFixed(2))
	assert.Len(t, groups[0].Expenses, 2)
	assert.Equal(t, "15.00", groups[1].Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", groups[2].Subtotal.StringFixed(2))
}

func TestGroupByCategory_UncategorizedBucket(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "10.00", "", "2024-01-05"),
		expense(2, "20.00", "Food", "2024-01-06"),
		expense(3, "2.50", "", "2024-01-07"),
	}

	groups, err := GroupByCategory(expenses)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, domain.UncategorizedName, groups[0].CategoryName)
	assert.Equal(t, "12.50", groups[0].Subtotal.StringFixed(2))
	assert.Equal(t, "Food", groups[1].CategoryName)
}

func TestGroupByCategory_NegativeAmountFailsFast(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "10.00", "Food", "2024-01-05"),
		{ID: 2, Amount: decimal.RequireFromString("-1.00"), CategoryName: "Food", OccurredAt: day("2024-01-06")},
	}

	_, err := GroupByCategory(expenses)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGroupByCategory_Idempotent(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "20.00", "Food", "2024-01-05"),
		expense(2, "15.00", "Transport", "2024-01-06"),
		expense(3, "30.00", "Food", "2024-01-10"),
	}

	first, err := GroupByCategory(expenses)
	require.NoError(t, err)
	second, err := GroupByCategory(expenses)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].CategoryName, second[i].CategoryName)
		assert.True(t, first[i].Subtotal.Equal(second[i].Subtotal))
		assert.Len(t, second[i].Expenses, len(first[i].Expenses))
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	groups, err := GroupByCategory(nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestSummarize_JanuaryScenario(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "20.00", "Food", "2024-01-05"),
		expense(2, "30.00", "Food", "2024-01-10"),
	}
	incomes := []*domain.Income{
		income(1, "100.00", "2024-01-01"),
	}

	result, err := Summarize(expenses, incomes, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, "50.00", result.TotalExpense.StringFixed(2))
	assert.Equal(t, "100.00", result.TotalIncome.StringFixed(2))
	assert.Equal(t, "50.00", result.Remaining.StringFixed(2))
	// 50% of income remaining sits in the yellow tier.
	assert.Equal(t, domain.HealthTierYellow, result.HealthTier)
}

func TestSummarize_InclusiveBounds(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "10.00", "Food", "2024-01-01"),
		expense(2, "10.00", "Food", "2024-01-31"),
		expense(3, "10.00", "Food", "2024-02-01"),
		expense(4, "10.00", "Food", "2023-12-31"),
	}

	result, err := Summarize(expenses, nil, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "20.00", result.TotalExpense.StringFixed(2))
}

func TestSummarize_ComparesUTCCalendarDay(t *testing.T) {
	// 2024-01-31 23:30 in UTC-5 is already 2024-02-01 in UTC and must fall
	// outside a January range.
	loc := time.FixedZone("UTC-5", -5*60*60)
	late := &domain.Expense{
		ID:         1,
		Amount:     decimal.NewFromInt(10),
		OccurredAt: time.Date(2024, 1, 31, 23, 30, 0, 0, loc),
	}

	result, err := Summarize([]*domain.Expense{late}, nil, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.TotalExpense.StringFixed(2))
}

func TestSummarize_DegenerateRange(t *testing.T) {
	expenses := []*domain.Expense{expense(1, "10.00", "Food", "2024-01-05")}
	incomes := []*domain.Income{income(1, "100.00", "2024-01-01")}

	result, err := Summarize(expenses, incomes, day("2024-02-01"), day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.TotalExpense.StringFixed(2))
	assert.Equal(t, "0.00", result.TotalIncome.StringFixed(2))
	assert.Equal(t, domain.HealthTierGreen, result.HealthTier)
}

func TestSummarize_EmptyInputs(t *testing.T) {
	result, err := Summarize(nil, nil, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.TotalIncome.StringFixed(2))
	assert.Equal(t, "0.00", result.TotalExpense.StringFixed(2))
	assert.Equal(t, domain.HealthTierGreen, result.HealthTier)
}

func TestSummarize_ZeroBoundRejected(t *testing.T) {
	_, err := Summarize(nil, nil, time.Time{}, day("2024-01-31"))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestSummarize_NegativeRemaining(t *testing.T) {
	expenses := []*domain.Expense{expense(1, "150.00", "Rent", "2024-01-05")}
	incomes := []*domain.Income{income(1, "100.00", "2024-01-01")}

	result, err := Summarize(expenses, incomes, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "-50.00", result.Remaining.StringFixed(2))
	assert.Equal(t, domain.HealthTierRed, result.HealthTier)
}

func TestGroupingAndPeriodTotalsAgree(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "20.00", "Food", "2024-01-05"),
		expense(2, "15.75", "Transport", "2024-01-06"),
		expense(3, "30.25", "Food", "2024-01-10"),
		expense(4, "5.00", "", "2024-01-11"),
	}

	groups, err := GroupByCategory(expenses)
	require.NoError(t, err)

	sumOfSubtotals := decimal.Zero
	for _, g := range groups {
		sumOfSubtotals = sumOfSubtotals.Add(g.Subtotal)
	}

	result, err := Summarize(expenses, nil, day("2024-01-01"), day("2024-01-31"))
	require.NoError(t, err)
	assert.True(t, sumOfSubtotals.Equal(result.TotalExpense),
		"group subtotals %s != period total %s", sumOfSubtotals, result.TotalExpense)
}

func TestClassifyBudget_Thresholds(t *testing.T) {
	limit := decimal.NewFromInt(100)
	tests := []struct {
		spending string
		pct      string
		status   domain.BudgetStatus
	}{
		{"0.00", "0", domain.BudgetStatusOK},
		{"74.99", "74.99", domain.BudgetStatusOK},
		{"75.00", "75", domain.BudgetStatusWarning},
		{"89.99", "89.99", domain.BudgetStatusWarning},
		{"90.00", "90", domain.BudgetStatusCritical},
		{"99.99", "99.99", domain.BudgetStatusCritical},
		{"100.00", "100", domain.BudgetStatusOverBudget},
		{"130.00", "130", domain.BudgetStatusOverBudget},
	}

	for _, tt := range tests {
		health, err := ClassifyBudget(decimal.RequireFromString(tt.spending), limit)
		require.NoError(t, err, "spending %s", tt.spending)
		assert.Equal(t, tt.status, health.Status, "spending %s", tt.spending)
		assert.True(t, health.Percentage.Equal(decimal.RequireFromString(tt.pct)),
			"spending %s: percentage %s", tt.spending, health.Percentage)
	}
}

func TestClassifyBudget_NonRoundLimit(t *testing.T) {
	// With a limit of 99.99 the exact ratio can sit just below a threshold
	// while the rounded display percentage lands exactly on it. The status
	// must follow the exact ratio, not the rounded one.
	limit := decimal.RequireFromString("99.99")
	tests := []struct {
		spending string
		pct      string
		status   domain.BudgetStatus
	}{
		{"74.99", "75", domain.BudgetStatusOK},       // 74.9975%
		{"89.99", "90", domain.BudgetStatusWarning},  // 89.999%
		{"99.98", "99.99", domain.BudgetStatusCritical}, // 99.99%
		{"99.99", "100", domain.BudgetStatusOverBudget},
	}

	for _, tt := range tests {
		health, err := ClassifyBudget(decimal.RequireFromString(tt.spending), limit)
		require.NoError(t, err, "spending %s", tt.spending)
		assert.Equal(t, tt.status, health.Status, "spending %s", tt.spending)
		assert.True(t, health.Percentage.Equal(decimal.RequireFromString(tt.pct)),
			"spending %s: percentage %s", tt.spending, health.Percentage)
	}
}

func TestClassifyBudget_Monotonic(t *testing.T) {
	limit := decimal.NewFromInt(200)
	prev := -1
	for cents := int64(0); cents <= 25000; cents += 250 {
		spending := decimal.New(cents, -2)
		health, err := ClassifyBudget(spending, limit)
		require.NoError(t, err)
		severity := health.Status.Severity()
		assert.GreaterOrEqual(t, severity, prev, "status severity decreased at spending %s", spending)
		prev = severity
	}
}

func TestClassifyBudget_InvalidLimit(t *testing.T) {
	_, err := ClassifyBudget(decimal.NewFromInt(10), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)

	_, err = ClassifyBudget(decimal.NewFromInt(10), decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestClassifyRemainingBalance(t *testing.T) {
	tests := []struct {
		remaining string
		income    string
		tier      domain.HealthTier
	}{
		{"80.00", "100.00", domain.HealthTierGreen},
		{"75.00", "100.00", domain.HealthTierGreen},
		{"74.99", "100.00", domain.HealthTierYellow},
		{"50.00", "100.00", domain.HealthTierYellow},
		{"35.00", "100.00", domain.HealthTierYellow},
		{"34.99", "100.00", domain.HealthTierRed},
		{"0.00", "100.00", domain.HealthTierRed},
		{"-20.00", "100.00", domain.HealthTierRed},
		{"0.00", "0.00", domain.HealthTierGreen},
		{"-0.01", "0.00", domain.HealthTierRed},
	}

	for _, tt := range tests {
		tier := ClassifyRemainingBalance(
			decimal.RequireFromString(tt.remaining),
			decimal.RequireFromString(tt.income),
		)
		assert.Equal(t, tt.tier, tier, "remaining %s of income %s", tt.remaining, tt.income)
	}
}

func TestBuildYearlyRows_Empty(t *testing.T) {
	rows := BuildYearlyRows(nil, 2024)
	require.Len(t, rows, 12)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Month)
		assert.Equal(t, "0.00", row.Total.StringFixed(2))
		assert.Equal(t, 0, row.TransactionCount)
	}
}

func TestBuildYearlyRows_BucketsByMonthAndYear(t *testing.T) {
	expenses := []*domain.Expense{
		expense(1, "20.00", "Food", "2024-01-05"),
		expense(2, "30.00", "Food", "2024-01-20"),
		expense(3, "12.00", "Transport", "2024-03-02"),
		expense(4, "99.00", "Rent", "2023-12-31"),
	}

	rows := BuildYearlyRows(expenses, 2024)
	require.Len(t, rows, 12)

	assert.Equal(t, "50.00", rows[0].Total.StringFixed(2))
	assert.Equal(t, 2, rows[0].TransactionCount)
	assert.Equal(t, "0.00", rows[1].Total.StringFixed(2))
	assert.Equal(t, "12.00", rows[2].Total.StringFixed(2))
	assert.Equal(t, 1, rows[2].TransactionCount)
	// The 2023 expense is filtered out entirely.
	assert.Equal(t, "0.00", rows[11].Total.StringFixed(2))
}

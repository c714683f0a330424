package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/testutil"
)

func setupSummaryServiceTest() (*SummaryService, *testutil.MockExpenseRepository, *testutil.MockIncomeRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	incomeRepo := testutil.NewMockIncomeRepository()
	service := NewSummaryService(expenseRepo, incomeRepo)
	return service, expenseRepo, incomeRepo
}

func TestPeriodSummary_Basic(t *testing.T) {
	service, expenseRepo, incomeRepo := setupSummaryServiceTest()

	incomeRepo.AddIncome(&domain.Income{
		Amount:     decimal.NewFromInt(100),
		OccurredAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	})
	expenseRepo.AddExpense(&domain.Expense{
		Amount:     decimal.NewFromInt(50),
		OccurredAt: time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC),
	})

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	summary, err := service.PeriodSummary(from, to)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalIncome.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected total income 100, got %s", summary.TotalIncome.String())
	}
	if !summary.TotalExpense.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected total expense 50, got %s", summary.TotalExpense.String())
	}
	if !summary.Remaining.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected remaining 50, got %s", summary.Remaining.String())
	}
	if summary.HealthTier != domain.HealthTierYellow {
		t.Errorf("Expected yellow tier at 50%% remaining, got %s", summary.HealthTier)
	}
}

func TestPeriodSummary_InvertedRange(t *testing.T) {
	service, expenseRepo, incomeRepo := setupSummaryServiceTest()

	incomeRepo.AddIncome(&domain.Income{
		Amount:     decimal.NewFromInt(100),
		OccurredAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	expenseRepo.AddExpense(&domain.Expense{
		Amount:     decimal.NewFromInt(50),
		OccurredAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})

	// An inverted range matches nothing and yields zero totals, not an error
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	summary, err := service.PeriodSummary(from, to)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.TotalIncome.IsZero() || !summary.TotalExpense.IsZero() {
		t.Errorf("Expected zero totals, got income %s expense %s",
			summary.TotalIncome.String(), summary.TotalExpense.String())
	}
	if summary.HealthTier != domain.HealthTierGreen {
		t.Errorf("Expected green tier for empty summary, got %s", summary.HealthTier)
	}
}

func TestPeriodSummary_ZeroBound(t *testing.T) {
	service, _, _ := setupSummaryServiceTest()

	_, err := service.PeriodSummary(time.Time{}, time.Now())
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestMonthSummary(t *testing.T) {
	service, expenseRepo, incomeRepo := setupSummaryServiceTest()

	incomeRepo.AddIncome(&domain.Income{
		Amount:     decimal.NewFromInt(1000),
		OccurredAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	// Outside February, must not count
	expenseRepo.AddExpense(&domain.Expense{
		Amount:     decimal.NewFromInt(999),
		OccurredAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	expenseRepo.AddExpense(&domain.Expense{
		Amount:     decimal.NewFromInt(100),
		OccurredAt: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // leap day
	})

	summary, err := service.MonthSummary(2024, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.TotalExpense.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected total expense 100, got %s", summary.TotalExpense.String())
	}
	if summary.HealthTier != domain.HealthTierGreen {
		t.Errorf("Expected green tier at 90%% remaining, got %s", summary.HealthTier)
	}
}

func TestMonthSummary_InvalidMonth(t *testing.T) {
	service, _, _ := setupSummaryServiceTest()

	if _, err := service.MonthSummary(2024, 0); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange for month 0, got %v", err)
	}
	if _, err := service.MonthSummary(2024, 13); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange for month 13, got %v", err)
	}
}

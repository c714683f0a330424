package service

import (
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/summary"
)

// SummaryService computes period summaries over stored expenses and incomes
type SummaryService struct {
	expenseRepo domain.ExpenseRepository
	incomeRepo  domain.IncomeRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(expenseRepo domain.ExpenseRepository, incomeRepo domain.IncomeRepository) *SummaryService {
	return &SummaryService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
	}
}

// PeriodSummary computes income, expense and remaining-balance figures for an
// inclusive date range. An inverted range (to before from) matches nothing and
// yields zero totals, same as summary.Summarize.
func (s *SummaryService) PeriodSummary(from, to time.Time) (*domain.PeriodSummary, error) {
	if from.IsZero() || to.IsZero() {
		return nil, domain.ErrInvalidDateRange
	}

	expenses, err := s.expenseRepo.GetByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	incomes, err := s.incomeRepo.GetByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	return summary.Summarize(expenses, incomes, from, to)
}

// MonthSummary computes the period summary for a calendar month
func (s *SummaryService) MonthSummary(year, month int) (*domain.PeriodSummary, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidDateRange
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return s.PeriodSummary(from, to)
}

package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/summary"
)

// ReportService builds yearly spending reports
type ReportService struct {
	expenseRepo domain.ExpenseRepository
}

// NewReportService creates a new ReportService
func NewReportService(expenseRepo domain.ExpenseRepository) *ReportService {
	return &ReportService{expenseRepo: expenseRepo}
}

// YearlyReport returns twelve monthly rows for a year. Months with no
// expenses are zero rows, so charts always get a dense series.
func (s *ReportService) YearlyReport(year int) ([]*domain.MonthlyReportRow, error) {
	expenses, err := s.expenseRepo.GetByYear(year)
	if err != nil {
		return nil, err
	}
	return summary.BuildYearlyRows(expenses, year), nil
}

// WriteYearlyCSV writes the yearly report as CSV: one header row followed by
// twelve month rows
func (s *ReportService) WriteYearlyCSV(year int, w io.Writer) error {
	rows, err := s.YearlyReport(year)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "total", "transaction_count"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			time.Month(row.Month).String(),
			row.Total.StringFixed(2),
			fmt.Sprintf("%d", row.TransactionCount),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

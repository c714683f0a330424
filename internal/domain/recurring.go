package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "bi_weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// ValidFrequency reports whether f is one of the supported schedules.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// DueStatus describes how close a recurring expense is to its next due date.
type DueStatus string

const (
	DueStatusInactive  DueStatus = "inactive"
	DueStatusOverdue   DueStatus = "overdue"
	DueStatusDueToday  DueStatus = "due_today"
	DueStatusDueSoon   DueStatus = "due_soon"
	DueStatusScheduled DueStatus = "scheduled"
)

type RecurringExpense struct {
	ID           int32           `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Frequency    Frequency       `json:"frequency"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
	NextDueDate  time.Time       `json:"nextDueDate"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RecurringDashboard summarizes the recurring expense list.
type RecurringDashboard struct {
	ActiveCount   int             `json:"activeCount"`
	OverdueCount  int             `json:"overdueCount"`
	MonthlyImpact decimal.Decimal `json:"monthlyImpact"`
}

type RecurringExpenseRepository interface {
	Create(re *RecurringExpense) (*RecurringExpense, error)
	GetByID(id int32) (*RecurringExpense, error)
	GetAll() ([]*RecurringExpense, error)
	Update(re *RecurringExpense) (*RecurringExpense, error)
	Delete(id int32) error
}

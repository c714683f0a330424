package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the traffic-light classification of spending against a
// monthly limit. The thresholds are business-visible: <75% ok, 75–<90%
// warning, 90–<100% critical, >=100% over_budget.
type BudgetStatus string

const (
	BudgetStatusOK         BudgetStatus = "ok"
	BudgetStatusWarning    BudgetStatus = "warning"
	BudgetStatusCritical   BudgetStatus = "critical"
	BudgetStatusOverBudget BudgetStatus = "over_budget"
)

// Severity orders statuses from healthy to exhausted, for monotonicity checks
// and alert sorting.
func (s BudgetStatus) Severity() int {
	switch s {
	case BudgetStatusWarning:
		return 1
	case BudgetStatusCritical:
		return 2
	case BudgetStatusOverBudget:
		return 3
	default:
		return 0
	}
}

type Budget struct {
	ID           int32           `json:"id"`
	CategoryID   int32           `json:"categoryId"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BudgetHealth is the result of classifying spending against a limit.
type BudgetHealth struct {
	Percentage decimal.Decimal `json:"percentage"`
	Status     BudgetStatus    `json:"status"`
}

// BudgetWithStatus decorates a stored budget with its derived spending state.
type BudgetWithStatus struct {
	Budget
	CategoryName       string          `json:"categoryName"`
	CurrentSpending    decimal.Decimal `json:"currentSpending"`
	SpendingPercentage decimal.Decimal `json:"spendingPercentage"`
	RemainingBudget    decimal.Decimal `json:"remainingBudget"`
	Status             BudgetStatus    `json:"status"`
}

// BudgetAlert is the filtered view of budgets whose status is not ok.
type BudgetAlert struct {
	CategoryName       string          `json:"categoryName"`
	SpendingPercentage decimal.Decimal `json:"spendingPercentage"`
	Status             BudgetStatus    `json:"status"`
}

// BudgetDashboard aggregates all budgets of a month into overview figures.
type BudgetDashboard struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	TotalBudget        decimal.Decimal `json:"totalBudget"`
	TotalSpending      decimal.Decimal `json:"totalSpending"`
	RemainingBudget    decimal.Decimal `json:"remainingBudget"`
	SpendingPercentage decimal.Decimal `json:"spendingPercentage"`
	Health             BudgetStatus    `json:"health"`
	Alerts             []*BudgetAlert  `json:"alerts"`
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(id int32) (*Budget, error)
	GetByMonth(year, month int) ([]*Budget, error)
	GetByCategoryAndMonth(categoryID int32, year, month int) (*Budget, error)
	UpdateLimit(id int32, limit decimal.Decimal) (*Budget, error)
	Delete(id int32) error
}

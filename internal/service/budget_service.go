package service

import (
	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/summary"
	"github.com/centavo/centavo-backend/internal/websocket"
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
	expenseRepo  domain.ExpenseRepository
	wsPub        websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo domain.BudgetRepository,
	categoryRepo domain.CategoryRepository,
	expenseRepo domain.ExpenseRepository,
	wsPub websocket.EventPublisher,
) *BudgetService {
	if wsPub == nil {
		wsPub = &websocket.NoOpPublisher{}
	}
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		wsPub:        wsPub,
	}
}

// CreateBudgetInput holds the input for creating a budget
type CreateBudgetInput struct {
	CategoryID   int32
	Year         int
	Month        int
	MonthlyLimit decimal.Decimal
}

// CreateBudget creates a monthly budget for a category
func (s *BudgetService) CreateBudget(input CreateBudgetInput) (*domain.Budget, error) {
	if input.MonthlyLimit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidLimit
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, domain.ErrInvalidDateRange
	}

	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	budget, err := s.budgetRepo.Create(&domain.Budget{
		CategoryID:   input.CategoryID,
		Year:         input.Year,
		Month:        input.Month,
		MonthlyLimit: input.MonthlyLimit.Round(2),
	})
	if err != nil {
		return nil, err
	}

	s.wsPub.Publish(websocket.BudgetCreated(budget))
	return budget, nil
}

// UpdateBudgetLimit changes the monthly limit of an existing budget
func (s *BudgetService) UpdateBudgetLimit(id int32, limit decimal.Decimal) (*domain.Budget, error) {
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidLimit
	}

	budget, err := s.budgetRepo.UpdateLimit(id, limit.Round(2))
	if err != nil {
		return nil, err
	}

	s.wsPub.Publish(websocket.BudgetUpdated(budget))
	return budget, nil
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(id int32) error {
	budget, err := s.budgetRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.budgetRepo.Delete(id); err != nil {
		return err
	}
	s.wsPub.Publish(websocket.BudgetDeleted(budget))
	return nil
}

// ListBudgets retrieves all budgets for a month decorated with their current
// spending state
func (s *BudgetService) ListBudgets(year, month int) ([]*domain.BudgetWithStatus, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidDateRange
	}

	budgets, err := s.budgetRepo.GetByMonth(year, month)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.BudgetWithStatus, 0, len(budgets))
	for _, budget := range budgets {
		decorated, err := s.decorate(budget)
		if err != nil {
			return nil, err
		}
		out = append(out, decorated)
	}
	return out, nil
}

func (s *BudgetService) decorate(budget *domain.Budget) (*domain.BudgetWithStatus, error) {
	category, err := s.categoryRepo.GetByID(budget.CategoryID)
	if err != nil {
		return nil, err
	}

	spending, err := s.expenseRepo.SumByCategoryAndMonth(budget.CategoryID, budget.Year, budget.Month)
	if err != nil {
		return nil, err
	}

	health, err := summary.ClassifyBudget(spending, budget.MonthlyLimit)
	if err != nil {
		return nil, err
	}

	return &domain.BudgetWithStatus{
		Budget:             *budget,
		CategoryName:       category.Name,
		CurrentSpending:    spending,
		SpendingPercentage: health.Percentage,
		RemainingBudget:    budget.MonthlyLimit.Sub(spending),
		Status:             health.Status,
	}, nil
}

// Dashboard aggregates all budgets of a month into overview figures with
// alerts for every budget whose status is not ok
func (s *BudgetService) Dashboard(year, month int) (*domain.BudgetDashboard, error) {
	budgets, err := s.ListBudgets(year, month)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.BudgetDashboard{
		Year:               year,
		Month:              month,
		TotalBudget:        decimal.Zero,
		TotalSpending:      decimal.Zero,
		RemainingBudget:    decimal.Zero,
		SpendingPercentage: decimal.Zero,
		Health:             domain.BudgetStatusOK,
		Alerts:             make([]*domain.BudgetAlert, 0),
	}

	for _, b := range budgets {
		dashboard.TotalBudget = dashboard.TotalBudget.Add(b.MonthlyLimit)
		dashboard.TotalSpending = dashboard.TotalSpending.Add(b.CurrentSpending)

		if b.Status != domain.BudgetStatusOK {
			dashboard.Alerts = append(dashboard.Alerts, &domain.BudgetAlert{
				CategoryName:       b.CategoryName,
				SpendingPercentage: b.SpendingPercentage,
				Status:             b.Status,
			})
		}
	}

	dashboard.RemainingBudget = dashboard.TotalBudget.Sub(dashboard.TotalSpending)

	if dashboard.TotalBudget.IsPositive() {
		health, err := summary.ClassifyBudget(dashboard.TotalSpending, dashboard.TotalBudget)
		if err != nil {
			return nil, err
		}
		dashboard.SpendingPercentage = health.Percentage
		dashboard.Health = health.Status
	}

	return dashboard, nil
}

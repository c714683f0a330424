package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/events"
	"github.com/centavo/centavo-backend/internal/observability"
	"github.com/centavo/centavo-backend/internal/summary"
	"github.com/centavo/centavo-backend/internal/websocket"
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	budgetRepo   domain.BudgetRepository
	eventPub     events.Publisher
	wsPub        websocket.EventPublisher
	metrics      *observability.Metrics
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.CategoryRepository,
	budgetRepo domain.BudgetRepository,
	eventPub events.Publisher,
	wsPub websocket.EventPublisher,
	metrics *observability.Metrics,
) *ExpenseService {
	if eventPub == nil {
		eventPub = events.NoOpPublisher{}
	}
	if wsPub == nil {
		wsPub = &websocket.NoOpPublisher{}
	}
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		eventPub:     eventPub,
		wsPub:        wsPub,
		metrics:      metrics,
	}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	CategoryID  *int32
	OccurredAt  time.Time
	ReceiptURL  *string
}

// CreateExpense creates a new expense. When the expense lands in a budgeted
// category it also re-checks that category's budget and raises an alert if a
// threshold was crossed.
func (s *ExpenseService) CreateExpense(input CreateExpenseInput) (*domain.Expense, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrNameTooLong
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	var categoryName string
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		categoryName = category.Name
	}

	expense, err := s.expenseRepo.Create(&domain.Expense{
		Amount:       input.Amount.Round(2),
		Description:  description,
		CategoryID:   input.CategoryID,
		CategoryName: categoryName,
		OccurredAt:   occurredAt,
		ReceiptURL:   input.ReceiptURL,
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrExpenseCreated()
	}

	ctx := context.Background()
	if err := s.eventPub.PublishExpenseCreated(ctx, expense.ID, expense.CategoryName, domain.FormatAmount(expense.Amount)); err != nil {
		log.Warn().Err(err).Int32("expense_id", expense.ID).Msg("Failed to publish expense created event")
	} else if s.metrics != nil {
		s.metrics.IncrEventPublished("expense.created")
	}
	s.wsPub.Publish(websocket.ExpenseCreated(expense))

	s.checkBudgetAlert(ctx, expense)

	return expense, nil
}

// checkBudgetAlert re-classifies the budget of the expense's category for the
// month the expense occurred in, and raises an alert when the status is not ok.
func (s *ExpenseService) checkBudgetAlert(ctx context.Context, expense *domain.Expense) {
	if expense.CategoryID == nil {
		return
	}

	occurred := expense.OccurredAt.UTC()
	year, month := occurred.Year(), int(occurred.Month())

	budget, err := s.budgetRepo.GetByCategoryAndMonth(*expense.CategoryID, year, month)
	if err != nil {
		return // no budget for this category and month
	}

	spending, err := s.expenseRepo.SumByCategoryAndMonth(*expense.CategoryID, year, month)
	if err != nil {
		log.Warn().Err(err).Int32("category_id", *expense.CategoryID).Msg("Failed to sum category spending")
		return
	}

	health, err := summary.ClassifyBudget(spending, budget.MonthlyLimit)
	if err != nil || health.Status == domain.BudgetStatusOK {
		return
	}

	alert := events.NewBudgetAlertMessage(
		expense.CategoryName,
		health.Percentage.StringFixed(2),
		string(health.Status),
		int32(year),
		int32(month),
	)
	if err := s.eventPub.PublishBudgetAlert(ctx, alert); err != nil {
		log.Warn().Err(err).Str("category", expense.CategoryName).Msg("Failed to publish budget alert")
	} else if s.metrics != nil {
		s.metrics.IncrEventPublished("budget.alert")
	}
	s.wsPub.Publish(websocket.BudgetAlert(alert))

	if s.metrics != nil {
		s.metrics.IncrBudgetAlert(string(health.Status))
	}
}

// ListExpenses retrieves expenses, optionally limited to a date range
func (s *ExpenseService) ListExpenses(from, to *time.Time) ([]*domain.Expense, error) {
	if from != nil && to != nil {
		if to.Before(*from) {
			return nil, domain.ErrInvalidDateRange
		}
		return s.expenseRepo.GetByDateRange(*from, *to)
	}
	return s.expenseRepo.GetAll()
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(id int32) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(id int32) error {
	expense, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(id); err != nil {
		return err
	}
	s.wsPub.Publish(websocket.ExpenseDeleted(expense))
	return nil
}

// GroupedExpenses groups expenses by category in first-seen order, optionally
// limited to a date range
func (s *ExpenseService) GroupedExpenses(from, to *time.Time) ([]*domain.CategoryGroup, error) {
	expenses, err := s.ListExpenses(from, to)
	if err != nil {
		return nil, err
	}
	return summary.GroupByCategory(expenses)
}

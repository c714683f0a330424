package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/util"
	"github.com/centavo/centavo-backend/internal/websocket"
)

// dueSoonWindow is how many days ahead a recurring expense counts as due soon
const dueSoonWindow = 3

// RecurringService handles recurring expense business logic
type RecurringService struct {
	recurringRepo domain.RecurringExpenseRepository
	categoryRepo  domain.CategoryRepository
	expenseSvc    *ExpenseService
	wsPub         websocket.EventPublisher
	now           func() time.Time
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(
	recurringRepo domain.RecurringExpenseRepository,
	categoryRepo domain.CategoryRepository,
	expenseSvc *ExpenseService,
	wsPub websocket.EventPublisher,
) *RecurringService {
	if wsPub == nil {
		wsPub = &websocket.NoOpPublisher{}
	}
	return &RecurringService{
		recurringRepo: recurringRepo,
		categoryRepo:  categoryRepo,
		expenseSvc:    expenseSvc,
		wsPub:         wsPub,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateRecurringInput holds the input for creating a recurring expense
type CreateRecurringInput struct {
	Description string
	Amount      decimal.Decimal
	CategoryID  int32
	Frequency   domain.Frequency
	StartDate   time.Time
	EndDate     *time.Time
}

// CreateRecurring creates a new recurring expense schedule
func (s *RecurringService) CreateRecurring(input CreateRecurringInput) (*domain.RecurringExpense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrNameRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrNameTooLong
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if !domain.ValidFrequency(input.Frequency) {
		return nil, domain.ErrInvalidFrequency
	}

	if input.StartDate.IsZero() {
		return nil, domain.ErrInvalidDateRange
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	re, err := s.recurringRepo.Create(&domain.RecurringExpense{
		Description:  description,
		Amount:       input.Amount.Round(2),
		CategoryID:   input.CategoryID,
		CategoryName: category.Name,
		Frequency:    input.Frequency,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		NextDueDate:  input.StartDate,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.wsPub.Publish(websocket.RecurringCreated(re))
	return re, nil
}

// ListRecurring retrieves all recurring expenses, optionally active only
func (s *RecurringService) ListRecurring(activeOnly bool) ([]*domain.RecurringExpense, error) {
	all, err := s.recurringRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return all, nil
	}

	out := make([]*domain.RecurringExpense, 0, len(all))
	for _, re := range all {
		if re.IsActive {
			out = append(out, re)
		}
	}
	return out, nil
}

// GetRecurring retrieves a recurring expense by ID
func (s *RecurringService) GetRecurring(id int32) (*domain.RecurringExpense, error) {
	return s.recurringRepo.GetByID(id)
}

// UpdateRecurringInput holds the input for updating a recurring expense
type UpdateRecurringInput struct {
	Description string
	Amount      decimal.Decimal
	CategoryID  int32
	Frequency   domain.Frequency
	EndDate     *time.Time
	IsActive    bool
}

// UpdateRecurring updates an existing recurring expense
func (s *RecurringService) UpdateRecurring(id int32, input UpdateRecurringInput) (*domain.RecurringExpense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrNameRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidFrequency(input.Frequency) {
		return nil, domain.ErrInvalidFrequency
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	existing, err := s.recurringRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.EndDate != nil && input.EndDate.Before(existing.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	existing.Description = description
	existing.Amount = input.Amount.Round(2)
	existing.CategoryID = input.CategoryID
	existing.CategoryName = category.Name
	existing.Frequency = input.Frequency
	existing.EndDate = input.EndDate
	existing.IsActive = input.IsActive

	updated, err := s.recurringRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	s.wsPub.Publish(websocket.RecurringUpdated(updated))
	return updated, nil
}

// DeleteRecurring removes a recurring expense
func (s *RecurringService) DeleteRecurring(id int32) error {
	re, err := s.recurringRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.recurringRepo.Delete(id); err != nil {
		return err
	}
	s.wsPub.Publish(websocket.RecurringDeleted(re))
	return nil
}

// GenerateNow materializes the next occurrence of a recurring expense as a
// real expense and advances the schedule. The schedule is deactivated when
// the advanced due date passes its end date.
func (s *RecurringService) GenerateNow(id int32) (*domain.Expense, error) {
	re, err := s.recurringRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !re.IsActive {
		return nil, domain.ErrRecurringInactive
	}

	categoryID := re.CategoryID
	expense, err := s.expenseSvc.CreateExpense(CreateExpenseInput{
		Amount:      re.Amount,
		Description: re.Description,
		CategoryID:  &categoryID,
		OccurredAt:  re.NextDueDate,
	})
	if err != nil {
		return nil, err
	}

	re.NextDueDate = NextOccurrence(re.NextDueDate, re.Frequency)
	if re.EndDate != nil && re.NextDueDate.After(*re.EndDate) {
		re.IsActive = false
	}

	updated, err := s.recurringRepo.Update(re)
	if err != nil {
		return nil, err
	}

	s.wsPub.Publish(websocket.RecurringGenerated(updated))
	return expense, nil
}

// Dashboard summarizes the recurring expense list: active and overdue counts
// plus the normalized monthly impact of all active schedules
func (s *RecurringService) Dashboard() (*domain.RecurringDashboard, error) {
	all, err := s.recurringRepo.GetAll()
	if err != nil {
		return nil, err
	}

	now := s.now()
	dashboard := &domain.RecurringDashboard{
		MonthlyImpact: decimal.Zero,
	}
	for _, re := range all {
		if !re.IsActive {
			continue
		}
		dashboard.ActiveCount++
		if DueStatusFor(re, now) == domain.DueStatusOverdue {
			dashboard.OverdueCount++
		}
		dashboard.MonthlyImpact = dashboard.MonthlyImpact.Add(MonthlyImpact(re.Amount, re.Frequency))
	}
	dashboard.MonthlyImpact = dashboard.MonthlyImpact.Round(2)

	return dashboard, nil
}

// DueStatusFor classifies how close a recurring expense is to its next due
// date, compared by UTC calendar day
func DueStatusFor(re *domain.RecurringExpense, now time.Time) domain.DueStatus {
	if !re.IsActive {
		return domain.DueStatusInactive
	}

	today := dayOf(now)
	due := dayOf(re.NextDueDate)

	switch {
	case due.Before(today):
		return domain.DueStatusOverdue
	case due.Equal(today):
		return domain.DueStatusDueToday
	case !due.After(today.AddDate(0, 0, dueSoonWindow)):
		return domain.DueStatusDueSoon
	default:
		return domain.DueStatusScheduled
	}
}

// NextOccurrence advances a due date by one period. Month-based frequencies
// clamp to the last day of shorter months (Jan 31 -> Feb 28).
func NextOccurrence(due time.Time, frequency domain.Frequency) time.Time {
	due = due.UTC()
	switch frequency {
	case domain.FrequencyWeekly:
		return due.AddDate(0, 0, 7)
	case domain.FrequencyBiWeekly:
		return due.AddDate(0, 0, 14)
	case domain.FrequencyMonthly:
		return advanceMonths(due, 1)
	case domain.FrequencyQuarterly:
		return advanceMonths(due, 3)
	default: // yearly
		return advanceMonths(due, 12)
	}
}

func advanceMonths(due time.Time, months int) time.Time {
	year, month, day := due.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	return util.ClampedDate(target.Year(), target.Month(), day)
}

// MonthlyImpact normalizes a recurring amount to its average monthly cost
func MonthlyImpact(amount decimal.Decimal, frequency domain.Frequency) decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	switch frequency {
	case domain.FrequencyWeekly:
		return amount.Mul(decimal.NewFromInt(52)).Div(twelve)
	case domain.FrequencyBiWeekly:
		return amount.Mul(decimal.NewFromInt(26)).Div(twelve)
	case domain.FrequencyMonthly:
		return amount
	case domain.FrequencyQuarterly:
		return amount.Div(decimal.NewFromInt(3))
	default: // yearly
		return amount.Div(twelve)
	}
}

func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

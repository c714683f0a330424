package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/websocket"
)

// IncomeService handles income business logic
type IncomeService struct {
	incomeRepo domain.IncomeRepository
	wsPub      websocket.EventPublisher
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo domain.IncomeRepository, wsPub websocket.EventPublisher) *IncomeService {
	if wsPub == nil {
		wsPub = &websocket.NoOpPublisher{}
	}
	return &IncomeService{
		incomeRepo: incomeRepo,
		wsPub:      wsPub,
	}
}

// CreateIncomeInput holds the input for creating an income
type CreateIncomeInput struct {
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
}

// CreateIncome creates a new income record
func (s *IncomeService) CreateIncome(input CreateIncomeInput) (*domain.Income, error) {
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

	income, err := s.incomeRepo.Create(&domain.Income{
		Amount:      input.Amount.Round(2),
		Description: description,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return nil, err
	}

	s.wsPub.Publish(websocket.IncomeCreated(income))
	return income, nil
}

// ListIncomes retrieves incomes, optionally limited to a date range
func (s *IncomeService) ListIncomes(from, to *time.Time) ([]*domain.Income, error) {
	if from != nil && to != nil {
		if to.Before(*from) {
			return nil, domain.ErrInvalidDateRange
		}
		return s.incomeRepo.GetByDateRange(*from, *to)
	}
	return s.incomeRepo.GetAll()
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
)

// IncomeHandler handles income HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest represents the create income request body
type CreateIncomeRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	OccurredAt  string `json:"occurred_at,omitempty"`
}

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID          int32  `json:"id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	OccurredAt  string `json:"occurred_at"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// IncomeListResponse represents the list response
type IncomeListResponse struct {
	Data []IncomeResponse `json:"data"`
}

// CreateIncome handles POST /api/v1/incomes
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	var req CreateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a positive decimal number"},
		})
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		occurredAt, err = parseDate(req.OccurredAt)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "occurred_at", Message: "Must be YYYY-MM-DD or RFC 3339"},
			})
		}
	}

	income, err := h.incomeService.CreateIncome(service.CreateIncomeInput{
		Amount:      amount,
		Description: req.Description,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description must be 1000 characters or less"},
			})
		}
		log.Error().Err(err).Msg("Failed to create income")
		return NewInternalError(c, "Failed to create income")
	}

	log.Info().Int32("income_id", income.ID).Str("amount", income.Amount.StringFixed(2)).Msg("Income created")

	return c.JSON(http.StatusCreated, toIncomeResponse(income))
}

// GetIncomes handles GET /api/v1/incomes
func (h *IncomeHandler) GetIncomes(c echo.Context) error {
	from, to, err := parseRangeParams(c)
	if err != nil {
		return NewValidationError(c, "Invalid date range", nil)
	}

	incomes, err := h.incomeService.ListIncomes(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid date range", nil)
		}
		log.Error().Err(err).Msg("Failed to get incomes")
		return NewInternalError(c, "Failed to get incomes")
	}

	response := make([]IncomeResponse, len(incomes))
	for i, income := range incomes {
		response[i] = toIncomeResponse(income)
	}

	return c.JSON(http.StatusOK, IncomeListResponse{Data: response})
}

func toIncomeResponse(income *domain.Income) IncomeResponse {
	return IncomeResponse{
		ID:          income.ID,
		Amount:      income.Amount.StringFixed(2),
		Description: income.Description,
		OccurredAt:  income.OccurredAt.UTC().Format(time.RFC3339),
		CreatedAt:   income.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   income.UpdatedAt.Format(time.RFC3339),
	}
}

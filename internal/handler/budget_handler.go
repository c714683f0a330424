package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	CategoryID   int32  `json:"category_id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	MonthlyLimit string `json:"monthly_limit"`
}

// UpdateBudgetRequest represents the update budget request body
type UpdateBudgetRequest struct {
	MonthlyLimit string `json:"monthly_limit"`
}

// BudgetResponse represents a stored budget in API responses
type BudgetResponse struct {
	ID           int32  `json:"id"`
	CategoryID   int32  `json:"category_id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	MonthlyLimit string `json:"monthly_limit"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// BudgetStatusResponse decorates a budget with its derived spending state
type BudgetStatusResponse struct {
	BudgetResponse
	CategoryName       string `json:"category_name"`
	CurrentSpending    string `json:"current_spending"`
	SpendingPercentage string `json:"spending_percentage"`
	RemainingBudget    string `json:"remaining_budget"`
	Status             string `json:"status"`
}

// BudgetListResponse represents the list response
type BudgetListResponse struct {
	Data []BudgetStatusResponse `json:"data"`
}

// BudgetAlertResponse represents one budget whose status is not ok
type BudgetAlertResponse struct {
	CategoryName       string `json:"category_name"`
	SpendingPercentage string `json:"spending_percentage"`
	Status             string `json:"status"`
}

// BudgetDashboardResponse aggregates all budgets of a month
type BudgetDashboardResponse struct {
	Year               int                   `json:"year"`
	Month              int                   `json:"month"`
	TotalBudget        string                `json:"total_budget"`
	TotalSpending      string                `json:"total_spending"`
	RemainingBudget    string                `json:"remaining_budget"`
	SpendingPercentage string                `json:"spending_percentage"`
	BudgetHealth       string                `json:"budget_health"`
	Alerts             []BudgetAlertResponse `json:"alerts"`
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := domain.ParseAmount(req.MonthlyLimit)
	if err != nil {
		return NewValidationError(c, "Invalid monthly limit", []ValidationError{
			{Field: "monthly_limit", Message: "Must be a positive decimal number"},
		})
	}

	budget, err := h.budgetService.CreateBudget(service.CreateBudgetInput{
		CategoryID:   req.CategoryID,
		Year:         req.Year,
		Month:        req.Month,
		MonthlyLimit: limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthly_limit", Message: "Limit must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category_id", Message: "Category not found"},
			})
		}
		if errors.Is(err, domain.ErrBudgetAlreadyExists) {
			return NewConflictError(c, "A budget for this category and month already exists")
		}
		log.Error().Err(err).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Int32("budget_id", budget.ID).Int32("category_id", budget.CategoryID).
		Int("year", budget.Year).Int("month", budget.Month).Msg("Budget created")

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	year, month, err := parseYearMonthParams(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	budgets, err := h.budgetService.ListBudgets(year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid year or month", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetStatusResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetStatusResponse(budget)
	}

	return c.JSON(http.StatusOK, BudgetListResponse{Data: response})
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	limit, err := domain.ParseAmount(req.MonthlyLimit)
	if err != nil {
		return NewValidationError(c, "Invalid monthly limit", []ValidationError{
			{Field: "monthly_limit", Message: "Must be a positive decimal number"},
		})
	}

	budget, err := h.budgetService.UpdateBudgetLimit(int32(id), limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthly_limit", Message: "Limit must be positive"},
			})
		}
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Int("budget_id", id).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Int32("budget_id", budget.ID).Str("monthly_limit", budget.MonthlyLimit.StringFixed(2)).Msg("Budget updated")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(int32(id)); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Int("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Int("budget_id", id).Msg("Budget deleted")

	return c.NoContent(http.StatusNoContent)
}

// GetDashboard handles GET /api/v1/budgets/dashboard
func (h *BudgetHandler) GetDashboard(c echo.Context) error {
	year, month, err := parseYearMonthParams(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	dashboard, err := h.budgetService.Dashboard(year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid year or month", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to build budget dashboard")
		return NewInternalError(c, "Failed to build budget dashboard")
	}

	alerts := make([]BudgetAlertResponse, len(dashboard.Alerts))
	for i, alert := range dashboard.Alerts {
		alerts[i] = BudgetAlertResponse{
			CategoryName:       alert.CategoryName,
			SpendingPercentage: alert.SpendingPercentage.StringFixed(2),
			Status:             string(alert.Status),
		}
	}

	return c.JSON(http.StatusOK, BudgetDashboardResponse{
		Year:               dashboard.Year,
		Month:              dashboard.Month,
		TotalBudget:        dashboard.TotalBudget.StringFixed(2),
		TotalSpending:      dashboard.TotalSpending.StringFixed(2),
		RemainingBudget:    dashboard.RemainingBudget.StringFixed(2),
		SpendingPercentage: dashboard.SpendingPercentage.StringFixed(2),
		BudgetHealth:       string(dashboard.Health),
		Alerts:             alerts,
	})
}

func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           budget.ID,
		CategoryID:   budget.CategoryID,
		Year:         budget.Year,
		Month:        budget.Month,
		MonthlyLimit: budget.MonthlyLimit.StringFixed(2),
		CreatedAt:    budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    budget.UpdatedAt.Format(time.RFC3339),
	}
}

func toBudgetStatusResponse(budget *domain.BudgetWithStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		BudgetResponse:     toBudgetResponse(&budget.Budget),
		CategoryName:       budget.CategoryName,
		CurrentSpending:    budget.CurrentSpending.StringFixed(2),
		SpendingPercentage: budget.SpendingPercentage.StringFixed(2),
		RemainingBudget:    budget.RemainingBudget.StringFixed(2),
		Status:             string(budget.Status),
	}
}

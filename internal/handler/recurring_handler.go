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

// RecurringHandler handles recurring expense HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringRequest represents the create recurring expense request body
type CreateRecurringRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CategoryID  int32  `json:"category_id"`
	Frequency   string `json:"frequency"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
}

// UpdateRecurringRequest represents the update recurring expense request body
type UpdateRecurringRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CategoryID  int32  `json:"category_id"`
	Frequency   string `json:"frequency"`
	EndDate     string `json:"end_date,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// RecurringResponse represents a recurring expense in API responses
type RecurringResponse struct {
	ID           int32  `json:"id"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	CategoryID   int32  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	NextDueDate  string `json:"next_due_date"`
	DueStatus    string `json:"due_status"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// RecurringListResponse represents the list response
type RecurringListResponse struct {
	Data []RecurringResponse `json:"data"`
}

// RecurringDashboardResponse summarizes the recurring expense list
type RecurringDashboardResponse struct {
	ActiveCount   int    `json:"active_count"`
	OverdueCount  int    `json:"overdue_count"`
	MonthlyImpact string `json:"monthly_impact"`
}

// CreateRecurring handles POST /api/v1/recurring
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a positive decimal number"},
		})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "start_date", Message: "Must be YYYY-MM-DD or RFC 3339"},
		})
	}

	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "end_date", Message: "Must be YYYY-MM-DD or RFC 3339"},
		})
	}

	re, err := h.recurringService.CreateRecurring(service.CreateRecurringInput{
		Description: req.Description,
		Amount:      amount,
		CategoryID:  req.CategoryID,
		Frequency:   domain.Frequency(req.Frequency),
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return h.handleValidationError(c, err, "create recurring expense")
	}

	log.Info().Int32("recurring_id", re.ID).Str("frequency", string(re.Frequency)).Msg("Recurring expense created")

	return c.JSON(http.StatusCreated, h.toRecurringResponse(re))
}

// GetRecurring handles GET /api/v1/recurring
func (h *RecurringHandler) GetRecurring(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	recurring, err := h.recurringService.ListRecurring(activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get recurring expenses")
		return NewInternalError(c, "Failed to get recurring expenses")
	}

	response := make([]RecurringResponse, len(recurring))
	for i, re := range recurring {
		response[i] = h.toRecurringResponse(re)
	}

	return c.JSON(http.StatusOK, RecurringListResponse{Data: response})
}

// GetRecurringByID handles GET /api/v1/recurring/:id
func (h *RecurringHandler) GetRecurringByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	re, err := h.recurringService.GetRecurring(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		log.Error().Err(err).Int("recurring_id", id).Msg("Failed to get recurring expense")
		return NewInternalError(c, "Failed to get recurring expense")
	}

	return c.JSON(http.StatusOK, h.toRecurringResponse(re))
}

// UpdateRecurring handles PUT /api/v1/recurring/:id
func (h *RecurringHandler) UpdateRecurring(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	var req UpdateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a positive decimal number"},
		})
	}

	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "end_date", Message: "Must be YYYY-MM-DD or RFC 3339"},
		})
	}

	re, err := h.recurringService.UpdateRecurring(int32(id), service.UpdateRecurringInput{
		Description: req.Description,
		Amount:      amount,
		CategoryID:  req.CategoryID,
		Frequency:   domain.Frequency(req.Frequency),
		EndDate:     endDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		return h.handleValidationError(c, err, "update recurring expense")
	}

	log.Info().Int32("recurring_id", re.ID).Msg("Recurring expense updated")

	return c.JSON(http.StatusOK, h.toRecurringResponse(re))
}

// DeleteRecurring handles DELETE /api/v1/recurring/:id
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	if err := h.recurringService.DeleteRecurring(int32(id)); err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		log.Error().Err(err).Int("recurring_id", id).Msg("Failed to delete recurring expense")
		return NewInternalError(c, "Failed to delete recurring expense")
	}

	log.Info().Int("recurring_id", id).Msg("Recurring expense deleted")

	return c.NoContent(http.StatusNoContent)
}

// GenerateRecurring handles POST /api/v1/recurring/:id/generate
func (h *RecurringHandler) GenerateRecurring(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid recurring expense ID", nil)
	}

	expense, err := h.recurringService.GenerateNow(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring expense not found")
		}
		if errors.Is(err, domain.ErrRecurringInactive) {
			return NewConflictError(c, "Recurring expense is inactive")
		}
		log.Error().Err(err).Int("recurring_id", id).Msg("Failed to generate expense")
		return NewInternalError(c, "Failed to generate expense")
	}

	log.Info().Int("recurring_id", id).Int32("expense_id", expense.ID).Msg("Expense generated from recurring")

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetRecurringDashboard handles GET /api/v1/recurring/dashboard
func (h *RecurringHandler) GetRecurringDashboard(c echo.Context) error {
	dashboard, err := h.recurringService.Dashboard()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build recurring dashboard")
		return NewInternalError(c, "Failed to build recurring dashboard")
	}

	return c.JSON(http.StatusOK, RecurringDashboardResponse{
		ActiveCount:   dashboard.ActiveCount,
		OverdueCount:  dashboard.OverdueCount,
		MonthlyImpact: dashboard.MonthlyImpact.StringFixed(2),
	})
}

func (h *RecurringHandler) handleValidationError(c echo.Context, err error, operation string) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 1000 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidFrequency):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "frequency", Message: "Must be weekly, bi_weekly, monthly, quarterly or yearly"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "end_date", Message: "End date must not be before start date"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category_id", Message: "Category not found"},
		})
	}
	log.Error().Err(err).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}

func (h *RecurringHandler) toRecurringResponse(re *domain.RecurringExpense) RecurringResponse {
	response := RecurringResponse{
		ID:           re.ID,
		Description:  re.Description,
		Amount:       re.Amount.StringFixed(2),
		CategoryID:   re.CategoryID,
		CategoryName: re.CategoryName,
		Frequency:    string(re.Frequency),
		StartDate:    re.StartDate.UTC().Format(dateLayout),
		NextDueDate:  re.NextDueDate.UTC().Format(dateLayout),
		DueStatus:    string(service.DueStatusFor(re, time.Now().UTC())),
		IsActive:     re.IsActive,
		CreatedAt:    re.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    re.UpdatedAt.Format(time.RFC3339),
	}
	if re.EndDate != nil {
		response.EndDate = re.EndDate.UTC().Format(dateLayout)
	}
	return response
}

// parseOptionalDate parses a date string that may be empty
func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

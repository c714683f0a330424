package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the create expense request body. Amount is
// a string so clients can send "$12.34" or "12.34" without float drift.
type CreateExpenseRequest struct {
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	CategoryID  *int32  `json:"category_id,omitempty"`
	OccurredAt  string  `json:"occurred_at,omitempty"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID           int32   `json:"id"`
	Amount       string  `json:"amount"`
	Description  string  `json:"description"`
	CategoryID   *int32  `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	OccurredAt   string  `json:"occurred_at"`
	ReceiptURL   *string `json:"receipt_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ExpenseListResponse represents the list response
type ExpenseListResponse struct {
	Data []ExpenseResponse `json:"data"`
}

// CategoryGroupResponse represents one category bucket in the grouped view
type CategoryGroupResponse struct {
	CategoryName string            `json:"category_name"`
	Expenses     []ExpenseResponse `json:"expenses"`
	Subtotal     string            `json:"subtotal"`
}

// GroupedExpensesResponse represents the grouped expense view. Total is the
// sum of all subtotals, which equals the period total.
type GroupedExpensesResponse struct {
	Groups []CategoryGroupResponse `json:"groups"`
	Total  string                  `json:"total"`
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req CreateExpenseRequest
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

	expense, err := h.expenseService.CreateExpense(service.CreateExpenseInput{
		Amount:      amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		OccurredAt:  occurredAt,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		return h.handleServiceError(c, err, "create expense")
	}

	log.Info().Int32("expense_id", expense.ID).Str("amount", expense.Amount.StringFixed(2)).Msg("Expense created")

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	from, to, err := parseRangeParams(c)
	if err != nil {
		return NewValidationError(c, "Invalid date range", []ValidationError{
			{Field: "from", Message: "Dates must be YYYY-MM-DD and from must not be after to"},
		})
	}

	expenses, err := h.expenseService.ListExpenses(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid date range", nil)
		}
		log.Error().Err(err).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = toExpenseResponse(expense)
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{Data: response})
}

// GetGroupedExpenses handles GET /api/v1/expenses/grouped
func (h *ExpenseHandler) GetGroupedExpenses(c echo.Context) error {
	from, to, err := parseRangeParams(c)
	if err != nil {
		return NewValidationError(c, "Invalid date range", nil)
	}

	groups, err := h.expenseService.GroupedExpenses(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Invalid date range", nil)
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			log.Error().Err(err).Msg("Stored expense with invalid amount")
			return NewInternalError(c, "Stored data is inconsistent")
		}
		log.Error().Err(err).Msg("Failed to group expenses")
		return NewInternalError(c, "Failed to group expenses")
	}

	total := decimal.Zero
	response := GroupedExpensesResponse{Groups: make([]CategoryGroupResponse, len(groups))}
	for i, group := range groups {
		expenses := make([]ExpenseResponse, len(group.Expenses))
		for j, expense := range group.Expenses {
			expenses[j] = toExpenseResponse(expense)
		}
		response.Groups[i] = CategoryGroupResponse{
			CategoryName: group.CategoryName,
			Expenses:     expenses,
			Subtotal:     group.Subtotal.StringFixed(2),
		}
		total = total.Add(group.Subtotal)
	}
	response.Total = total.StringFixed(2)

	return c.JSON(http.StatusOK, response)
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.expenseService.GetExpense(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to get expense")
		return NewInternalError(c, "Failed to get expense")
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(int32(id)); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Int("expense_id", id).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Int("expense_id", id).Msg("Expense deleted")

	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) handleServiceError(c echo.Context, err error, operation string) error {
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
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category_id", Message: "Category not found"},
		})
	}
	log.Error().Err(err).Str("operation", operation).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           expense.ID,
		Amount:       expense.Amount.StringFixed(2),
		Description:  expense.Description,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		OccurredAt:   expense.OccurredAt.UTC().Format(time.RFC3339),
		ReceiptURL:   expense.ReceiptURL,
		CreatedAt:    expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    expense.UpdatedAt.Format(time.RFC3339),
	}
}

// parseDate accepts a bare calendar date or a full RFC 3339 timestamp
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// parseRangeParams reads optional from/to query params. Both must be present
// to filter by range.
func parseRangeParams(c echo.Context) (*time.Time, *time.Time, error) {
	fromParam := c.QueryParam("from")
	toParam := c.QueryParam("to")
	if fromParam == "" && toParam == "" {
		return nil, nil, nil
	}
	if fromParam == "" || toParam == "" {
		return nil, nil, domain.ErrInvalidDateRange
	}

	from, err := parseDate(fromParam)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDate(toParam)
	if err != nil {
		return nil, nil, err
	}
	return &from, &to, nil
}

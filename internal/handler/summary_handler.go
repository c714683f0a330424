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

// SummaryHandler handles summary HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// SummaryResponse represents the income/expense picture of a period
type SummaryResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Remaining    string `json:"remaining"`
	HealthTier   string `json:"health_tier"`
}

// GetPeriodSummary handles GET /api/v1/summary
func (h *SummaryHandler) GetPeriodSummary(c echo.Context) error {
	fromParam := c.QueryParam("from")
	toParam := c.QueryParam("to")
	if fromParam == "" || toParam == "" {
		return NewValidationError(c, "Missing date range", []ValidationError{
			{Field: "from", Message: "Both from and to are required"},
		})
	}

	from, err := parseDate(fromParam)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "from", Message: "Must be YYYY-MM-DD or RFC 3339"},
		})
	}
	to, err := parseDate(toParam)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "to", Message: "Must be YYYY-MM-DD or RFC 3339"},
		})
	}

	summary, err := h.summaryService.PeriodSummary(from, to)
	if err != nil {
		return h.handleSummaryError(c, err)
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// GetMonthSummary handles GET /api/v1/summary/monthly
func (h *SummaryHandler) GetMonthSummary(c echo.Context) error {
	year, month, err := parseYearMonthParams(c)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", []ValidationError{
			{Field: "month", Message: "Year and month must be integers, month between 1 and 12"},
		})
	}

	summary, err := h.summaryService.MonthSummary(year, month)
	if err != nil {
		return h.handleSummaryError(c, err)
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

func (h *SummaryHandler) handleSummaryError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidDateRange) {
		return NewValidationError(c, "Invalid date range", []ValidationError{
			{Field: "from", Message: "Both from and to must be valid dates"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAmount) {
		log.Error().Err(err).Msg("Stored record with invalid amount")
		return NewInternalError(c, "Stored data is inconsistent")
	}
	log.Error().Err(err).Msg("Failed to build summary")
	return NewInternalError(c, "Failed to build summary")
}

func toSummaryResponse(summary *domain.PeriodSummary) SummaryResponse {
	return SummaryResponse{
		From:         summary.From.UTC().Format(dateLayout),
		To:           summary.To.UTC().Format(dateLayout),
		TotalIncome:  summary.TotalIncome.StringFixed(2),
		TotalExpense: summary.TotalExpense.StringFixed(2),
		Remaining:    summary.Remaining.StringFixed(2),
		HealthTier:   string(summary.HealthTier),
	}
}

// parseYearMonthParams reads year/month query params, defaulting to the
// current UTC month when both are absent.
func parseYearMonthParams(c echo.Context) (int, int, error) {
	yearParam := c.QueryParam("year")
	monthParam := c.QueryParam("month")
	if yearParam == "" && monthParam == "" {
		now := time.Now().UTC()
		return now.Year(), int(now.Month()), nil
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(monthParam)
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

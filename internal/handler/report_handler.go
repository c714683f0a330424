package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/centavo/centavo-backend/internal/service"
)

// ReportHandler handles yearly report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyRowResponse represents one month of the yearly report
type MonthlyRowResponse struct {
	Month            int    `json:"month"`
	Total            string `json:"total"`
	TransactionCount int    `json:"transaction_count"`
}

// YearlyReportResponse represents the dense twelve-row yearly report
type YearlyReportResponse struct {
	Year   int                  `json:"year"`
	Months []MonthlyRowResponse `json:"months"`
}

// GetYearlyReport handles GET /api/v1/reports/yearly
func (h *ReportHandler) GetYearlyReport(c echo.Context) error {
	year, err := parseYearParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Must be an integer"},
		})
	}

	rows, err := h.reportService.YearlyReport(year)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("Failed to build yearly report")
		return NewInternalError(c, "Failed to build yearly report")
	}

	months := make([]MonthlyRowResponse, len(rows))
	for i, row := range rows {
		months[i] = MonthlyRowResponse{
			Month:            row.Month,
			Total:            row.Total.StringFixed(2),
			TransactionCount: row.TransactionCount,
		}
	}

	return c.JSON(http.StatusOK, YearlyReportResponse{Year: year, Months: months})
}

// ExportYearlyCSV handles GET /api/v1/reports/yearly/csv
func (h *ReportHandler) ExportYearlyCSV(c echo.Context) error {
	year, err := parseYearParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Must be an integer"},
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="yearly-report-`+strconv.Itoa(year)+`.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.reportService.WriteYearlyCSV(year, c.Response()); err != nil {
		log.Error().Err(err).Int("year", year).Msg("Failed to export yearly report")
		return err
	}

	return nil
}

func parseYearParam(c echo.Context) (int, error) {
	yearParam := c.QueryParam("year")
	if yearParam == "" {
		return time.Now().UTC().Year(), nil
	}
	return strconv.Atoi(yearParam)
}

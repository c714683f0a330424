package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/centavo/centavo-backend/internal/service"
)

// ReceiptHandler handles receipt upload and scan HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ScanDraftResponse represents the expense draft extracted from a receipt
type ScanDraftResponse struct {
	Merchant string `json:"merchant,omitempty"`
	Total    string `json:"total,omitempty"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category,omitempty"`
}

// UploadReceiptResponse represents a processed receipt upload
type UploadReceiptResponse struct {
	ReceiptURL string             `json:"receipt_url"`
	DisplayURL string             `json:"display_url"`
	Draft      *ScanDraftResponse `json:"draft,omitempty"`
}

// UploadReceipt handles POST /api/v1/receipts
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	// Storage may be unconfigured in local setups; fail before touching the form.
	if h.receiptService == nil || !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	upload, err := h.receiptService.ProcessAndScan(c.Request().Context(), data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiptTooLarge):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "File too large. Maximum size is 5MB"},
			})
		case errors.Is(err, service.ErrInvalidReceiptFormat):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid format. Supported: JPEG, PNG, WebP"},
			})
		case errors.Is(err, service.ErrReceiptTooSmall):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Image too small. Minimum 50x50 pixels"},
			})
		case errors.Is(err, service.ErrInvalidReceiptData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: "Invalid image data"},
			})
		default:
			log.Error().Err(err).Msg("Failed to upload receipt")
			return NewInternalError(c, "Failed to upload receipt")
		}
	}

	log.Info().
		Str("receipt_url", upload.ReceiptURL).
		Bool("scanned", upload.Draft != nil).
		Msg("Receipt uploaded")

	response := UploadReceiptResponse{
		ReceiptURL: upload.ReceiptURL,
		DisplayURL: upload.DisplayURL,
	}
	if upload.Draft != nil {
		response.Draft = &ScanDraftResponse{
			Merchant: upload.Draft.Merchant,
			Total:    upload.Draft.Total,
			Date:     upload.Draft.Date,
			Category: upload.Draft.Category,
		}
	}

	return c.JSON(http.StatusCreated, response)
}

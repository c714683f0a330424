package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp" // register WebP decoding for image.Decode

	"github.com/centavo/centavo-backend/internal/observability"
	"github.com/centavo/centavo-backend/internal/ocr"
	"github.com/centavo/centavo-backend/internal/repository/storage"
)

const (
	MaxReceiptSize     = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth    = 50
	MinReceiptHeight   = 50
	DisplayWidth       = 800
	ReceiptJPEGQuality = 85
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrReceiptTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidReceiptData          = errors.New("invalid image data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
)

// AllowedReceiptExtensions maps extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptUpload is the result of storing a receipt image and scanning it.
// Draft is nil when the scan service was unavailable; the upload itself still
// succeeds so the user can type the expense in manually.
type ReceiptUpload struct {
	ReceiptURL string          `json:"receiptUrl"`
	DisplayURL string          `json:"displayUrl"`
	Draft      *ocr.ScanResult `json:"draft,omitempty"`
}

// ReceiptService stores receipt images and extracts expense drafts from them
type ReceiptService struct {
	store   storage.ReceiptStore
	scanner *ocr.Client
	metrics *observability.Metrics
}

// NewReceiptService creates a new ReceiptService. scanner may be nil when no
// OCR service is configured.
func NewReceiptService(store storage.ReceiptStore, scanner *ocr.Client, metrics *observability.Metrics) *ReceiptService {
	return &ReceiptService{
		store:   store,
		scanner: scanner,
		metrics: metrics,
	}
}

// IsEnabled indicates whether uploads are supported (storage configured).
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// validateAndDecode validates the receipt image and returns the decoded image
func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}

	return img, nil
}

// ProcessAndScan validates and stores the receipt (original plus a resized
// display variant) and asks the scan service for an expense draft. A scan
// failure degrades gracefully: the stored URLs are returned with a nil draft.
func (s *ReceiptService) ProcessAndScan(ctx context.Context, data []byte, filename string) (*ReceiptUpload, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	contentType := receiptContentType(filename)
	ext := strings.ToLower(filepath.Ext(filename))

	originalPath := storage.GenerateObjectPath("original", ext)
	originalURL, err := s.store.Upload(ctx, originalPath, bytes.NewReader(data), contentType, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("upload original: %w", err)
	}

	display := img
	if img.Bounds().Dx() > DisplayWidth {
		display = imaging.Resize(img, DisplayWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, display, &jpeg.Options{Quality: ReceiptJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode display variant: %w", err)
	}

	displayPath := storage.GenerateObjectPath("display", ".jpg")
	displayURL, err := s.store.Upload(ctx, displayPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		// Best effort cleanup of the original
		_ = s.store.Delete(ctx, originalPath)
		return nil, fmt.Errorf("upload display variant: %w", err)
	}

	upload := &ReceiptUpload{
		ReceiptURL: originalURL,
		DisplayURL: displayURL,
	}

	if s.scanner != nil {
		draft, err := s.scanner.Scan(ctx, data, contentType)
		if err != nil {
			log.Warn().Err(err).Msg("Receipt scan unavailable, returning upload without draft")
			if s.metrics != nil {
				s.metrics.IncrScanRequest("failure")
			}
		} else {
			upload.Draft = draft
			if s.metrics != nil {
				s.metrics.IncrScanRequest("success")
			}
		}
	}

	return upload, nil
}

// DeleteReceipt removes a stored receipt object
func (s *ReceiptService) DeleteReceipt(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrReceiptStorageNotConfigured
	}
	return s.store.Delete(ctx, objectPath)
}

// receiptContentType returns the content type for a receipt filename
func receiptContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedReceiptExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

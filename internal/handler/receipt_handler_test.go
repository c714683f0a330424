package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/centavo/centavo-backend/internal/service"
)

// stubReceiptStore keeps uploads in memory
type stubReceiptStore struct {
	uploads map[string][]byte
}

func newStubReceiptStore() *stubReceiptStore {
	return &stubReceiptStore{uploads: make(map[string][]byte)}
}

func (s *stubReceiptStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.uploads[objectPath] = buf
	return "https://cdn.test/" + objectPath, nil
}

func (s *stubReceiptStore) Delete(ctx context.Context, objectPath string) error {
	delete(s.uploads, objectPath)
	return nil
}

func (s *stubReceiptStore) PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://cdn.test/" + objectPath + "?signed", nil
}

// receiptPNG creates a valid PNG of the given size
func receiptPNG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// receiptForm builds a multipart form with one file field
func receiptForm(filename string, data []byte) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(data)
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadReceipt_Success(t *testing.T) {
	e := echo.New()
	store := newStubReceiptStore()
	receiptService := service.NewReceiptService(store, nil, nil)
	handler := NewReceiptHandler(receiptService)

	body, contentType := receiptForm("receipt.png", receiptPNG(100, 150))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UploadReceipt(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response UploadReceiptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.ReceiptURL == "" || response.DisplayURL == "" {
		t.Error("Expected both receipt and display URLs")
	}

	if response.Draft != nil {
		t.Error("Expected no draft without a scanner configured")
	}

	if len(store.uploads) != 2 {
		t.Errorf("Expected 2 stored objects, got %d", len(store.uploads))
	}
}

func TestUploadReceipt_StorageNotConfigured(t *testing.T) {
	e := echo.New()
	receiptService := service.NewReceiptService(nil, nil, nil)
	handler := NewReceiptHandler(receiptService)

	body, contentType := receiptForm("receipt.png", receiptPNG(100, 150))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UploadReceipt(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}

func TestUploadReceipt_NoFile(t *testing.T) {
	e := echo.New()
	store := newStubReceiptStore()
	receiptService := service.NewReceiptService(store, nil, nil)
	handler := NewReceiptHandler(receiptService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UploadReceipt(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUploadReceipt_TooSmall(t *testing.T) {
	e := echo.New()
	store := newStubReceiptStore()
	receiptService := service.NewReceiptService(store, nil, nil)
	handler := NewReceiptHandler(receiptService)

	body, contentType := receiptForm("receipt.png", receiptPNG(20, 20))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UploadReceipt(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problemDetails ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problemDetails); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(problemDetails.Errors) != 1 || problemDetails.Errors[0].Field != "file" {
		t.Error("Expected validation error for 'file' field")
	}
}

func TestUploadReceipt_UnsupportedExtension(t *testing.T) {
	e := echo.New()
	store := newStubReceiptStore()
	receiptService := service.NewReceiptService(store, nil, nil)
	handler := NewReceiptHandler(receiptService)

	body, contentType := receiptForm("receipt.gif", receiptPNG(100, 100))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.UploadReceipt(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

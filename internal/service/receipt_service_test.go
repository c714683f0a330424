package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"
)

// memReceiptStore is an in-memory ReceiptStore for tests
type memReceiptStore struct {
	objects map[string][]byte
	failOn  string
}

func newMemReceiptStore() *memReceiptStore {
	return &memReceiptStore{objects: make(map[string][]byte)}
}

func (m *memReceiptStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.failOn != "" && bytes.Contains([]byte(objectPath), []byte(m.failOn)) {
		return "", errors.New("upload failed")
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.objects[objectPath] = body
	return "http://storage.local/" + objectPath, nil
}

func (m *memReceiptStore) Delete(ctx context.Context, objectPath string) error {
	delete(m.objects, objectPath)
	return nil
}

func (m *memReceiptStore) PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "http://storage.local/" + objectPath + "?signed", nil
}

// testReceiptImage renders a small valid PNG
func testReceiptImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessAndScan_UploadsBothVariants(t *testing.T) {
	store := newMemReceiptStore()
	service := NewReceiptService(store, nil, nil)

	data := testReceiptImage(t, 100, 100)

	upload, err := service.ProcessAndScan(context.Background(), data, "receipt.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if upload.ReceiptURL == "" || upload.DisplayURL == "" {
		t.Error("Expected both URLs to be set")
	}
	if upload.Draft != nil {
		t.Error("Expected nil draft without a scanner")
	}
	if len(store.objects) != 2 {
		t.Errorf("Expected 2 stored objects, got %d", len(store.objects))
	}
}

func TestProcessAndScan_RejectsTooSmall(t *testing.T) {
	service := NewReceiptService(newMemReceiptStore(), nil, nil)

	data := testReceiptImage(t, 10, 10)

	_, err := service.ProcessAndScan(context.Background(), data, "receipt.png")
	if !errors.Is(err, ErrReceiptTooSmall) {
		t.Errorf("Expected ErrReceiptTooSmall, got %v", err)
	}
}

func TestProcessAndScan_RejectsBadExtension(t *testing.T) {
	service := NewReceiptService(newMemReceiptStore(), nil, nil)

	data := testReceiptImage(t, 100, 100)

	_, err := service.ProcessAndScan(context.Background(), data, "receipt.gif")
	if !errors.Is(err, ErrInvalidReceiptFormat) {
		t.Errorf("Expected ErrInvalidReceiptFormat, got %v", err)
	}
}

func TestWebPDecoderRegistered(t *testing.T) {
	// .webp is in AllowedReceiptExtensions, so image.Decode must be able to
	// recognize the format. DecodeConfig reports the sniffed format name even
	// when the payload is truncated, which is enough to prove registration.
	header := []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
	_, format, _ := image.DecodeConfig(bytes.NewReader(header))
	if format != "webp" {
		t.Fatalf("Expected webp decoder to be registered, sniffed format %q", format)
	}
}

func TestProcessAndScan_RejectsGarbage(t *testing.T) {
	service := NewReceiptService(newMemReceiptStore(), nil, nil)

	_, err := service.ProcessAndScan(context.Background(), []byte("not an image"), "receipt.png")
	if !errors.Is(err, ErrInvalidReceiptData) {
		t.Errorf("Expected ErrInvalidReceiptData, got %v", err)
	}
}

func TestProcessAndScan_RejectsOversized(t *testing.T) {
	service := NewReceiptService(newMemReceiptStore(), nil, nil)

	data := make([]byte, MaxReceiptSize+1)

	_, err := service.ProcessAndScan(context.Background(), data, "receipt.jpg")
	if !errors.Is(err, ErrReceiptTooLarge) {
		t.Errorf("Expected ErrReceiptTooLarge, got %v", err)
	}
}

func TestProcessAndScan_CleansUpOnVariantFailure(t *testing.T) {
	store := newMemReceiptStore()
	store.failOn = "display"
	service := NewReceiptService(store, nil, nil)

	data := testReceiptImage(t, 100, 100)

	_, err := service.ProcessAndScan(context.Background(), data, "receipt.png")
	if err == nil {
		t.Fatal("Expected error when display upload fails")
	}
	if len(store.objects) != 0 {
		t.Errorf("Expected original to be cleaned up, %d objects remain", len(store.objects))
	}
}

func TestProcessAndScan_StorageNotConfigured(t *testing.T) {
	service := NewReceiptService(nil, nil, nil)

	_, err := service.ProcessAndScan(context.Background(), []byte("x"), "receipt.png")
	if !errors.Is(err, ErrReceiptStorageNotConfigured) {
		t.Errorf("Expected ErrReceiptStorageNotConfigured, got %v", err)
	}
}

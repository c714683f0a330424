package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ReceiptStore defines the interface for receipt image storage operations
type ReceiptStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates a unique object path for a receipt image variant
func GenerateObjectPath(variant string, ext string) string {
	id := uuid.New().String()
	return path.Join("receipts", fmt.Sprintf("%s_%s%s", id, variant, ext))
}

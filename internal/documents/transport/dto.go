package transport

import (
	"time"

	"github.com/google/uuid"
)

// DocumentResponse represents a document row in API responses.
type DocumentResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customerId"`
	DocumentType string    `json:"documentType"`
	FileName     *string   `json:"fileName,omitempty"`
	FileSize     *int64    `json:"fileSize,omitempty"`
	HasFile      bool      `json:"hasFile"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// DownloadResponse carries a short-lived link to a stored scan.
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

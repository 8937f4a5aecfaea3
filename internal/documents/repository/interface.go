package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document records that a customer presented one checklist document.
type Document struct {
	ID           uuid.UUID `db:"id"`
	CustomerID   uuid.UUID `db:"customer_id"`
	DocumentType string    `db:"document_type"`
	FileName     *string   `db:"file_name"`
	FilePath     *string   `db:"file_path"`
	FileSize     *int64    `db:"file_size"`
	UploadedAt   time.Time `db:"uploaded_at"`
}

// CreateParams contains parameters for creating a document row.
type CreateParams struct {
	CustomerID   uuid.UUID
	DocumentType string
	FileName     *string
	FilePath     *string
	FileSize     *int64
}

// DocumentReader provides read operations for documents.
type DocumentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Document, error)
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Document, error)
	ListByCustomerIDs(ctx context.Context, customerIDs []uuid.UUID) ([]Document, error)
	ListAll(ctx context.Context) ([]Document, error)
}

// DocumentWriter provides write operations for documents.
type DocumentWriter interface {
	Create(ctx context.Context, params CreateParams) (Document, error)
	// CreateBatch inserts every row or none.
	CreateBatch(ctx context.Context, params []CreateParams) ([]Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines all document repository operations.
type Repository interface {
	DocumentReader
	DocumentWriter
}

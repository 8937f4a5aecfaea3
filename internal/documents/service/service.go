package service

import (
	"context"
	"fmt"
	"io"

	"dmt_kiosk_backend/internal/adapters/storage"
	"dmt_kiosk_backend/internal/documents/repository"
	"dmt_kiosk_backend/internal/documents/transport"
	"dmt_kiosk_backend/platform/apperr"
	"dmt_kiosk_backend/platform/logger"

	"github.com/google/uuid"
)

// DocumentType returns the stored type key for checklist document n ("doc3").
func DocumentType(n int) string {
	return fmt.Sprintf("doc%d", n)
}

// Service provides business logic for documents.
type Service struct {
	repo    repository.Repository
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

// New creates a documents service. storage may be nil, in which case
// checklist rows are still recorded but file uploads are refused.
func New(repo repository.Repository, store storage.StorageService, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: store, bucket: bucket, log: log}
}

// FilesEnabled reports whether scans can be uploaded.
func (s *Service) FilesEnabled() bool {
	return s.storage != nil
}

// ConfirmChecklist records one row per presented document, in order. The rows
// are written together so a failed call leaves nothing behind.
func (s *Service) ConfirmChecklist(ctx context.Context, customerID uuid.UUID, docs []int) ([]repository.Document, error) {
	params := make([]repository.CreateParams, len(docs))
	for i, n := range docs {
		params[i] = repository.CreateParams{
			CustomerID:   customerID,
			DocumentType: DocumentType(n),
		}
	}

	out, err := s.repo.CreateBatch(ctx, params)
	if err != nil {
		return nil, err
	}
	s.log.Info("documents confirmed", "customerId", customerID, "count", len(out))
	return out, nil
}

// Upload is a scanned copy of one checklist document.
type Upload struct {
	CustomerID  uuid.UUID
	Document    int
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachFile stores a scan and records it as a document row.
func (s *Service) AttachFile(ctx context.Context, up Upload) (transport.DocumentResponse, error) {
	if s.storage == nil {
		return transport.DocumentResponse{}, apperr.Forbidden("document uploads are not enabled")
	}
	if err := s.storage.ValidateContentType(up.ContentType); err != nil {
		return transport.DocumentResponse{}, apperr.Validation(err.Error())
	}
	if err := s.storage.ValidateFileSize(up.Size); err != nil {
		return transport.DocumentResponse{}, apperr.Validation(err.Error())
	}

	docType := DocumentType(up.Document)
	folder := up.CustomerID.String() + "/" + docType
	key, err := s.storage.UploadFile(ctx, s.bucket, folder, up.FileName, up.ContentType, up.Body, up.Size)
	if err != nil {
		return transport.DocumentResponse{}, apperr.Wrap(apperr.KindInternal, "store document file", err).WithOp("documents.AttachFile")
	}

	name := up.FileName
	size := up.Size
	d, err := s.repo.Create(ctx, repository.CreateParams{
		CustomerID:   up.CustomerID,
		DocumentType: docType,
		FileName:     &name,
		FilePath:     &key,
		FileSize:     &size,
	})
	if err != nil {
		if delErr := s.storage.DeleteObject(ctx, s.bucket, key); delErr != nil {
			s.log.Warn("orphaned document object", "key", key, "error", delErr)
		}
		return transport.DocumentResponse{}, err
	}

	s.log.Info("document file stored", "documentId", d.ID, "customerId", up.CustomerID, "type", docType)
	return ToResponse(d), nil
}

// DownloadURL returns a presigned link for a document's scan.
func (s *Service) DownloadURL(ctx context.Context, id uuid.UUID) (transport.DownloadResponse, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DownloadResponse{}, err
	}
	if d.FilePath == nil || s.storage == nil {
		return transport.DownloadResponse{}, apperr.NotFound("document has no stored file")
	}

	link, err := s.storage.GenerateDownloadURL(ctx, s.bucket, *d.FilePath)
	if err != nil {
		return transport.DownloadResponse{}, err
	}
	return transport.DownloadResponse{URL: link.URL, ExpiresAt: link.ExpiresAt}, nil
}

// Delete removes a document row and its stored scan, if any.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if d.FilePath != nil && s.storage != nil {
		if err := s.storage.DeleteObject(ctx, s.bucket, *d.FilePath); err != nil {
			s.log.Warn("failed to delete document object", "documentId", id, "error", err)
		}
	}
	s.log.Info("document deleted", "documentId", id)
	return nil
}

// ListByCustomerID returns a customer's documents newest first.
func (s *Service) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]transport.DocumentResponse, error) {
	items, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.DocumentResponse, len(items))
	for i, d := range items {
		out[i] = ToResponse(d)
	}
	return out, nil
}

// ToResponse maps a stored row to its API shape. The object key stays internal.
func ToResponse(d repository.Document) transport.DocumentResponse {
	return transport.DocumentResponse{
		ID:           d.ID,
		CustomerID:   d.CustomerID,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		FileSize:     d.FileSize,
		HasFile:      d.FilePath != nil,
		UploadedAt:   d.UploadedAt,
	}
}

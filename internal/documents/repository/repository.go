package repository

import (
	"context"
	"errors"
	"fmt"

	"dmt_kiosk_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	documentNotFoundMessage = "document not found"
	documentColumns         = `id, customer_id, document_type, file_name, file_path, file_size, uploaded_at`
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new documents repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, params CreateParams) (Document, error) {
	query := `
		INSERT INTO documents (customer_id, document_type, file_name, file_path, file_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + documentColumns

	d, err := scanDocument(r.pool.QueryRow(ctx, query,
		params.CustomerID, params.DocumentType, params.FileName, params.FilePath, params.FileSize,
	))
	if err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

func (r *Repo) CreateBatch(ctx context.Context, params []CreateParams) ([]Document, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin document batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO documents (customer_id, document_type, file_name, file_path, file_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + documentColumns

	out := make([]Document, 0, len(params))
	for _, p := range params {
		d, err := scanDocument(tx.QueryRow(ctx, query,
			p.CustomerID, p.DocumentType, p.FileName, p.FilePath, p.FileSize,
		))
		if err != nil {
			return nil, fmt.Errorf("create document %s: %w", p.DocumentType, err)
		}
		out = append(out, d)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit document batch: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	d, err := scanDocument(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, apperr.NotFound(documentNotFoundMessage)
		}
		return Document{}, fmt.Errorf("get document by id: %w", err)
	}
	return d, nil
}

func (r *Repo) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE customer_id = $1 ORDER BY uploaded_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list documents by customer: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (r *Repo) ListByCustomerIDs(ctx context.Context, customerIDs []uuid.UUID) ([]Document, error) {
	if len(customerIDs) == 0 {
		return []Document{}, nil
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE customer_id = ANY($1::uuid[]) ORDER BY uploaded_at DESC`

	rows, err := r.pool.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("list documents by customers: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (r *Repo) ListAll(ctx context.Context) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY uploaded_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(documentNotFoundMessage)
	}
	return nil
}

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.CustomerID, &d.DocumentType, &d.FileName, &d.FilePath, &d.FileSize, &d.UploadedAt)
	return d, err
}

func scanDocuments(rows pgx.Rows) ([]Document, error) {
	items := make([]Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return items, nil
}

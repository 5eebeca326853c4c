package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caresign/caresign/internal/pdf"
	"github.com/caresign/caresign/internal/sessions"
	"github.com/caresign/caresign/internal/storage"
	"github.com/caresign/caresign/internal/verify"
)

type repo struct {
	db       *sql.DB
	blobs    storage.System
	sessions sessions.System
	logger   *slog.Logger
}

// New creates a document repository over the database and blob storage.
// Provisioning also seeds the flow session for the new document.
func New(db *sql.DB, blobs storage.System, store sessions.System, logger *slog.Logger) System {
	return &repo{
		db:       db,
		blobs:    blobs,
		sessions: store,
		logger:   logger.With("system", "documents"),
	}
}

func (r *repo) Provision(ctx context.Context, input ProvisionInput) (*Document, error) {
	if input.Name == "" || len(input.Data) == 0 {
		return nil, ErrInvalidUpload
	}

	iso, err := verify.NormalizeBirthday(input.Birthday)
	if err != nil {
		return nil, fmt.Errorf("%w: birthday must be DD/MM/YYYY", ErrInvalidUpload)
	}
	if err := verify.ValidatePIN(input.PIN); err != nil {
		return nil, fmt.Errorf("%w: pin must be 4 digits", ErrInvalidUpload)
	}

	pages, err := pdf.PageCount(input.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable pdf", ErrInvalidUpload)
	}

	id := uuid.New()
	key := OriginalKey(id)

	if err := r.blobs.Store(ctx, key, input.Data); err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}

	q := `INSERT INTO documents (id, name, storage_key, page_count, birthday, doctor_pin)
		VALUES ($1, $2, $3, $4, $5::date, $6)
		RETURNING created_at, updated_at`

	doc := &Document{ID: id, Name: input.Name, StorageKey: key, PageCount: pages}
	err = r.db.QueryRowContext(ctx, q, id, input.Name, key, pages, iso, input.PIN).
		Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if derr := r.blobs.Delete(ctx, key); derr != nil {
			r.logger.Warn("orphaned original blob", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}

	if err := r.sessions.Create(ctx, id); err != nil {
		return nil, err
	}

	r.logger.Info("document provisioned",
		"id", id, "name", input.Name, "pages", pages, "variant", doc.Variant())
	return doc, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q := `SELECT id, name, storage_key, page_count, created_at, updated_at
		FROM documents WHERE id = $1`

	var doc Document
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&doc.ID, &doc.Name, &doc.StorageKey, &doc.PageCount,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query document: %w", err)
	}
	return &doc, nil
}

func (r *repo) LoadOriginal(ctx context.Context, id uuid.UUID) (*Document, []byte, error) {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := r.blobs.Retrieve(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("retrieve original: %w", err)
	}
	return doc, data, nil
}

func (r *repo) StoreSigned(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	if _, err := r.Find(ctx, id); err != nil {
		return "", err
	}

	key := SignedKey(id)
	if err := r.blobs.Store(ctx, key, data); err != nil {
		return "", fmt.Errorf("store signed: %w", err)
	}

	r.logger.Info("signed document stored", "id", id, "key", key)
	return key, nil
}

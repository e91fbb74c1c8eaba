package postgres

import (
	"context"
	"database/sql"
	"time"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, module, parent_id, title, storage_key, content_type, size,
		uploaded_by, uploaded_at, expiry_date, assigned_to, last_notified_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Module,
		&d.ParentID,
		&d.Title,
		&d.StorageKey,
		&d.ContentType,
		&d.Size,
		&d.UploadedBy,
		&d.UploadedAt,
		&d.ExpiryDate,
		&d.AssignedTo,
		&d.LastNotifiedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateWithVersion inserts the document row and its initial version in
// one transaction. Either both rows land or neither does, so a document
// is never visible with an empty history.
func (r *DocumentPostgres) CreateWithVersion(ctx context.Context, doc *model.Document, v *model.DocumentVersion) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const insertDoc = `
		INSERT INTO documents (id, module, parent_id, title, storage_key, content_type, size,
			uploaded_by, uploaded_at, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns
	row := tx.QueryRowContext(ctx, insertDoc,
		doc.ID,
		doc.Module,
		doc.ParentID,
		doc.Title,
		doc.StorageKey,
		doc.ContentType,
		doc.Size,
		doc.UploadedBy,
		doc.UploadedAt,
		doc.ExpiryDate,
	)
	stored, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	const insertVersion = `
		INSERT INTO document_versions (id, document_id, label, storage_key, content_type, size, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.ExecContext(ctx, insertVersion,
		v.ID,
		v.DocumentID,
		v.Label,
		v.StorageKey,
		v.ContentType,
		v.Size,
		v.Notes,
		v.CreatedBy,
		v.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByParent returns all documents attached to a register record, newest first.
func (r *DocumentPostgres) ListByParent(ctx context.Context, module, parentID string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE module = $1 AND parent_id = $2
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, module, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// UpdateCurrentFile points the document at a new stored object.
func (r *DocumentPostgres) UpdateCurrentFile(ctx context.Context, id, storageKey, contentType string, size int64) error {
	const q = `
		UPDATE documents
		SET storage_key = $2, content_type = $3, size = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, storageKey, contentType, size)
	return err
}

// UpdateExpiry sets or clears the document's expiry date.
func (r *DocumentPostgres) UpdateExpiry(ctx context.Context, id string, expiry *time.Time) error {
	const q = `UPDATE documents SET expiry_date = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, expiry)
	return err
}

// UpdateAssignee sets or clears the assignee. last_notified_at is always
// cleared so the new assignee gets a fresh reminder cycle.
func (r *DocumentPostgres) UpdateAssignee(ctx context.Context, id string, assignee *string) error {
	const q = `
		UPDATE documents
		SET assigned_to = $2, last_notified_at = NULL
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, assignee)
	return err
}

// MarkNotified records that a reminder for this document was sent at t.
func (r *DocumentPostgres) MarkNotified(ctx context.Context, id string, t time.Time) error {
	const q = `UPDATE documents SET last_notified_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, t)
	return err
}

// ListExpiring returns assigned documents whose expiry date falls at or
// before the given bound.
func (r *DocumentPostgres) ListExpiring(ctx context.Context, before time.Time) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE assigned_to IS NOT NULL AND expiry_date IS NOT NULL AND expiry_date <= $1
		ORDER BY expiry_date ASC
	`
	rows, err := r.db.QueryContext(ctx, q, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// Delete removes a document and its version rows. Versions go first to
// satisfy the foreign key; no database-level cascade is assumed.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_versions WHERE document_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateVersion inserts an immutable version row and returns the stored record.
func (r *DocumentPostgres) CreateVersion(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error) {
	const q = `
		INSERT INTO document_versions (id, document_id, label, storage_key, content_type, size, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, document_id, label, storage_key, content_type, size, notes, created_by, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		v.ID,
		v.DocumentID,
		v.Label,
		v.StorageKey,
		v.ContentType,
		v.Size,
		v.Notes,
		v.CreatedBy,
		v.CreatedAt,
	)
	var out model.DocumentVersion
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.Label,
		&out.StorageKey,
		&out.ContentType,
		&out.Size,
		&out.Notes,
		&out.CreatedBy,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVersions returns all versions of a document, newest first.
func (r *DocumentPostgres) ListVersions(ctx context.Context, documentID string) ([]model.DocumentVersion, error) {
	const q = `
		SELECT id, document_id, label, storage_key, content_type, size, notes, created_by, created_at
		FROM document_versions
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentVersion, 0)
	for rows.Next() {
		var v model.DocumentVersion
		if err := rows.Scan(
			&v.ID,
			&v.DocumentID,
			&v.Label,
			&v.StorageKey,
			&v.ContentType,
			&v.Size,
			&v.Notes,
			&v.CreatedBy,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

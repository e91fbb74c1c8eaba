package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
)

// RegisterPostgres is a PostgreSQL implementation of repository.RegisterRepository.
// Module-specific fields are stored as JSONB in a shared table keyed by module.
type RegisterPostgres struct {
	db *sql.DB
}

// NewRegisterPostgres creates a new RegisterPostgres repository.
func NewRegisterPostgres(db *sql.DB) *RegisterPostgres {
	return &RegisterPostgres{db: db}
}

var _ repository.RegisterRepository = (*RegisterPostgres)(nil)

const registerColumns = `id, module, title, status, fields, archived,
		created_by, updated_by, created_at, updated_at`

func scanRegisterRecord(row interface{ Scan(...any) error }) (*model.RegisterRecord, error) {
	var (
		rec    model.RegisterRecord
		fields []byte
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Module,
		&rec.Title,
		&rec.Status,
		&fields,
		&rec.Archived,
		&rec.CreatedBy,
		&rec.UpdatedBy,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &rec.Fields); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func marshalFields(rec *model.RegisterRecord) ([]byte, error) {
	if rec.Fields == nil {
		return []byte(`{}`), nil
	}
	return json.Marshal(rec.Fields)
}

// Create inserts a new register record and returns the stored row.
func (r *RegisterPostgres) Create(ctx context.Context, rec *model.RegisterRecord) (*model.RegisterRecord, error) {
	fields, err := marshalFields(rec)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO register_records (id, module, title, status, fields, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + registerColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.Module,
		rec.Title,
		rec.Status,
		fields,
		rec.CreatedBy,
		rec.UpdatedBy,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return scanRegisterRecord(row)
}

// FindByID fetches a record by module and ID.
func (r *RegisterPostgres) FindByID(ctx context.Context, module, id string) (*model.RegisterRecord, error) {
	const q = `
		SELECT ` + registerColumns + `
		FROM register_records
		WHERE module = $1 AND id = $2
	`
	return scanRegisterRecord(r.db.QueryRowContext(ctx, q, module, id))
}

// List returns records using LIMIT/OFFSET pagination and a total count.
func (r *RegisterPostgres) List(ctx context.Context, module string, includeArchived bool, pq repository.PageQuery) (*repository.PageResult[model.RegisterRecord], error) {
	const qCount = `
		SELECT COUNT(*) FROM register_records
		WHERE module = $1 AND (archived = FALSE OR $2)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, module, includeArchived).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + registerColumns + `
		FROM register_records
		WHERE module = $1 AND (archived = FALSE OR $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, module, includeArchived, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RegisterRecord, 0)
	for rows.Next() {
		rec, err := scanRegisterRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.RegisterRecord]{
		Items: items,
		Total: total,
	}, nil
}

// ListAll returns every active record of a module, for report export.
func (r *RegisterPostgres) ListAll(ctx context.Context, module string) ([]model.RegisterRecord, error) {
	const q = `
		SELECT ` + registerColumns + `
		FROM register_records
		WHERE module = $1 AND archived = FALSE
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, module)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RegisterRecord, 0)
	for rows.Next() {
		rec, err := scanRegisterRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	return items, rows.Err()
}

// Update rewrites the mutable fields of a record. Row-level last-writer-wins;
// no optimistic version check.
func (r *RegisterPostgres) Update(ctx context.Context, rec *model.RegisterRecord) (*model.RegisterRecord, error) {
	fields, err := marshalFields(rec)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE register_records
		SET title = $3, status = $4, fields = $5, updated_by = $6, updated_at = $7
		WHERE module = $1 AND id = $2
		RETURNING ` + registerColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.Module,
		rec.ID,
		rec.Title,
		rec.Status,
		fields,
		rec.UpdatedBy,
		rec.UpdatedAt,
	)
	return scanRegisterRecord(row)
}

// SetArchived flips the soft-delete flag.
func (r *RegisterPostgres) SetArchived(ctx context.Context, module, id string, archived bool, userID string) error {
	const q = `
		UPDATE register_records
		SET archived = $3, updated_by = $4, updated_at = now()
		WHERE module = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, q, module, id, archived, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCascade hard-deletes a record and its dependents in one transaction:
// version rows first, then documents, then the record itself. Referential
// integrity is enforced here, not by database cascades.
func (r *RegisterPostgres) DeleteCascade(ctx context.Context, module, id string) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Collect object keys before the rows disappear.
	keys := make([]string, 0)
	const qKeys = `
		SELECT v.storage_key
		FROM document_versions v
		JOIN documents d ON d.id = v.document_id
		WHERE d.module = $1 AND d.parent_id = $2
	`
	rows, err := tx.QueryContext(ctx, qKeys, module, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	const qDelVersions = `
		DELETE FROM document_versions
		WHERE document_id IN (SELECT id FROM documents WHERE module = $1 AND parent_id = $2)
	`
	if _, err := tx.ExecContext(ctx, qDelVersions, module, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE module = $1 AND parent_id = $2`, module, id); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM register_records WHERE module = $1 AND id = $2`, module, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return keys, nil
}

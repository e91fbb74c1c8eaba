package repository

import (
	"context"

	"smartsuite/internal/model"
)

// RegisterRepository defines data access for register records across all
// modules. The module name selects the register; all registers share one
// row shape.
type RegisterRepository interface {
	Create(ctx context.Context, rec *model.RegisterRecord) (*model.RegisterRecord, error)

	FindByID(ctx context.Context, module, id string) (*model.RegisterRecord, error)

	// List returns a page of records for a module. Archived records are
	// excluded unless includeArchived is set.
	List(ctx context.Context, module string, includeArchived bool, pq PageQuery) (*PageResult[model.RegisterRecord], error)

	// ListAll returns every active record of a module, for report export.
	ListAll(ctx context.Context, module string) ([]model.RegisterRecord, error)

	Update(ctx context.Context, rec *model.RegisterRecord) (*model.RegisterRecord, error)

	// SetArchived flips the soft-delete flag and records the acting user.
	SetArchived(ctx context.Context, module, id string, archived bool, userID string) error

	// DeleteCascade hard-deletes the record inside one transaction: version
	// rows of its documents first, then document rows, then the record.
	// It returns the storage keys of every removed file so the caller can
	// clean up object storage after commit.
	DeleteCascade(ctx context.Context, module, id string) ([]string, error)
}

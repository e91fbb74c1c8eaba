package repository

import (
	"context"
	"time"

	"smartsuite/internal/model"
)

// DocumentRepository defines data access for documents and their versions
// using SQL queries only. No business logic here — strictly persistence
// operations.
type DocumentRepository interface {
	// CreateWithVersion inserts a new document row together with its
	// initial version in one transaction, so a document never exists
	// with an empty history. Returns the stored document.
	CreateWithVersion(ctx context.Context, doc *model.Document, v *model.DocumentVersion) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByParent returns all documents attached to a register record.
	ListByParent(ctx context.Context, module, parentID string) ([]model.Document, error)

	// UpdateCurrentFile points the document at a new stored object. Called
	// when a version is added so the document always mirrors its latest file.
	UpdateCurrentFile(ctx context.Context, id, storageKey, contentType string, size int64) error

	// UpdateExpiry sets or clears the document's expiry date.
	UpdateExpiry(ctx context.Context, id string, expiry *time.Time) error

	// UpdateAssignee sets or clears the assignee and always clears
	// last_notified_at so the reminder cycle restarts.
	UpdateAssignee(ctx context.Context, id string, assignee *string) error

	// MarkNotified records that a reminder was sent at t.
	MarkNotified(ctx context.Context, id string, t time.Time) error

	// ListExpiring returns documents with a non-null assignee and an expiry
	// date at or before the given bound.
	ListExpiring(ctx context.Context, before time.Time) ([]model.Document, error)

	// Delete removes a document and all of its version rows.
	Delete(ctx context.Context, id string) error

	// CreateVersion inserts an immutable version row.
	CreateVersion(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error)

	// ListVersions returns all versions of a document, newest first.
	ListVersions(ctx context.Context, documentID string) ([]model.DocumentVersion, error)
}

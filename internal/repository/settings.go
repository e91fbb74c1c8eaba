package repository

import (
	"context"

	"smartsuite/internal/model"
)

// SettingsRepository defines data access for per-user notification settings.
// Find returns sql.ErrNoRows when the user has no stored row; the default
// policy lives in the service layer, not here.
type SettingsRepository interface {
	Find(ctx context.Context, userID string) (*model.NotificationSettings, error)
	Upsert(ctx context.Context, s *model.NotificationSettings) error
}

// UserRepository defines read access to users. Rows are provisioned outside
// this service; only lookups are needed here.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

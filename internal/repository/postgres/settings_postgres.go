package postgres

import (
	"context"
	"database/sql"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
)

// SettingsPostgres is a PostgreSQL implementation of repository.SettingsRepository.
type SettingsPostgres struct {
	db *sql.DB
}

// NewSettingsPostgres creates a new SettingsPostgres repository.
func NewSettingsPostgres(db *sql.DB) *SettingsPostgres {
	return &SettingsPostgres{db: db}
}

var _ repository.SettingsRepository = (*SettingsPostgres)(nil)

// Find returns the stored settings row for a user, or sql.ErrNoRows if the
// user never saved settings.
func (r *SettingsPostgres) Find(ctx context.Context, userID string) (*model.NotificationSettings, error) {
	const q = `
		SELECT user_id, enabled, notify_30, notify_14, notify_7, notify_1
		FROM notification_settings
		WHERE user_id = $1
	`
	var s model.NotificationSettings
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&s.UserID,
		&s.Enabled,
		&s.Notify30,
		&s.Notify14,
		&s.Notify7,
		&s.Notify1,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert writes the settings row, creating it lazily on first save.
func (r *SettingsPostgres) Upsert(ctx context.Context, s *model.NotificationSettings) error {
	const q = `
		INSERT INTO notification_settings (user_id, enabled, notify_30, notify_14, notify_7, notify_1)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET enabled = EXCLUDED.enabled,
			notify_30 = EXCLUDED.notify_30,
			notify_14 = EXCLUDED.notify_14,
			notify_7 = EXCLUDED.notify_7,
			notify_1 = EXCLUDED.notify_1
	`
	_, err := r.db.ExecContext(ctx, q,
		s.UserID,
		s.Enabled,
		s.Notify30,
		s.Notify14,
		s.Notify7,
		s.Notify1,
	)
	return err
}

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, name, email, password_hash, active, created_at FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, name, email, password_hash, active, created_at FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Active, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

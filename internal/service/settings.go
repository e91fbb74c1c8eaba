package service

import (
	"context"
	"database/sql"
	"errors"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
)

// SettingsUpdate carries a full replacement of a user's reminder preferences.
type SettingsUpdate struct {
	Enabled  bool `json:"enabled"`
	Notify30 bool `json:"notify_30"`
	Notify14 bool `json:"notify_14"`
	Notify7  bool `json:"notify_7"`
	Notify1  bool `json:"notify_1"`
}

// SettingsService reads and writes per-user notification settings. Reads
// never fail on a missing row: absent settings resolve to the all-enabled
// defaults in one place, rather than null-checks at every caller.
type SettingsService interface {
	Get(ctx context.Context, userID string) (model.NotificationSettings, error)
	Update(ctx context.Context, userID string, in SettingsUpdate) (model.NotificationSettings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, userID string) (model.NotificationSettings, error) {
	if userID == "" {
		return model.NotificationSettings{}, ErrUserRequired
	}
	stored, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultNotificationSettings(userID), nil
		}
		return model.NotificationSettings{}, err
	}
	return *stored, nil
}

// Update upserts the row, creating it lazily on the user's first write.
func (s *settingsService) Update(ctx context.Context, userID string, in SettingsUpdate) (model.NotificationSettings, error) {
	if userID == "" {
		return model.NotificationSettings{}, ErrUserRequired
	}
	next := model.NotificationSettings{
		UserID:   userID,
		Enabled:  in.Enabled,
		Notify30: in.Notify30,
		Notify14: in.Notify14,
		Notify7:  in.Notify7,
		Notify1:  in.Notify1,
	}
	if err := s.repo.Upsert(ctx, &next); err != nil {
		return model.NotificationSettings{}, err
	}
	return next, nil
}

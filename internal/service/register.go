package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
	"smartsuite/internal/storage"
)

// RecordInput carries the caller-editable fields of a register record.
type RecordInput struct {
	Title  string         `json:"title"`
	Status string         `json:"status"`
	Fields map[string]any `json:"fields"`
}

// RecordListResult is the service-level DTO for paginated register records.
type RecordListResult struct {
	Items []model.RegisterRecord `json:"data"`
	Total int                    `json:"total"`
}

// RegisterService defines the use cases shared by every compliance register:
// CRUD, archive/restore, and hard delete with manual referential integrity.
type RegisterService interface {
	Create(ctx context.Context, module string, in RecordInput, userID string) (*model.RegisterRecord, error)
	Get(ctx context.Context, module, id string) (*model.RegisterRecord, error)
	List(ctx context.Context, module string, includeArchived bool, limit, offset int) (*RecordListResult, error)
	Update(ctx context.Context, module, id string, in RecordInput, userID string) (*model.RegisterRecord, error)

	// Archive soft-deletes; Restore reverses it.
	Archive(ctx context.Context, module, id, userID string) error
	Restore(ctx context.Context, module, id, userID string) error

	// Delete hard-deletes the record and all dependent documents and
	// versions, then removes their stored objects best-effort.
	Delete(ctx context.Context, module, id string) error
}

type registerService struct {
	repo  repository.RegisterRepository
	store storage.Storage
	log   *zap.Logger
	now   func() time.Time
}

// NewRegisterService constructs a new RegisterService.
func NewRegisterService(repo repository.RegisterRepository, store storage.Storage, log *zap.Logger) RegisterService {
	return &registerService{repo: repo, store: store, log: log, now: time.Now}
}

func (s *registerService) Create(ctx context.Context, module string, in RecordInput, userID string) (*model.RegisterRecord, error) {
	if !model.ValidModule(module) {
		return nil, ErrInvalidModule
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if userID == "" {
		return nil, ErrUserRequired
	}
	now := s.now().UTC()
	rec := &model.RegisterRecord{
		ID:        uuid.New().String(),
		Module:    module,
		Title:     in.Title,
		Status:    in.Status,
		Fields:    in.Fields,
		CreatedBy: userID,
		UpdatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.repo.Create(ctx, rec)
}

func (s *registerService) Get(ctx context.Context, module, id string) (*model.RegisterRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if !model.ValidModule(module) {
		return nil, ErrInvalidModule
	}
	rec, err := s.repo.FindByID(ctx, module, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *registerService) List(ctx context.Context, module string, includeArchived bool, limit, offset int) (*RecordListResult, error) {
	if !model.ValidModule(module) {
		return nil, ErrInvalidModule
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, module, includeArchived, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RecordListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *registerService) Update(ctx context.Context, module, id string, in RecordInput, userID string) (*model.RegisterRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if !model.ValidModule(module) {
		return nil, ErrInvalidModule
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if userID == "" {
		return nil, ErrUserRequired
	}
	rec, err := s.repo.FindByID(ctx, module, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.Title = in.Title
	rec.Status = in.Status
	rec.Fields = in.Fields
	rec.UpdatedBy = userID
	rec.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, rec)
}

func (s *registerService) Archive(ctx context.Context, module, id, userID string) error {
	return s.setArchived(ctx, module, id, true, userID)
}

func (s *registerService) Restore(ctx context.Context, module, id, userID string) error {
	return s.setArchived(ctx, module, id, false, userID)
}

func (s *registerService) setArchived(ctx context.Context, module, id string, archived bool, userID string) error {
	if id == "" {
		return ErrIDRequired
	}
	if !model.ValidModule(module) {
		return ErrInvalidModule
	}
	if userID == "" {
		return ErrUserRequired
	}
	if err := s.repo.SetArchived(ctx, module, id, archived, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *registerService) Delete(ctx context.Context, module, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if !model.ValidModule(module) {
		return ErrInvalidModule
	}
	keys, err := s.repo.DeleteCascade(ctx, module, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Rows are gone; object cleanup failures only leave orphaned files.
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn("delete stored object", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
	repoMocks "smartsuite/internal/repository/mocks"
	storeMocks "smartsuite/internal/storage/mocks"
)

func newTestRegisterService(mRepo *repoMocks.MockRegisterRepository, mStore *storeMocks.MockStorage) *registerService {
	return &registerService{
		repo:  mRepo,
		store: mStore,
		log:   zap.NewNop(),
		now:   func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) },
	}
}

func TestRegisterService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path stamps audit fields", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.RegisterRecord) bool {
			return rec.Module == model.ModuleImprovement &&
				rec.Title == "Corrective action 42" &&
				rec.CreatedBy == testUserID && rec.UpdatedBy == testUserID &&
				!rec.Archived
		})).Return(&model.RegisterRecord{ID: "rec-1"}, nil)

		svc := newTestRegisterService(mRepo, new(storeMocks.MockStorage))
		rec, err := svc.Create(ctx, model.ModuleImprovement, RecordInput{
			Title:  "Corrective action 42",
			Status: "open",
			Fields: map[string]any{"severity": "major"},
		}, testUserID)

		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("unknown module", func(t *testing.T) {
		svc := newTestRegisterService(new(repoMocks.MockRegisterRepository), new(storeMocks.MockStorage))
		_, err := svc.Create(ctx, "payroll", RecordInput{Title: "x"}, testUserID)
		assert.ErrorIs(t, err, ErrInvalidModule)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := newTestRegisterService(new(repoMocks.MockRegisterRepository), new(storeMocks.MockStorage))
		_, err := svc.Create(ctx, model.ModuleLegal, RecordInput{}, testUserID)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})
}

func TestRegisterService_List(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockRegisterRepository)
	mRepo.On("List", ctx, model.ModuleSkill, false, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.RegisterRecord]{
			Items: []model.RegisterRecord{{ID: "rec-1"}},
			Total: 1,
		}, nil)

	svc := newTestRegisterService(mRepo, new(storeMocks.MockStorage))

	// Non-positive limit falls back to the default page size.
	res, err := svc.List(ctx, model.ModuleSkill, false, 0, -5)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	mRepo.AssertExpectations(t)
}

func TestRegisterService_ArchiveRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("archive", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mRepo.On("SetArchived", ctx, model.ModuleSupplier, "rec-1", true, testUserID).Return(nil)

		svc := newTestRegisterService(mRepo, new(storeMocks.MockStorage))
		require.NoError(t, svc.Archive(ctx, model.ModuleSupplier, "rec-1", testUserID))
		mRepo.AssertExpectations(t)
	})

	t.Run("restore missing record", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mRepo.On("SetArchived", ctx, model.ModuleSupplier, "rec-1", false, testUserID).
			Return(sql.ErrNoRows)

		svc := newTestRegisterService(mRepo, new(storeMocks.MockStorage))
		assert.ErrorIs(t, svc.Restore(ctx, model.ModuleSupplier, "rec-1", testUserID), ErrNotFound)
	})
}

func TestRegisterService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascade returns keys and objects are removed", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mStore := new(storeMocks.MockStorage)

		mRepo.On("DeleteCascade", ctx, model.ModuleEmployee, "rec-1").
			Return([]string{"k1", "k2"}, nil)
		mStore.On("Delete", ctx, "k1").Return(nil).Once()
		mStore.On("Delete", ctx, "k2").Return(nil).Once()

		svc := newTestRegisterService(mRepo, mStore)
		require.NoError(t, svc.Delete(ctx, model.ModuleEmployee, "rec-1"))
		mStore.AssertExpectations(t)
	})

	t.Run("object cleanup failure is swallowed", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mStore := new(storeMocks.MockStorage)

		mRepo.On("DeleteCascade", ctx, model.ModuleEmployee, "rec-1").
			Return([]string{"k1"}, nil)
		mStore.On("Delete", ctx, "k1").Return(errors.New("already gone"))

		svc := newTestRegisterService(mRepo, mStore)
		assert.NoError(t, svc.Delete(ctx, model.ModuleEmployee, "rec-1"))
	})

	t.Run("missing record", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mRepo.On("DeleteCascade", ctx, model.ModuleEmployee, "rec-1").
			Return(nil, sql.ErrNoRows)

		svc := newTestRegisterService(mRepo, new(storeMocks.MockStorage))
		assert.ErrorIs(t, svc.Delete(ctx, model.ModuleEmployee, "rec-1"), ErrNotFound)
	})
}

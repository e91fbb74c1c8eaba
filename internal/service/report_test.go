package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"smartsuite/internal/model"
	repoMocks "smartsuite/internal/repository/mocks"
)

func TestReportService_ExportRegister(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("renders header plus one row per record", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mRepo.On("ListAll", ctx, model.ModuleSupplier).Return([]model.RegisterRecord{
			{
				ID:     "rec-1",
				Title:  "Acme Ltd",
				Status: "approved",
				Fields: map[string]any{"contact": "sales@acme.example"},
			},
			{
				ID:     "rec-2",
				Title:  "Globex",
				Status: "pending",
				Fields: map[string]any{"rating": "B"},
			},
		}, nil)

		svc := &reportService{registers: mRepo, now: func() time.Time { return now }}
		data, filename, err := svc.ExportRegister(ctx, model.ModuleSupplier)

		require.NoError(t, err)
		assert.Equal(t, "supplier_register_20260310_090000.xlsx", filename)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		// Report is the only sheet; no leftover default Sheet1.
		assert.Equal(t, []string{"Report"}, f.GetSheetList())

		rows, err := f.GetRows("Report")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		// Base columns then the sorted union of module fields.
		assert.Equal(t, []string{"ID", "Title", "Status", "Created At", "Updated At", "contact", "rating"}, rows[0])
		assert.Equal(t, "Acme Ltd", rows[1][1])
		assert.Equal(t, "pending", rows[2][2])
	})

	t.Run("empty register still yields a header", func(t *testing.T) {
		mRepo := new(repoMocks.MockRegisterRepository)
		mRepo.On("ListAll", ctx, model.ModuleLegal).Return(nil, nil)

		svc := &reportService{registers: mRepo, now: func() time.Time { return now }}
		data, _, err := svc.ExportRegister(ctx, model.ModuleLegal)

		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Report")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("unknown module", func(t *testing.T) {
		svc := &reportService{registers: new(repoMocks.MockRegisterRepository), now: time.Now}
		_, _, err := svc.ExportRegister(ctx, "payroll")
		assert.ErrorIs(t, err, ErrInvalidModule)
	})
}

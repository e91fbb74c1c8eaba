package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"
)

// ReportService renders a register's active records as a printable
// spreadsheet.
type ReportService interface {
	// ExportRegister returns xlsx bytes and a suggested filename.
	ExportRegister(ctx context.Context, module string) ([]byte, string, error)
}

type reportService struct {
	registers repository.RegisterRepository
	now       func() time.Time
}

// NewReportService constructs a new ReportService.
func NewReportService(registers repository.RegisterRepository) ReportService {
	return &reportService{registers: registers, now: time.Now}
}

var baseColumns = []string{"ID", "Title", "Status", "Created At", "Updated At"}

func (s *reportService) ExportRegister(ctx context.Context, module string) ([]byte, string, error) {
	if !model.ValidModule(module) {
		return nil, "", ErrInvalidModule
	}
	records, err := s.registers.ListAll(ctx, module)
	if err != nil {
		return nil, "", err
	}

	// Module-specific fields become extra columns, sorted for stable output.
	extraSet := map[string]bool{}
	for _, rec := range records {
		for k := range rec.Fields {
			extraSet[k] = true
		}
	}
	extras := make([]string, 0, len(extraSet))
	for k := range extraSet {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	columns := append(append([]string{}, baseColumns...), extras...)

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than adding one, so the workbook
	// has a single Report sheet.
	sheetName := "Report"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, rec := range records {
		values := []any{
			rec.ID,
			rec.Title,
			rec.Status,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		for _, k := range extras {
			values = append(values, cellValue(rec.Fields[k]))
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_register_%s.xlsx", module, s.now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case map[string]any:
		if name, ok := t["name"]; ok {
			return fmt.Sprintf("%v", name)
		}
		return fmt.Sprintf("%v", t)
	default:
		return v
	}
}

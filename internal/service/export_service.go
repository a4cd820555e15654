package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hooplog/backend/internal/repository"
)

// ── export errors ──

var (
	ErrNothingToExport    = errors.New("no sessions to export")
	ErrExportGenerateFail = errors.New("failed to generate spreadsheet")
)

// ExportService spreadsheet export of a user's session list
//
// The workbook has one sheet "My Sessions" with a header row and one row per
// progress record, in the same order as ListForUser. The buffer is returned
// to the handler, which sets the download headers.
type ExportService interface {
	ExportMySessions(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeaders = []string{
	"Title", "Type", "Difficulty", "Duration (min)", "Intensity", "Progress (%)", "Favorite", "Added",
}

// ═══════════════════════════════════════════════════════════
// ExportMySessions
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportMySessions(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	rows, err := s.repo.Progress.ListByUser(ctx, userID, repository.ProgressFilter{})
	if err != nil {
		s.logger.Error("failed to list user sessions", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "My Sessions"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("failed to create sheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E8590C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// header
	for i, h := range exportHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(exportHeaders)-1), 1), headerStyle)

	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "C", 18)
	f.SetColWidth(sheetName, "D", "G", 14)
	f.SetColWidth(sheetName, "H", "H", 22)

	// data rows
	row := 2
	for _, p := range rows {
		if p.Session == nil {
			continue
		}
		favorite := "No"
		if p.Favorite {
			favorite = "Yes"
		}
		values := []interface{}{
			p.Session.Title,
			string(p.Session.Type),
			string(p.Session.Difficulty),
			p.Session.Duration,
			p.Session.Intensity,
			p.Progress,
			favorite,
			p.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write spreadsheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("hooplog_sessions_%s.xlsx", time.Now().UTC().Format("20060102"))
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

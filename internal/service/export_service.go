package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
)

var (
	ErrExportNoEntries    = errors.New("No work diary entries to export")
	ErrExportGenerateFail = errors.New("Failed to generate Excel file")
)

// ExportService renders the admin report view as a downloadable file.
//
// The workbook carries one sheet per department, rows ordered by date
// descending like the JSON report view. The buffer is returned to the
// handler, which sets the download headers and streams it.
type ExportService interface {
	// ExportReports exports all entries, optionally restricted to one
	// calendar day. Returns the file content and a suggested filename.
	ExportReports(ctx context.Context, date *time.Time) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var exportHeaders = []string{
	"Date", "Faculty", "Email", "Task", "Activities",
	"Hours", "Total Students", "Present", "Absent", "Status",
}

func (s *exportService) ExportReports(ctx context.Context, date *time.Time) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Diary.ListAll(ctx, date)
	if err != nil {
		s.logger.Error("export query failed", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	// Group by department, like the report endpoint.
	byDept := make(map[string][]model.WorkDiaryEntry)
	for _, e := range entries {
		dept := "Uncategorized"
		if e.User != nil && e.User.Department != "" {
			dept = e.User.Department
		}
		byDept[dept] = append(byDept[dept], e)
	}

	var departments []string
	for dept := range byDept {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for si, dept := range departments {
		// Sheet names cap at 31 characters in the xlsx format.
		sheet := dept
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}
		if si == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			f.NewSheet(sheet)
		}

		f.SetColWidth(sheet, "A", "A", 12)
		f.SetColWidth(sheet, "B", "C", 24)
		f.SetColWidth(sheet, "D", "E", 32)
		f.SetColWidth(sheet, "F", "J", 14)

		for i, h := range exportHeaders {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, cell(col, 1), h)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
		f.SetCellStyle(sheet, "A1", cell(lastCol, 1), headerStyle)

		row := 2
		for _, e := range byDept[dept] {
			name, email := "", ""
			if e.User != nil {
				name, email = e.User.Name, e.User.Email
			}
			f.SetCellValue(sheet, cell("A", row), e.Date.Format("2006-01-02"))
			f.SetCellValue(sheet, cell("B", row), name)
			f.SetCellValue(sheet, cell("C", row), email)
			f.SetCellValue(sheet, cell("D", row), e.Task)
			f.SetCellValue(sheet, cell("E", row), e.Activities)
			f.SetCellValue(sheet, cell("F", row), e.Hours)
			f.SetCellValue(sheet, cell("G", row), e.TotalStudents)
			f.SetCellValue(sheet, cell("H", row), e.PresentStudents)
			f.SetCellValue(sheet, cell("I", row), e.AbsentStudents)
			f.SetCellValue(sheet, cell("J", row), e.Status)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("excel write failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	suffix := time.Now().Format("2006-01-02")
	if date != nil {
		suffix = date.Format("2006-01-02")
	}
	filename := fmt.Sprintf("work_diary_reports_%s.xlsx", suffix)
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// Package export renders reports as spreadsheet files.
package export

import (
	"fmt"

	"github.com/alefshop/attendance-backend/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const monthlySheet = "Monthly"

var monthlyHeaders = []string{"Date", "Weekday", "Minutes", "Hours", "Finance"}

// MonthlyReportXLSX writes one row per day followed by a totals row.
func MonthlyReportXLSX(r report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(monthlySheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	cells := []struct {
		cell  string
		value any
	}{
		{"A1", "Monthly attendance report"},
		{"A2", "Worker"},
		{"B2", r.Worker.Name},
		{"A3", "Month"},
		{"B3", r.Month},
	}
	for _, c := range cells {
		if err := f.SetCellValue(monthlySheet, c.cell, c.value); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(monthlySheet, "A1", "A1", boldStyle); err != nil {
		return nil, err
	}

	const headerRow = 5
	for i, h := range monthlyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(monthlySheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(monthlyHeaders), headerRow)
	if err := f.SetCellStyle(monthlySheet, "A5", last, headerStyle); err != nil {
		return nil, err
	}

	row := headerRow + 1
	for _, d := range r.Rows {
		if err := f.SetSheetRow(monthlySheet, fmt.Sprintf("A%d", row),
			&[]any{d.Date, d.Weekday, d.Minutes, d.Hours, d.FinanceTotal}); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.SetSheetRow(monthlySheet, fmt.Sprintf("A%d", row),
		&[]any{"Total", "", r.TotalMinutes, r.TotalHours, r.TotalFinance}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(monthlySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), boldStyle); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(monthlySheet, "A", "B", 14)
	_ = f.SetColWidth(monthlySheet, "C", "D", 10)
	_ = f.SetColWidth(monthlySheet, "E", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

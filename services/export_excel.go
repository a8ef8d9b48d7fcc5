package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates a workbook with the calculation's input and result
// tables and returns the file contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sanitizeSheetName(data.Title)
	if sheetName == "" {
		sheetName = "Calculation"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 32, 40, 16, 12}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary style: %w", err)
	}

	// ── Title and date ──────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Date: "+data.CreatedDate)

	// ── Inputs ──────────────────────────────────────────────────────────

	row := 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Inputs")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), sectionStyle)
	row++

	row = writeTable(f, sheetName, row, []string{"#", "Input", "", "Value", "Unit"}, data.Inputs, headerStyle, cellStyle)
	row++

	// ── Results ─────────────────────────────────────────────────────────

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Results")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), sectionStyle)
	row++

	row = writeTable(f, sheetName, row, []string{"#", "Material", "Formula", "Quantity", "Unit"}, data.Outputs, headerStyle, cellStyle)

	if data.HasTotalCost {
		row++
		summaryRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "C"+summaryRow, "Total Cost:")
		f.SetCellStyle(sheetName, "C"+summaryRow, "C"+summaryRow, summaryStyle)
		f.SetCellValue(sheetName, "D"+summaryRow, FormatINR(data.TotalCost))
		f.SetCellStyle(sheetName, "D"+summaryRow, "D"+summaryRow, summaryStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// writeTable writes a header row and data rows starting at row, returning the
// next free row.
func writeTable(f *excelize.File, sheet string, row int, headers []string, rows []ExportRow, headerStyle, cellStyle int) int {
	columns := []string{"A", "B", "C", "D", "E"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), headerStyle)
	row++

	for _, r := range rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+rowStr, r.Index)
		f.SetCellValue(sheet, "B"+rowStr, sanitizeExcelCell(r.Label))
		f.SetCellValue(sheet, "C"+rowStr, sanitizeExcelCell(r.Formula))
		f.SetCellValue(sheet, "D"+rowStr, r.Value)
		f.SetCellValue(sheet, "E"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellStyle(sheet, "A"+rowStr, "E"+rowStr, cellStyle)
		row++
	}
	return row
}

// sanitizeSheetName replaces characters Excel does not allow in sheet names
// and truncates to 31 characters.
func sanitizeSheetName(s string) string {
	out := []rune(s)
	if len(out) > 31 {
		out = out[:31]
	}
	for i, r := range out {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			out[i] = '-'
		}
	}
	return string(out)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

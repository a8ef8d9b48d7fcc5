package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_Calculation(t *testing.T) {
	result, err := GenerateExcel(sampleExportData())
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Brickwork (by wall volume)" {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Brickwork (by wall volume)" {
		t.Errorf("expected title in A1, got %q", title)
	}

	// Inputs header at row 5, two input rows, blank row, results title,
	// results header at row 10, first result at row 11.
	label, _ := f.GetCellValue(sheets[0], "B11")
	if label != "Number of bricks" {
		t.Errorf("B11 = %q, want first result label", label)
	}
	qty, _ := f.GetCellValue(sheets[0], "D11")
	if qty != "4456.328" {
		t.Errorf("D11 = %q, want %q", qty, "4456.328")
	}
}

func TestGenerateExcel_EmptyTitle(t *testing.T) {
	data := sampleExportData()
	data.Title = ""

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); sheets[0] != "Calculation" {
		t.Errorf("expected fallback sheet name, got %v", sheets)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Roof [hip]", "Roof -hip-"},
		{"a/b:c", "a-b-c"},
		{"This calculator title is far too long for Excel", "This calculator title is far to"},
	}
	for _, tt := range tests {
		if got := sanitizeSheetName(tt.input); got != tt.want {
			t.Errorf("sanitizeSheetName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}

package services

import (
	"fmt"
	"time"
)

// currencyUnit marks outputs rendered in Indian Rupee notation.
const currencyUnit = "₹"

// ExportRow is one line of an input or result table in an export.
type ExportRow struct {
	Index   string
	Label   string
	Formula string
	Value   string
	Unit    string
}

// ExportData holds everything an export renders. It is built from a detail
// payload only, so exports never recompute.
type ExportData struct {
	Title        string
	CalculatorID string
	CreatedDate  string
	Inputs       []ExportRow
	Outputs      []ExportRow
	TotalCost    float64
	HasTotalCost bool
}

// BuildExportData converts a detail payload into export rows.
func BuildExportData(p DetailPayload, generated time.Time) ExportData {
	data := ExportData{
		Title:        p.Title,
		CalculatorID: p.CalculatorID,
		CreatedDate:  generated.Format("02 Jan 2006"),
	}
	if data.Title == "" {
		data.Title = "Calculation"
	}

	for i, in := range p.CalculationData {
		data.Inputs = append(data.Inputs, ExportRow{
			Index: fmt.Sprintf("%d", i+1),
			Label: in.Label,
			Value: in.Display(),
			Unit:  in.Unit,
		})
	}

	for i, out := range p.Outputs {
		data.Outputs = append(data.Outputs, ExportRow{
			Index:   fmt.Sprintf("%d", i+1),
			Label:   out.Label,
			Formula: out.Formula,
			Value:   DisplayOutput(out),
			Unit:    out.Unit,
		})
		if out.Key == "totalCost" {
			data.TotalCost = out.Value
			data.HasTotalCost = true
		}
	}
	return data
}

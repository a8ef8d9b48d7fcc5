package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders a calculation's input and result tables using
// maroto/v2 and returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)

	addSectionTitle(m, "Inputs")
	addTableHeader(m, []tableColumn{{"#", 1}, {"Input", 6}, {"Value", 3}, {"Unit", 2}})
	for i, r := range data.Inputs {
		addTableRow(m, i, []tableCell{
			{r.Index, 1, align.Center},
			{r.Label, 6, align.Left},
			{r.Value, 3, align.Right},
			{r.Unit, 2, align.Center},
		})
	}

	m.AddRows(row.New(6))

	addSectionTitle(m, "Results")
	addTableHeader(m, []tableColumn{{"#", 1}, {"Material", 4}, {"Formula", 3}, {"Quantity", 2}, {"Unit", 2}})
	for i, r := range data.Outputs {
		addTableRow(m, i, []tableCell{
			{r.Index, 1, align.Center},
			{r.Label, 4, align.Left},
			{r.Formula, 3, align.Left},
			{r.Value, 2, align.Right},
			{r.Unit, 2, align.Center},
		})
	}

	if data.HasTotalCost {
		addSummary(m, data)
	}

	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

type tableColumn struct {
	title string
	size  int
}

type tableCell struct {
	value string
	size  int
	align align.Type
}

// addHeader adds the calculator title and date.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Calculator: %s", data.CalculatorID), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)
}

func addTableHeader(m core.Maroto, columns []tableColumn) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	r := row.New(8)
	for _, c := range columns {
		r.Add(col.New(c.size).Add(text.New(c.title, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(r)
}

// addTableRow adds one data row; odd rows get a light gray band.
func addTableRow(m core.Maroto, i int, cells []tableCell) {
	var cellStyle *props.Cell
	if i%2 == 1 {
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	r := row.New(7)
	for _, c := range cells {
		column := col.New(c.size).Add(text.New(c.value, props.Text{Size: 8, Align: c.align}))
		if cellStyle != nil {
			column = column.WithStyle(cellStyle)
		}
		r.Add(column)
	}
	m.AddRows(r)
}

// addSummary adds the total cost band.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Total Cost", bold)).WithStyle(summaryCell),
			col.New(4).Add(text.New(FormatINR(data.TotalCost), bold)).WithStyle(summaryCell),
		),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s. Quantities are estimates; verify on site.", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

package templates

import (
	"github.com/a-h/templ"

	"estimator/services"
)

// CalculationDetailData is the detailed result view of a decoded payload.
type CalculationDetailData struct {
	CalculatorID string
	Title        string
	Inputs       []services.InputRow
	Rows         []services.DetailRow
	Payload      string
}

func CalculationDetailPage(data CalculationDetailData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.Title+" · Details", header, sidebar, CalculationDetailContent(data))
}

func CalculationDetailContent(data CalculationDetailData) templ.Component {
	return component(func(h *htmlWriter) {
		base := "/calculators/" + data.CalculatorID

		h.raw(`<section id="calculation-detail"><h1>`)
		h.text(data.Title)
		h.raw(`</h1>`)

		h.raw(`<h2>Inputs</h2><dl class="inputs">`)
		for _, in := range data.Inputs {
			h.raw(`<dt>`)
			h.text(in.Label)
			h.raw(`</dt><dd>`)
			h.text(in.Display())
			if in.Unit != "" {
				h.text(" " + in.Unit)
			}
			h.raw(`</dd>`)
		}
		h.raw(`</dl>`)

		h.raw(`<h2>Calculation</h2><ol class="detail-rows">`)
		for _, row := range data.Rows {
			h.raw(`<li><span class="formula">`)
			h.text(row.FormulaDisplay)
			h.raw(`</span><span class="value">`)
			h.text(row.ValueDisplay)
			h.raw(`</span></li>`)
		}
		h.raw(`</ol>`)

		h.raw(`<form method="post" class="detail-actions" hx-boost="false">`)
		h.raw(`<input type="hidden" name="payload"`)
		h.attr("value", data.Payload)
		h.raw(`><button type="submit" class="btn"`)
		h.attr("formaction", base+"/export/pdf")
		h.raw(`>Download PDF</button><button type="submit" class="btn"`)
		h.attr("formaction", base+"/export/excel")
		h.raw(`>Download Excel</button></form>`)

		h.raw(`<a class="btn btn-ghost"`)
		h.href("href", base)
		h.raw(`>Back to calculator</a></section>`)
	})
}

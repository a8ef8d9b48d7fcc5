package templates

import (
	"fmt"

	"github.com/a-h/templ"

	"estimator/services"
)

// CalculatorField is one rendered input with its last accepted text.
type CalculatorField struct {
	Key         string
	Label       string
	Unit        string
	Prefix      bool
	Placeholder string
	Value       string
}

// CalculatorPageData is everything the calculator page renders.
type CalculatorPageData struct {
	ID          string
	Title       string
	Description string
	System      string
	Fields      []CalculatorField
	Result      *services.Result
	// Payload is the encoded detail payload of Result.
	Payload string
}

// CalculatorIndexPage lists every calculator grouped by category.
func CalculatorIndexPage(groups []services.CalculatorGroup, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Calculators", header, sidebar, CalculatorIndexContent(groups))
}

func CalculatorIndexContent(groups []services.CalculatorGroup) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="calculator-index"><h1>Calculators</h1>`)
		for _, g := range groups {
			h.raw(`<h2>`)
			h.text(g.Category)
			h.raw(`</h2><div class="card-grid">`)
			for _, def := range g.Calculators {
				h.raw(`<a class="card"`)
				h.href("href", "/calculators/"+def.ID)
				h.raw(`><h3>`)
				h.text(def.Title)
				h.raw(`</h3>`)
				if def.Description != "" {
					h.raw(`<p>`)
					h.text(def.Description)
					h.raw(`</p>`)
				}
				h.raw(`</a>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</section>`)
	})
}

func CalculatorPage(data CalculatorPageData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.Title, header, sidebar, CalculatorContent(data))
}

// CalculatorContent is the swappable calculator section: the input form and,
// once calculated, the results.
func CalculatorContent(data CalculatorPageData) templ.Component {
	return component(func(h *htmlWriter) {
		base := "/calculators/" + data.ID

		h.raw(`<section id="calculator" class="calculator">`)
		h.raw(`<h1>`)
		h.text(data.Title)
		h.raw(`</h1>`)
		if data.Description != "" {
			h.raw(`<p class="muted">`)
			h.text(data.Description)
			h.raw(`</p>`)
		}

		h.raw(`<form id="calculator-form"`)
		h.attr("hx-post", base+"/calculate")
		h.raw(` hx-target="#calculator" hx-swap="outerHTML">`)

		h.raw(`<fieldset class="unit-system"><legend>Units</legend>`)
		for _, sys := range []string{"metric", "imperial"} {
			h.raw(`<label><input type="radio" name="system"`)
			h.attr("value", sys)
			if sys == data.System {
				h.raw(` checked`)
			}
			h.raw(`> `)
			h.text(sys)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset>`)

		for _, f := range data.Fields {
			h.render(CalculatorInput(data.ID, f))
		}

		h.raw(`<div class="actions">`)
		h.raw(`<button type="button" class="btn btn-outline"`)
		h.attr("hx-post", base+"/reset")
		h.raw(` hx-target="#calculator" hx-swap="outerHTML">Reset</button>`)
		h.raw(`<button type="submit" class="btn btn-primary">Calculate</button>`)
		h.raw(`</div></form>`)

		if data.Result != nil {
			h.render(CalculatorResults(data))
		}
		h.raw(`</section>`)
	})
}

// CalculatorInput renders one numeric input. Keystrokes are posted to the
// input guard, which swaps back the field holding the last accepted text.
func CalculatorInput(calculatorID string, f CalculatorField) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="input-group"`)
		h.attr("id", "field-"+f.Key)
		h.raw(`><label`)
		h.attr("for", "input-"+f.Key)
		h.raw(`>`)
		h.text(f.Label)
		h.raw(`</label><div class="join">`)
		if f.Prefix && f.Unit != "" {
			unitBadge(h, f.Unit)
		}
		h.raw(`<input type="text" inputmode="decimal" autocomplete="off" class="input"`)
		h.attr("id", "input-"+f.Key)
		h.attr("name", f.Key)
		h.attr("value", f.Value)
		h.attr("placeholder", f.Placeholder)
		h.attr("hx-post", "/calculators/"+calculatorID+"/input")
		h.attr("hx-vals", fmt.Sprintf(`{"key":%q}`, f.Key))
		h.attr("hx-include", "#previous-"+f.Key)
		h.raw(` hx-trigger="input changed delay:150ms"`)
		h.attr("hx-target", "#field-"+f.Key)
		h.raw(` hx-swap="outerHTML">`)
		if !f.Prefix && f.Unit != "" {
			unitBadge(h, f.Unit)
		}
		h.raw(`</div><input type="hidden"`)
		h.attr("id", "previous-"+f.Key)
		h.attr("name", "previous_"+f.Key)
		h.attr("value", f.Value)
		h.raw(`></div>`)
	})
}

func unitBadge(h *htmlWriter, unit string) {
	h.raw(`<span class="unit">`)
	h.text(unit)
	h.raw(`</span>`)
}

// CalculatorResults renders the input echo, the material table, the chart
// and the detailed-result form carrying the encoded payload.
func CalculatorResults(data CalculatorPageData) templ.Component {
	return component(func(h *htmlWriter) {
		r := data.Result
		h.raw(`<div id="results" class="results">`)

		h.raw(`<h2>Inputs</h2><table class="table"><thead><tr><th>Input</th><th>Value</th><th>Unit</th></tr></thead><tbody>`)
		for _, in := range r.Inputs {
			h.raw(`<tr><td>`)
			h.text(in.Label)
			h.raw(`</td><td class="num">`)
			h.text(in.Display())
			h.raw(`</td><td>`)
			h.text(in.Unit)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)

		h.raw(`<h2>Results</h2><table class="table"><thead><tr><th>Material</th><th>Quantity</th><th>Unit</th></tr></thead><tbody>`)
		for _, out := range r.Outputs {
			h.raw(`<tr`)
			h.attr("data-key", out.Key)
			h.raw(`><td>`)
			h.text(out.Label)
			h.raw(`</td><td class="num">`)
			h.text(out.Display())
			h.raw(`</td><td>`)
			h.text(out.Unit)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)

		if r.Chart != nil {
			h.render(DonutChart(r.Chart))
		}

		base := "/calculators/" + data.ID
		h.raw(`<form method="post" class="detail-actions"`)
		h.attr("action", base+"/detail")
		h.raw(` hx-boost="false"><input type="hidden" name="payload"`)
		h.attr("value", data.Payload)
		h.raw(`><button type="submit" class="btn">View Detailed Result</button>`)
		h.raw(`<button type="submit" class="btn btn-ghost"`)
		h.attr("formaction", base+"/export/pdf")
		h.raw(`>PDF</button><button type="submit" class="btn btn-ghost"`)
		h.attr("formaction", base+"/export/excel")
		h.raw(`>Excel</button></form>`)

		h.raw(`</div>`)
	})
}

// DonutChart draws the chart as an SVG ring where each segment's arc length
// is its percentage of a 100-unit circumference.
func DonutChart(chart *services.Chart) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<figure class="chart"><svg viewBox="0 0 42 42" width="180" height="180" role="img">`)
		h.raw(`<circle cx="21" cy="21" r="15.91549431" fill="transparent" stroke="#e5e7eb" stroke-width="5"></circle>`)
		for _, seg := range chart.Segments {
			if seg.Percent <= 0 {
				continue
			}
			h.rawf(`<circle cx="21" cy="21" r="15.91549431" fill="transparent" stroke-width="5" stroke-dasharray="%.3f %.3f" stroke-dashoffset="%.3f"`,
				seg.Percent, 100-seg.Percent, 25-seg.Offset)
			h.attr("stroke", seg.Color)
			h.raw(`><title>`)
			h.text(seg.Label)
			h.raw(`</title></circle>`)
		}
		h.raw(`</svg><figcaption>`)
		h.text(chart.Title)
		h.raw(`<ul class="legend">`)
		for _, seg := range chart.Segments {
			h.raw(`<li><span class="swatch"`)
			h.attr("style", "background:"+seg.Color)
			h.raw(`></span>`)
			h.text(fmt.Sprintf("%s %.1f%%", seg.Label, seg.Percent))
			h.raw(`</li>`)
		}
		h.raw(`</ul></figcaption></figure>`)
	})
}

package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// InputRow echoes one entered input with its display unit.
type InputRow struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Display formats the input to 3 decimals.
func (r InputRow) Display() string {
	return fmt.Sprintf("%.3f", r.Value)
}

// OutputRow is one computed quantity ready for display.
type OutputRow struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Formula string       `json:"formula"`
	Value   float64      `json:"value"`
	Unit    string       `json:"unit"`
	Format  FormatPolicy `json:"format"`
}

// Display formats the value with the row's policy.
func (r OutputRow) Display() string {
	return FormatValue(r.Value, r.Format)
}

// FormatValue renders v as a floored integer or with fixed decimals.
func FormatValue(v float64, policy FormatPolicy) string {
	v = finiteOrZero(v)
	if policy.Floor {
		return fmt.Sprintf("%.0f", math.Floor(v))
	}
	return fmt.Sprintf("%.*f", clampDecimals(policy.Decimals), v)
}

// Result is the rendered outcome of one Calculate pass.
type Result struct {
	CalculatorID string
	Title        string
	Inputs       []InputRow
	Outputs      []OutputRow
	Chart        *Chart
}

// Present builds the input echo table and the result table. Inputs are
// echoed as entered, in their display unit.
func Present(def *CalculatorDef, form *Form, outputs Values) *Result {
	res := &Result{CalculatorID: def.ID, Title: def.Title}

	for _, in := range def.Inputs {
		res.Inputs = append(res.Inputs, InputRow{
			Key:   in.Key,
			Label: in.Label,
			Value: Normalize(form.Raw(in.Key), 1),
			Unit:  in.Unit,
		})
	}

	for _, out := range def.Outputs {
		if out.Hidden {
			continue
		}
		res.Outputs = append(res.Outputs, OutputRow{
			Key:     out.Key,
			Label:   out.Label,
			Formula: out.FormulaText,
			Value:   outputs[out.Key],
			Unit:    out.Unit,
			Format:  out.Format,
		})
	}

	if def.Chart != nil {
		res.Chart = BuildChart(def, outputs)
	}
	return res
}

// DetailPayload is the opaque state handed to the detailed view and exports.
type DetailPayload struct {
	CalculatorID    string      `json:"calculator"`
	Title           string      `json:"title"`
	CalculationData []InputRow  `json:"calculationData"`
	Outputs         []OutputRow `json:"outputs"`
}

// Payload captures the result for navigation to the detailed view.
func (r *Result) Payload() DetailPayload {
	return DetailPayload{
		CalculatorID:    r.CalculatorID,
		Title:           r.Title,
		CalculationData: r.Inputs,
		Outputs:         r.Outputs,
	}
}

// Encode serialises the payload for a hidden form field.
func (p DetailPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode detail payload: %w", err)
	}
	return string(data), nil
}

// DecodeDetailPayload parses a payload produced by Encode.
func DecodeDetailPayload(s string) (DetailPayload, error) {
	var p DetailPayload
	if strings.TrimSpace(s) == "" {
		return p, fmt.Errorf("decode detail payload: empty payload")
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return p, fmt.Errorf("decode detail payload: %w", err)
	}
	for i := range p.Outputs {
		p.Outputs[i].Format.Decimals = clampDecimals(p.Outputs[i].Format.Decimals)
	}
	return p, nil
}

// DetailRow is one output of the detailed view.
type DetailRow struct {
	Label          string
	FormulaDisplay string
	ValueDisplay   string
}

// DetailRows formats the payload's outputs without recomputing anything.
func (p DetailPayload) DetailRows() []DetailRow {
	rows := make([]DetailRow, 0, len(p.Outputs))
	for _, out := range p.Outputs {
		formula := out.Label
		if out.Formula != "" {
			formula = out.Label + " = " + out.Formula
		}
		value := out.Display()
		if out.Unit != "" {
			value += " " + out.Unit
		}
		rows = append(rows, DetailRow{
			Label:          out.Label,
			FormulaDisplay: formula,
			ValueDisplay:   value,
		})
	}
	return rows
}

// CalculatorState is the page state of one calculator: its form, the
// cosmetic unit system toggle, and the last revealed result.
type CalculatorState struct {
	Def    *CalculatorDef
	Form   *Form
	System string
	Result *Result
}

// NewCalculatorState returns an empty state with results hidden.
func NewCalculatorState(def *CalculatorDef) *CalculatorState {
	return &CalculatorState{
		Def:    def,
		Form:   NewForm(def),
		System: "metric",
	}
}

// Calculate runs one evaluation pass and reveals its result. Results are not
// refreshed by later input changes until Calculate runs again.
func (s *CalculatorState) Calculate() error {
	out, err := Evaluate(s.Def, s.Form)
	if err != nil {
		return err
	}
	s.Result = Present(s.Def, s.Form, out)
	return nil
}

// Reset clears every input and hides the results.
func (s *CalculatorState) Reset() {
	s.Form.Reset()
	s.Result = nil
}

// ResultsVisible reports whether the result tables are shown.
func (s *CalculatorState) ResultsVisible() bool {
	return s.Result != nil
}

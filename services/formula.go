package services

import (
	"fmt"
	"math"
)

// Values maps input or output keys to base-unit numbers. Missing keys read
// as 0.
type Values map[string]float64

// Formula computes a calculator's outputs from normalized inputs in one pass.
// Formulas are pure and must route every division through SafeDiv.
type Formula func(in Values) Values

// Formulas is the lookup of calculator type to formula.
var Formulas = map[string]Formula{
	"brick-volume":        brickVolumeFormula,
	"brick-wall":          brickWallFormula,
	"concrete":            concreteFormula,
	"excavation":          excavationFormula,
	"flooring":            flooringFormula,
	"metal-bar":           metalBarFormula,
	"metal-plate":         metalPlateFormula,
	"roof-gable":          roofGableFormula,
	"roof-hip":            roofHipFormula,
	"roof-shed":           roofShedFormula,
	"swimming-pool":       swimmingPoolFormula,
	"water-tank-cylinder": waterTankCylinderFormula,
	"water-tank-rect":     waterTankRectFormula,
	"waterproofing":       waterproofingFormula,
}

// SafeDiv divides num by den, yielding 0 for a zero denominator.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finiteOrZero(num / den)
}

// Evaluate runs the formula registered for def against the form's normalized
// inputs. Every output declared by def is present in the result and finite.
func Evaluate(def *CalculatorDef, form *Form) (Values, error) {
	name := def.Formula
	if name == "" {
		name = def.ID
	}
	formula, ok := Formulas[name]
	if !ok {
		return nil, fmt.Errorf("no formula %q registered for calculator %q", name, def.ID)
	}

	raw := formula(form.Normalized())
	out := make(Values, len(def.Outputs))
	for _, o := range def.Outputs {
		out[o.Key] = finiteOrZero(raw[o.Key])
	}
	return out, nil
}

// CostLine is one material's quantity and unit price.
type CostLine struct {
	Quantity  float64
	UnitPrice float64
}

// Cost returns quantity × unit price.
func (c CostLine) Cost() float64 {
	return c.Quantity * c.UnitPrice
}

// AggregateCosts prices each line and sums them to a total.
func AggregateCosts(lines ...CostLine) (costs []float64, total float64) {
	costs = make([]float64, len(lines))
	for i, l := range lines {
		costs[i] = l.Cost()
		total += costs[i]
	}
	return costs, total
}

// ceilCount rounds a piece count up, ignoring float noise just above an
// integer.
func ceilCount(v float64) float64 {
	return math.Ceil(v - 1e-9)
}

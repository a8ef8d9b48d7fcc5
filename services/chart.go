package services

import "math"

// ChartSegment is one slice of a donut chart.
type ChartSegment struct {
	Label   string
	Value   float64
	Percent float64
	// Offset is the cumulative percentage before this segment.
	Offset float64
	Color  string
}

// Chart is a percentage-weighted breakdown of several outputs.
type Chart struct {
	Title    string
	Segments []ChartSegment
	Total    float64
}

var chartPalette = []string{"#6b7280", "#d97706", "#2563eb", "#16a34a", "#dc2626", "#7c3aed"}

// BuildChart computes each chart segment's share of the segments' sum. A zero
// sum yields zero percentages.
func BuildChart(def *CalculatorDef, outputs Values) *Chart {
	if def.Chart == nil {
		return nil
	}

	chart := &Chart{Title: def.Chart.Title}
	for _, key := range def.Chart.Segments {
		chart.Total += math.Max(outputs[key], 0)
	}

	var offset float64
	for i, key := range def.Chart.Segments {
		label := key
		if out, ok := def.Output(key); ok {
			label = out.Label
		}
		value := math.Max(outputs[key], 0)
		pct := SafeDiv(value*100, chart.Total)
		chart.Segments = append(chart.Segments, ChartSegment{
			Label:   label,
			Value:   value,
			Percent: pct,
			Offset:  offset,
			Color:   chartPalette[i%len(chartPalette)],
		})
		offset += pct
	}
	return chart
}

package services

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustCalculator(t *testing.T, id string) *CalculatorDef {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	def, ok := catalog.Get(id)
	if !ok {
		t.Fatalf("calculator %q not registered", id)
	}
	return def
}

func fillForm(t *testing.T, form *Form, values map[string]string) {
	t.Helper()
	for key, v := range values {
		if !form.Set(key, v) {
			t.Fatalf("form rejected %s=%q", key, v)
		}
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAcceptNumericInput(t *testing.T) {
	tests := []struct {
		value  string
		expect bool
	}{
		{"", true},
		{"0", true},
		{"12", true},
		{"12.3", true},
		{"12.", true},
		{".5", true},
		{".", true},
		{"12a3", false},
		{"12.3.", false},
		{"-1", false},
		{"1e3", false},
		{" 1", false},
		{"1,000", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := AcceptNumericInput(tt.value); got != tt.expect {
				t.Errorf("AcceptNumericInput(%q) = %v, want %v", tt.value, got, tt.expect)
			}
		})
	}
}

func TestForm_SetRejectsInvalidKeystrokes(t *testing.T) {
	form := NewForm(mustCalculator(t, "brick-volume"))

	if !form.Set("brickLength", "12") {
		t.Fatal("expected 12 to be accepted")
	}
	if form.Set("brickLength", "12a3") {
		t.Error("expected 12a3 to be rejected")
	}
	if got := form.Raw("brickLength"); got != "12" {
		t.Errorf("raw after rejected keystroke = %q, want %q", got, "12")
	}

	if !form.Set("brickLength", "12.3") {
		t.Error("expected 12.3 to be accepted")
	}
	if form.Set("brickLength", "12.3.") {
		t.Error("expected a second decimal point to be rejected")
	}
	if got := form.Raw("brickLength"); got != "12.3" {
		t.Errorf("raw = %q, want %q", got, "12.3")
	}

	if !form.Set("brickLength", "") {
		t.Error("expected backspacing to empty to be accepted")
	}
	if form.Set("noSuchField", "1") {
		t.Error("expected unknown key to be rejected")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		factor float64
		expect float64
	}{
		{"mm to m", "1000", 1.0 / 1000, 1.0},
		{"identity", "2.5", 1, 2.5},
		{"empty", "", 1, 0},
		{"dot only", ".", 1, 0},
		{"garbage", "abc", 1, 0},
		{"trailing dot", "12.", 1, 12},
		{"zero factor", "5", 0, 0},
		{"nan text", "NaN", 1, 0},
		{"inf text", "Inf", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.factor)
			if got != tt.expect {
				t.Errorf("Normalize(%q, %v) = %v, want %v", tt.raw, tt.factor, got, tt.expect)
			}
		})
	}
}

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(10, 0); got != 0 {
		t.Errorf("SafeDiv(10, 0) = %v, want 0", got)
	}
	if got := SafeDiv(0, 0); got != 0 {
		t.Errorf("SafeDiv(0, 0) = %v, want 0", got)
	}
	if got := SafeDiv(10, 4); got != 2.5 {
		t.Errorf("SafeDiv(10, 4) = %v, want 2.5", got)
	}
}

func TestAggregateCosts(t *testing.T) {
	costs, total := AggregateCosts(
		CostLine{Quantity: 100, UnitPrice: 8},
		CostLine{Quantity: 5, UnitPrice: 350},
		CostLine{Quantity: 2, UnitPrice: 1500},
	)

	if diff := cmp.Diff([]float64{800, 1750, 3000}, costs); diff != "" {
		t.Errorf("costs mismatch (-want +got):\n%s", diff)
	}
	if total != 5550 {
		t.Errorf("total = %v, want 5550", total)
	}

	want := []string{"800.000", "1750.000", "3000.000", "5550.000"}
	got := []string{
		FormatValue(costs[0], FormatPolicy{Decimals: 3}),
		FormatValue(costs[1], FormatPolicy{Decimals: 3}),
		FormatValue(costs[2], FormatPolicy{Decimals: 3}),
		FormatValue(total, FormatPolicy{Decimals: 3}),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("formatted costs mismatch (-want +got):\n%s", diff)
	}
}

func TestBrickVolumeScenario(t *testing.T) {
	def := mustCalculator(t, "brick-volume")
	form := NewForm(def)
	fillForm(t, form, map[string]string{
		"brickLength":    "230",
		"brickWidth":     "110",
		"brickThickness": "75",
		"joint":          "10",
		"wallVolume":     "10",
		"cementRatio":    "1",
		"sandRatio":      "5",
	})

	out, err := Evaluate(def, form)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	unitVolume := (0.230 + 0.010) * 0.110 * (0.075 + 0.010)
	bricks := 10 / unitVolume
	dry := (10 - bricks*0.230*0.110*0.075) * 1.42

	if !approxEqual(out["unitVolume"], unitVolume) {
		t.Errorf("unitVolume = %v, want %v", out["unitVolume"], unitVolume)
	}
	if !approxEqual(out["noOfBricks"], bricks) {
		t.Errorf("noOfBricks = %v, want %v", out["noOfBricks"], bricks)
	}
	if !approxEqual(out["mortarDryVolume"], dry) {
		t.Errorf("mortarDryVolume = %v, want %v", out["mortarDryVolume"], dry)
	}

	res := Present(def, form, out)
	displays := make(map[string]string)
	for _, row := range res.Outputs {
		displays[row.Key] = row.Display()
	}
	if displays["noOfBricks"] != "4456.328" {
		t.Errorf("noOfBricks display = %q, want %q", displays["noOfBricks"], "4456.328")
	}
	if displays["mortarDryVolume"] != "2.193" {
		t.Errorf("mortarDryVolume display = %q, want %q", displays["mortarDryVolume"], "2.193")
	}
	if displays["cementBags"] != "10" {
		t.Errorf("cementBags display = %q, want floored %q", displays["cementBags"], "10")
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	state := NewCalculatorState(mustCalculator(t, "concrete"))
	fillForm(t, state.Form, map[string]string{
		"length": "4", "width": "3", "depth": "150",
		"cementRatio": "1", "sandRatio": "2", "aggregateRatio": "4",
		"cementPrice": "380",
	})

	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	first := state.Result
	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if diff := cmp.Diff(first, state.Result); diff != "" {
		t.Errorf("second Calculate differs (-first +second):\n%s", diff)
	}
}

func TestCalculatorState_ResultsStayUntilRecalculated(t *testing.T) {
	state := NewCalculatorState(mustCalculator(t, "water-tank-rect"))
	fillForm(t, state.Form, map[string]string{"length": "2", "width": "2", "height": "1"})

	if state.ResultsVisible() {
		t.Fatal("results should be hidden before Calculate")
	}
	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	state.Form.Set("height", "3")
	if got := state.Result.Outputs[0].Value; got != 4 {
		t.Errorf("stale volume = %v, want 4 until recalculated", got)
	}

	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if got := state.Result.Outputs[0].Value; got != 12 {
		t.Errorf("volume after recalculation = %v, want 12", got)
	}
}

func TestCalculatorState_Reset(t *testing.T) {
	state := NewCalculatorState(mustCalculator(t, "flooring"))
	fillForm(t, state.Form, map[string]string{"roomLength": "5", "roomWidth": "4"})
	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	state.Reset()

	if state.ResultsVisible() {
		t.Error("results should be hidden after Reset")
	}
	for _, f := range state.Form.Fields() {
		if f.RawValue != "" {
			t.Errorf("field %s = %q after Reset, want empty", f.Key, f.RawValue)
		}
	}
}

func TestEvaluate_ZeroSafety(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}

	for _, def := range catalog.All() {
		t.Run(def.ID, func(t *testing.T) {
			state := NewCalculatorState(def)
			if err := state.Calculate(); err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			for _, row := range state.Result.Outputs {
				if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
					t.Errorf("output %s = %v, want finite", row.Key, row.Value)
				}
			}
		})
	}
}

func TestEvaluate_DegenerateDenominators(t *testing.T) {
	tests := []struct {
		calculator string
		inputs     map[string]string
		output     string
	}{
		{"brick-volume", map[string]string{"wallVolume": "10"}, "noOfBricks"},
		{"excavation", map[string]string{"length": "2", "width": "2", "depth": "2"}, "trips"},
		{"flooring", map[string]string{"roomLength": "5", "roomWidth": "4"}, "tilesNeeded"},
		{"roof-hip", map[string]string{"roofLength": "10", "rise": "2"}, "roofArea"},
		{"waterproofing", map[string]string{"length": "3", "width": "3", "coats": "2"}, "litres"},
	}

	for _, tt := range tests {
		t.Run(tt.calculator, func(t *testing.T) {
			def := mustCalculator(t, tt.calculator)
			form := NewForm(def)
			fillForm(t, form, tt.inputs)

			out, err := Evaluate(def, form)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if out[tt.output] != 0 {
				t.Errorf("%s = %v, want 0 for a zero denominator", tt.output, out[tt.output])
			}
		})
	}
}

func TestFormulas(t *testing.T) {
	tests := []struct {
		calculator string
		inputs     map[string]string
		expect     map[string]float64
	}{
		{
			"concrete",
			map[string]string{
				"length": "10", "width": "1", "depth": "100",
				"cementRatio": "1", "sandRatio": "2", "aggregateRatio": "4",
				"cementPrice": "400",
			},
			map[string]float64{
				"wetVolume":       1,
				"dryVolume":       1.54,
				"cementVolume":    0.22,
				"sandVolume":      0.44,
				"aggregateVolume": 0.88,
			},
		},
		{
			"excavation",
			map[string]string{
				"length": "4", "width": "5", "depth": "2", "swellPercent": "25",
				"truckCapacity": "10", "pricePerTrip": "1200",
			},
			map[string]float64{"volume": 40, "bulkedVolume": 50, "trips": 5, "haulageCost": 6000},
		},
		{
			"flooring",
			map[string]string{
				"roomLength": "4", "roomWidth": "4", "tileLength": "400", "tileWidth": "400",
				"tilesPerBox": "6", "pricePerBox": "900",
			},
			map[string]float64{"floorArea": 16, "tilesNeeded": 100, "boxes": 17, "totalCost": 15300},
		},
		{
			"roof-gable",
			map[string]string{
				"roofLength": "10", "span": "8", "rise": "3", "sheetCoverage": "5", "sheetPrice": "700",
			},
			map[string]float64{"slantLength": 5, "roofArea": 100, "sheets": 20, "totalCost": 14000},
		},
		{
			"roof-shed",
			map[string]string{"roofLength": "6", "span": "4", "rise": "3", "sheetCoverage": "3"},
			map[string]float64{"slantLength": 5, "roofArea": 30, "sheets": 10},
		},
		{
			"roof-hip",
			map[string]string{"roofLength": "10", "span": "8", "rise": "3"},
			map[string]float64{"pitchFactor": 1.25, "roofArea": 100},
		},
		{
			"swimming-pool",
			map[string]string{"length": "10", "width": "5", "shallowDepth": "1", "deepDepth": "2"},
			map[string]float64{"averageDepth": 1.5, "volume": 75, "litres": 75000, "interiorArea": 95},
		},
		{
			"water-tank-cylinder",
			map[string]string{"diameter": "2", "height": "1"},
			map[string]float64{"volume": math.Pi, "litres": math.Pi * 1000},
		},
		{
			"waterproofing",
			map[string]string{
				"length": "4", "width": "3", "upturnHeight": "500", "coats": "2",
				"coverage": "4", "materialPrice": "300", "labourRate": "50",
			},
			map[string]float64{"area": 19, "litres": 9.5, "materialCost": 2850, "labourCost": 950, "totalCost": 3800},
		},
		{
			"metal-plate",
			map[string]string{"length": "2", "width": "1", "thickness": "10", "quantity": "1", "pricePerKg": "60"},
			map[string]float64{"volume": 0.02, "weight": 157, "totalCost": 9420},
		},
	}

	for _, tt := range tests {
		t.Run(tt.calculator, func(t *testing.T) {
			def := mustCalculator(t, tt.calculator)
			form := NewForm(def)
			fillForm(t, form, tt.inputs)

			out, err := Evaluate(def, form)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			for key, want := range tt.expect {
				if math.Abs(out[key]-want) > 1e-6 {
					t.Errorf("%s = %v, want %v", key, out[key], want)
				}
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		policy FormatPolicy
		expect string
	}{
		{"three decimals", 2.19264, FormatPolicy{Decimals: 3}, "2.193"},
		{"floor", 10.99, FormatPolicy{Floor: true}, "10"},
		{"zero", 0, FormatPolicy{Decimals: 3}, "0.000"},
		{"nan", math.NaN(), FormatPolicy{Decimals: 3}, "0.000"},
		{"zero decimals", 12.6, FormatPolicy{Decimals: 0}, "13"},
		{"negative decimals", 2.5, FormatPolicy{Decimals: -4}, "2"},
		{"excess decimals", 1.0 / 3, FormatPolicy{Decimals: 1_000_000}, "0.333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value, tt.policy); got != tt.expect {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.expect)
			}
		})
	}
}

func TestDetailPayload_IsNotRecomputed(t *testing.T) {
	state := NewCalculatorState(mustCalculator(t, "water-tank-rect"))
	fillForm(t, state.Form, map[string]string{"length": "2", "width": "3", "height": "1"})
	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	encoded, err := state.Result.Payload().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Later edits on the origin page must not leak into the detail view.
	state.Form.Set("length", "20")
	if err := state.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	payload, err := DecodeDetailPayload(encoded)
	if err != nil {
		t.Fatalf("DecodeDetailPayload: %v", err)
	}

	want := []DetailRow{
		{Label: "Volume", FormulaDisplay: "Volume = L × W × H", ValueDisplay: "6.000 m³"},
		{Label: "Capacity", FormulaDisplay: "Capacity = volume × 1000", ValueDisplay: "6000.000 L"},
	}
	if diff := cmp.Diff(want, payload.DetailRows()); diff != "" {
		t.Errorf("detail rows mismatch (-want +got):\n%s", diff)
	}
	if payload.CalculationData[0].Value != 2 {
		t.Errorf("calculationData[0] = %v, want 2", payload.CalculationData[0].Value)
	}
}

func TestDecodeDetailPayload_Invalid(t *testing.T) {
	if _, err := DecodeDetailPayload(""); err == nil {
		t.Error("expected error for empty payload")
	}
	if _, err := DecodeDetailPayload("{not json"); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestDecodeDetailPayload_ClampsDecimals(t *testing.T) {
	encoded := `{"calculator":"water-tank-rect","outputs":[` +
		`{"key":"volume","label":"Volume","value":6,"unit":"m³","format":{"decimals":-3}},` +
		`{"key":"capacity","label":"Capacity","value":6000,"unit":"L","format":{"decimals":1000000}}]}`

	payload, err := DecodeDetailPayload(encoded)
	if err != nil {
		t.Fatalf("DecodeDetailPayload: %v", err)
	}

	var decimals []int
	for _, out := range payload.Outputs {
		decimals = append(decimals, out.Format.Decimals)
	}
	if diff := cmp.Diff([]int{0, MaxDecimals}, decimals); diff != "" {
		t.Errorf("decimals mismatch (-want +got):\n%s", diff)
	}

	for _, row := range payload.DetailRows() {
		if strings.Contains(row.ValueDisplay, "BADPREC") || len(row.ValueDisplay) > 32 {
			t.Errorf("value display %q is not bounded", row.ValueDisplay)
		}
	}
}

func TestBuildChart(t *testing.T) {
	def := mustCalculator(t, "concrete")

	chart := BuildChart(def, Values{"cementVolume": 1, "sandVolume": 2, "aggregateVolume": 1})
	if chart == nil {
		t.Fatal("expected a chart for concrete")
	}
	got := []float64{chart.Segments[0].Percent, chart.Segments[1].Percent, chart.Segments[2].Percent}
	if diff := cmp.Diff([]float64{25, 50, 25}, got); diff != "" {
		t.Errorf("percent mismatch (-want +got):\n%s", diff)
	}
	if chart.Segments[2].Offset != 75 {
		t.Errorf("last offset = %v, want 75", chart.Segments[2].Offset)
	}

	empty := BuildChart(def, Values{})
	for _, seg := range empty.Segments {
		if seg.Percent != 0 {
			t.Errorf("segment %s percent = %v, want 0 for an empty mix", seg.Label, seg.Percent)
		}
	}
}

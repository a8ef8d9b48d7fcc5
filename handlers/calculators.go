package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/templates"
)

var unitSystems = []string{"metric", "imperial"}

// stateFromForm rebuilds a calculator's page state from a posted form. A value
// the input guard rejects falls back to the field's last accepted text.
func stateFromForm(def *services.CalculatorDef, r *http.Request) *services.CalculatorState {
	state := services.NewCalculatorState(def)
	for _, in := range def.Inputs {
		if !state.Form.Set(in.Key, r.FormValue(in.Key)) {
			state.Form.Set(in.Key, r.FormValue("previous_"+in.Key))
		}
	}
	for _, sys := range unitSystems {
		if r.FormValue("system") == sys {
			state.System = sys
		}
	}
	return state
}

func calculatorField(in services.InputDef, value string) templates.CalculatorField {
	return templates.CalculatorField{
		Key:         in.Key,
		Label:       in.Label,
		Unit:        in.Unit,
		Prefix:      in.Placement == services.UnitPrefix,
		Placeholder: in.Placeholder,
		Value:       value,
	}
}

// buildCalculatorPageData converts page state into template data, encoding
// the detail payload when results are visible.
func buildCalculatorPageData(state *services.CalculatorState) (templates.CalculatorPageData, error) {
	data := templates.CalculatorPageData{
		ID:          state.Def.ID,
		Title:       state.Def.Title,
		Description: state.Def.Description,
		System:      state.System,
	}
	for _, in := range state.Def.Inputs {
		data.Fields = append(data.Fields, calculatorField(in, state.Form.Raw(in.Key)))
	}

	if state.ResultsVisible() {
		payload, err := state.Result.Payload().Encode()
		if err != nil {
			return data, err
		}
		data.Result = state.Result
		data.Payload = payload
	}
	return data, nil
}

func renderCalculator(e *core.RequestEvent, state *services.CalculatorState) error {
	data, err := buildCalculatorPageData(state)
	if err != nil {
		log.Printf("calculators: could not encode result for %s: %v", state.Def.ID, err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}

	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.CalculatorContent(data)
	} else {
		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component = templates.CalculatorPage(data, headerData, sidebarData)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleCalculatorIndex lists the calculators grouped by category.
func HandleCalculatorIndex(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		groups := catalog.Grouped()

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.CalculatorIndexContent(groups)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.CalculatorIndexPage(groups, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleCalculatorPage renders a calculator with empty inputs and hidden results.
func HandleCalculatorPage(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}
		return renderCalculator(e, services.NewCalculatorState(def))
	}
}

// HandleCalculatorCalculate evaluates the posted inputs and reveals the results.
func HandleCalculatorCalculate(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		state := stateFromForm(def, e.Request)
		if err := state.Calculate(); err != nil {
			log.Printf("calculators: evaluate %s: %v", def.ID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return renderCalculator(e, state)
	}
}

// HandleCalculatorReset clears every input and hides the results.
func HandleCalculatorReset(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}
		state := services.NewCalculatorState(def)
		if err := e.Request.ParseForm(); err == nil {
			state = stateFromForm(def, e.Request)
		}
		state.Reset()
		return renderCalculator(e, state)
	}
}

// HandleCalculatorInput is the keystroke guard: it swaps back the input with
// the proposed text when it is a valid partial decimal, otherwise with the
// previous text.
func HandleCalculatorInput(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		key := e.Request.FormValue("key")
		in, ok := def.Input(key)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "Unknown input")
		}

		value := e.Request.FormValue("previous_" + key)
		if !services.AcceptNumericInput(value) {
			value = ""
		}
		if proposed := e.Request.FormValue(key); services.AcceptNumericInput(proposed) {
			value = proposed
		}

		return templates.CalculatorInput(def.ID, calculatorField(in, value)).Render(e.Request.Context(), e.Response)
	}
}

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

const stalePayloadMessage = "This result can no longer be opened. Please calculate again."

// decodePayload reads the opaque detail payload posted by the results view and
// checks it belongs to calculatorID.
func decodePayload(e *core.RequestEvent, calculatorID string) (services.DetailPayload, bool) {
	if err := e.Request.ParseForm(); err != nil {
		return services.DetailPayload{}, false
	}
	payload, err := services.DecodeDetailPayload(e.Request.FormValue("payload"))
	if err != nil {
		log.Printf("calculator_detail: %s: %v", calculatorID, err)
		return services.DetailPayload{}, false
	}
	if payload.CalculatorID != calculatorID {
		log.Printf("calculator_detail: payload for %q posted to %q", payload.CalculatorID, calculatorID)
		return services.DetailPayload{}, false
	}
	return payload, true
}

// HandleCalculatorDetail renders the detailed result from the posted payload.
// Values are shown exactly as received; nothing is recomputed.
func HandleCalculatorDetail(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}

		payload, ok := decodePayload(e, def.ID)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, stalePayloadMessage)
		}

		data := templates.CalculationDetailData{
			CalculatorID: def.ID,
			Title:        payload.Title,
			Inputs:       payload.CalculationData,
			Rows:         payload.DetailRows(),
			Payload:      e.Request.FormValue("payload"),
		}
		if data.Title == "" {
			data.Title = def.Title
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.CalculationDetailContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.CalculationDetailPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

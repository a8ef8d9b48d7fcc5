package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
)

// sanitizeFilename replaces characters that are unsafe in download names.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename builds "<title>_<yyyymmdd>.<ext>".
func exportFilename(data services.ExportData, now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", sanitizeFilename(data.Title), now.Format("20060102"), ext)
}

// HandleCalculatorExportExcel returns a handler that downloads the posted
// detail payload as an Excel workbook.
func HandleCalculatorExportExcel(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}

		payload, ok := decodePayload(e, def.ID)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, stalePayloadMessage)
		}

		now := time.Now()
		data := services.BuildExportData(payload, now)

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, now, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleCalculatorExportPDF returns a handler that downloads the posted
// detail payload as a PDF.
func HandleCalculatorExportPDF(app *pocketbase.PocketBase, catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		def, ok := catalog.Get(e.Request.PathValue("type"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Calculator not found")
		}

		payload, ok := decodePayload(e, def.ID)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, stalePayloadMessage)
		}

		now := time.Now()
		data := services.BuildExportData(payload, now)

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, now, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}

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

func formatCreated(record *core.Record) string {
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		return dt.Time().Format("02 Jan 2006")
	}
	return "—"
}

func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_view: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := templates.ProjectViewData{
			ID:              projectID,
			Name:            record.GetString("name"),
			ClientName:      record.GetString("client_name"),
			ReferenceNumber: record.GetString("reference_number"),
			Status:          record.GetString("status"),
			PhotoCount:      countProjectMedia(app, projectID, services.MediaPhoto),
			VideoCount:      countProjectMedia(app, projectID, services.MediaVideo),
			DocumentCount:   countProjectMedia(app, projectID, services.MediaDocument),
			CreatedDate:     formatCreated(record),
		}
		data.MediaCount = data.PhotoCount + data.VideoCount + data.DocumentCount

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectViewContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProjectViewPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

package handlers

import (
	"log"
	"net/http"
	"slices"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/templates"
)

var ProjectStatusOptions = []string{"active", "completed", "on_hold"}

// parseProjectForm reads and validates the project form. excludeID skips the
// project being edited in the duplicate-name check.
func parseProjectForm(app *pocketbase.PocketBase, r *http.Request, excludeID string) templates.ProjectFormData {
	data := templates.ProjectFormData{
		ID:              excludeID,
		Name:            services.SanitizeText(r.FormValue("name")),
		ClientName:      services.SanitizeText(r.FormValue("client_name")),
		ReferenceNumber: services.SanitizeText(r.FormValue("reference_number")),
		Status:          r.FormValue("status"),
		StatusOptions:   ProjectStatusOptions,
		Errors:          make(map[string]string),
	}

	if !slices.Contains(ProjectStatusOptions, data.Status) {
		data.Status = "active"
	}

	if data.Name == "" {
		data.Errors["name"] = "Project name is required"
		return data
	}

	existing, _ := app.FindRecordsByFilter(
		"projects",
		"name = {:name} && id != {:id}",
		"", 1, 0,
		map[string]any{"name": data.Name, "id": excludeID},
	)
	if len(existing) > 0 {
		data.Errors["name"] = "A project with this name already exists"
	}
	return data
}

func applyProjectForm(record *core.Record, data templates.ProjectFormData) {
	record.Set("name", data.Name)
	record.Set("client_name", data.ClientName)
	record.Set("reference_number", data.ReferenceNumber)
	record.Set("status", data.Status)
}

func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProjectFormData{
			Status:        "active",
			StatusOptions: ProjectStatusOptions,
			Errors:        make(map[string]string),
		}
		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component := templates.ProjectCreatePage(data, headerData, sidebarData)
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		data := parseProjectForm(app, e.Request, "")
		if len(data.Errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component := templates.ProjectCreatePage(data, headerData, sidebarData)
			return component.Render(e.Request.Context(), e.Response)
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		applyProjectForm(record, data)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Project created successfully")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/projects")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/projects")
	}
}

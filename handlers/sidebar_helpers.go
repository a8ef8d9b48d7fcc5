package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"

	"estimator/services"
	"estimator/templates"
)

// BuildSidebarData constructs the SidebarData from the current request context.
// It lists the calculator catalog and, with an active project, counts its
// gallery media.
func BuildSidebarData(r *http.Request, app *pocketbase.PocketBase, catalog *services.Catalog) templates.SidebarData {
	data := templates.SidebarData{
		ActivePath: r.URL.Path,
	}
	if catalog != nil {
		data.Calculators = catalog.Grouped()
	}

	activeProj := GetActiveProject(r)
	if activeProj == nil {
		return data
	}
	data.ActiveProject = activeProj
	data.MediaCount = countProjectMedia(app, activeProj.ID, "")

	return data
}

// countProjectMedia counts a project's gallery media, optionally of one type.
func countProjectMedia(app *pocketbase.PocketBase, projectID string, mediaType services.MediaType) int {
	filter := "project = {:pid}"
	params := map[string]any{"pid": projectID}
	if mediaType != "" {
		filter += " && type = {:type}"
		params["type"] = string(mediaType)
	}
	records, err := app.FindRecordsByFilter("gallery_media", filter, "", 0, 0, params)
	if err != nil {
		return 0
	}
	return len(records)
}

package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"estimator/services"
	"estimator/templates"
)

type contextKey string

const (
	ActiveProjectKey contextKey = "activeProject"
	HeaderDataKey    contextKey = "headerData"
	SidebarDataKey   contextKey = "sidebarData"
)

func fromContext[T any](r *http.Request, key contextKey) T {
	val, _ := r.Context().Value(key).(T)
	return val
}

// GetActiveProject returns the project selected by the active_project cookie,
// or nil.
func GetActiveProject(r *http.Request) *templates.ActiveProject {
	return fromContext[*templates.ActiveProject](r, ActiveProjectKey)
}

func GetHeaderData(r *http.Request) templates.HeaderData {
	return fromContext[templates.HeaderData](r, HeaderDataKey)
}

func GetSidebarData(r *http.Request) templates.SidebarData {
	return fromContext[templates.SidebarData](r, SidebarDataKey)
}

// loadActiveProject resolves the active_project cookie. A cookie naming a
// deleted project is cleared.
func loadActiveProject(app *pocketbase.PocketBase, e *core.RequestEvent) *templates.ActiveProject {
	cookie, err := e.Request.Cookie("active_project")
	if err != nil || cookie.Value == "" {
		return nil
	}

	rec, err := app.FindRecordById("projects", cookie.Value)
	if err != nil {
		log.Printf("middleware: active project %s not found, clearing cookie", cookie.Value)
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_project",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return nil
	}
	return &templates.ActiveProject{ID: rec.Id, Name: rec.GetString("name")}
}

// projectSelector lists every project for the header dropdown.
func projectSelector(app *pocketbase.PocketBase, active *templates.ActiveProject) []templates.ProjectSelectorItem {
	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return nil
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		log.Printf("middleware: could not list projects: %v", err)
		return nil
	}

	items := make([]templates.ProjectSelectorItem, 0, len(records))
	for _, rec := range records {
		items = append(items, templates.ProjectSelectorItem{
			ID:       rec.Id,
			Name:     rec.GetString("name"),
			Client:   rec.GetString("client_name"),
			IsActive: active != nil && rec.Id == active.ID,
		})
	}
	return items
}

// ActiveProjectMiddleware puts the active project, the header data and the
// sidebar data (calculator menu plus media count) on the request context.
func ActiveProjectMiddleware(app *pocketbase.PocketBase, catalog *services.Catalog) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		active := loadActiveProject(app, e)

		ctx := context.WithValue(e.Request.Context(), ActiveProjectKey, active)
		ctx = context.WithValue(ctx, HeaderDataKey, templates.HeaderData{
			ActiveProject: active,
			Projects:      projectSelector(app, active),
		})
		e.Request = e.Request.WithContext(ctx)

		// BuildSidebarData reads the active project back from the request.
		ctx = context.WithValue(ctx, SidebarDataKey, BuildSidebarData(e.Request, app, catalog))
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"estimator/testhelpers"
)

func TestHandleProjectCreate_RendersForm(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/create", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`name="name"`, `name="client_name"`, `<option value="active" selected>`)
}

func TestHandleProjectSave_ValidData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "Test Project")
	form.Set("client_name", "Test Client")
	form.Set("reference_number", "REF-001")
	form.Set("status", "on_hold")

	req := postForm("/projects", form)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/projects")

	records, err := app.FindRecordsByFilter("projects", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Test Project"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected project to be created in database")
	}
	if got := records[0].GetString("status"); got != "on_hold" {
		t.Errorf("status = %q, want on_hold", got)
	}
}

func TestHandleProjectSave_SanitizesText(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "<script>alert(1)</script>Villa <b>East</b>")
	form.Set("status", "bogus")

	req := postForm("/projects", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, err := app.FindRecordsByFilter("projects", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Villa East"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected sanitized project name to be stored")
	}
	if got := records[0].GetString("status"); got != "active" {
		t.Errorf("unknown status should fall back to active, got %q", got)
	}
}

func TestHandleProjectSave_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("client_name", "Nobody")

	req := postForm("/projects", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Project name is required")
	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("should not redirect on validation error")
	}
}

func TestHandleProjectSave_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Existing")
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "Existing")

	req := postForm("/projects", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "A project with this name already exists")
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pocketbase/pocketbase/core"
)

func newToastEvent() (*core.RequestEvent, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	return e, rec
}

func triggerEvents(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	raw := rec.Header().Get("HX-Trigger")
	if raw == "" {
		t.Fatal("expected HX-Trigger header to be set")
	}
	var events map[string]any
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	return events
}

func TestSetToast_Types(t *testing.T) {
	for _, toastType := range []string{"success", "error", "warning", "info"} {
		t.Run(toastType, func(t *testing.T) {
			e, rec := newToastEvent()
			SetToast(e, toastType, `Saved "Plot 14" & co`)

			want := map[string]any{
				"showToast": map[string]any{"message": `Saved "Plot 14" & co`, "type": toastType},
			}
			if diff := cmp.Diff(want, triggerEvents(t, rec)); diff != "" {
				t.Errorf("HX-Trigger mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetToast_SetsFlashCookie(t *testing.T) {
	e, rec := newToastEvent()
	SetToast(e, "success", "Project created")

	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash_toast" {
			if c.MaxAge != 10 || c.Path != "/" {
				t.Errorf("unexpected flash cookie: %+v", c)
			}
			return
		}
	}
	t.Error("expected flash_toast cookie")
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	e, rec := newToastEvent()
	rec.Header().Set("HX-Trigger", `{"someEvent":{"key":"value"}}`)

	SetToast(e, "info", "Merged")

	events := triggerEvents(t, rec)
	if _, ok := events["someEvent"]; !ok {
		t.Error("existing event was dropped")
	}
	if _, ok := events["showToast"]; !ok {
		t.Error("toast was not added")
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	e, rec := newToastEvent()
	rec.Header().Set("HX-Trigger", "notValidJSON")

	SetToast(e, "error", "Replaced")

	events := triggerEvents(t, rec)
	if len(events) != 1 {
		t.Errorf("expected only showToast, got %v", events)
	}
}

func TestTriggerEvent_ThenToast(t *testing.T) {
	e, rec := newToastEvent()
	TriggerEvent(e, "galleryChanged")
	SetToast(e, "success", "2 files uploaded")

	events := triggerEvents(t, rec)
	if events["galleryChanged"] != true {
		t.Errorf("galleryChanged = %v, want true", events["galleryChanged"])
	}
	if _, ok := events["showToast"]; !ok {
		t.Error("toast was not merged with galleryChanged")
	}
}

func TestErrorToast_StatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		e, rec := newToastEvent()
		if err := ErrorToast(e, code, "Nope"); err != nil {
			t.Fatalf("ErrorToast returned error: %v", err)
		}
		if rec.Code != code {
			t.Errorf("status = %d, want %d", rec.Code, code)
		}
		if rec.Header().Get("HX-Reswap") != "none" {
			t.Error("expected HX-Reswap none")
		}
		if rec.Body.String() != "Nope" {
			t.Errorf("body = %q", rec.Body.String())
		}
	}
}

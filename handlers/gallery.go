package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"
	"github.com/pocketbase/pocketbase/tools/types"

	"estimator/services"
	"estimator/templates"
)

// sniffLen is how much of each upload is read for content type detection.
const sniffLen = 3072

const uploadFailedReason = "upload failed, please try again"

func galleryQueryFromRequest(r *http.Request, projectID string) services.GalleryQuery {
	q := r.URL.Query()
	return services.GalleryQuery{
		ProjectID: projectID,
		Type:      services.MediaType(q.Get("type")),
		Date:      services.DateFilter(q.Get("date")),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}
}

// findGalleryItems loads a project's media matching the query, oldest or
// newest first.
func findGalleryItems(app *pocketbase.PocketBase, q services.GalleryQuery) ([]services.GalleryMediaItem, error) {
	filter := "project = {:project}"
	params := map[string]any{"project": q.ProjectID}
	if q.Type != "" {
		filter += " && type = {:type}"
		params["type"] = string(q.Type)
	}
	if from, to, ok := q.Window(); ok {
		filter += " && created >= {:from} && created <= {:to}"
		params["from"] = from.UTC().Format(types.DefaultDateLayout)
		params["to"] = to.UTC().Format(types.DefaultDateLayout)
	}

	sort := "-created"
	if !q.SortNewestFirst() {
		sort = "created"
	}

	records, err := app.FindRecordsByFilter("gallery_media", filter, sort, 0, 0, params)
	if err != nil {
		return nil, err
	}

	items := make([]services.GalleryMediaItem, 0, len(records))
	for _, rec := range records {
		mediaType := services.MediaType(rec.GetString("type"))
		created := rec.GetDateTime("created").Time()
		items = append(items, services.GalleryMediaItem{
			ID:      rec.Id,
			URL:     "/api/files/" + rec.BaseFilesPath() + "/" + rec.GetString("file"),
			Type:    mediaType,
			Name:    rec.GetString("name"),
			Date:    created.UTC().Format("2006-01-02"),
			TypeID:  mediaType.TypeID(),
			Created: created,
		})
	}
	return items, nil
}

// HandleGalleryList returns a project's media as JSON grouped by upload day.
func HandleGalleryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := galleryQueryFromRequest(e.Request, e.Request.URL.Query().Get("project"))
		if err := q.Validate(); err != nil {
			SetToast(e, "error", "Invalid gallery filter")
			var fields validation.Errors
			if errors.As(err, &fields) {
				return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid query", "fields": fields})
			}
			return e.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}

		if _, err := app.FindRecordById("projects", q.ProjectID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		items, err := findGalleryItems(app, q)
		if err != nil {
			log.Printf("gallery: could not query media for %s: %v", q.ProjectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load gallery")
		}

		return e.JSON(http.StatusOK, services.GalleryListing{
			Groups: services.GroupByDate(items, q.SortNewestFirst()),
		})
	}
}

func readHead(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

func saveGalleryMedia(app *pocketbase.PocketBase, col *core.Collection, projectID string, fh *multipart.FileHeader, check services.UploadCheck) (string, error) {
	file, err := filesystem.NewFileFromMultipart(fh)
	if err != nil {
		return "", err
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("type", string(check.Type))
	record.Set("type_id", check.Type.TypeID())
	record.Set("name", services.DisplayName(fh.Filename))
	record.Set("file", file)

	if err := app.Save(record); err != nil {
		return "", err
	}
	return record.Id, nil
}

// HandleGalleryUpload stores each file of the multipart "media" field. Files
// are checked and saved independently; the response reports every file.
func HandleGalleryUpload(app *pocketbase.PocketBase, maxBytes int64) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.URL.Query().Get("project")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseMultipartForm(32 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid upload")
		}
		headers := e.Request.MultipartForm.File["media"]
		if len(headers) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "No files selected")
		}

		col, err := app.FindCollectionByNameOrId("gallery_media")
		if err != nil {
			log.Printf("gallery: could not find gallery_media collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		tracker := services.NewUploadTracker()
		for _, fh := range headers {
			key := tracker.Add(fh.Filename)

			head, err := readHead(fh)
			if err != nil {
				log.Printf("gallery: could not read %s: %v", fh.Filename, err)
				tracker.Reject(key, uploadFailedReason)
				continue
			}
			check, err := services.CheckUpload(fh.Filename, fh.Size, head, maxBytes)
			if err != nil {
				tracker.Reject(key, err.Error())
				continue
			}

			tracker.Begin(key)
			id, err := saveGalleryMedia(app, col, projectID, fh, check)
			if err != nil {
				log.Printf("gallery: could not save %s for project %s: %v", fh.Filename, projectID, err)
				err = errors.New(uploadFailedReason)
			}
			tracker.Resolve(services.UploadResult{Key: key, ID: id, Err: err})
		}

		uploaded, failed := tracker.Counts()
		status := http.StatusOK
		switch {
		case failed == 0:
			TriggerEvent(e, "galleryChanged")
			SetToast(e, "success", pluralFiles(uploaded)+" uploaded")
		case uploaded > 0:
			TriggerEvent(e, "galleryChanged")
			SetToast(e, "warning", pluralFiles(uploaded)+" uploaded, "+pluralFiles(failed)+" failed")
		default:
			status = http.StatusUnprocessableEntity
			SetToast(e, "error", "Upload failed")
		}

		return e.JSON(status, map[string]any{
			"files":    tracker.Snapshot(),
			"uploaded": uploaded,
			"failed":   failed,
		})
	}
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return strconv.Itoa(n) + " files"
}

// HandleGalleryDelete removes one media item and its stored file.
func HandleGalleryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("gallery_media", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Media not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("gallery: could not delete media %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete media")
		}

		TriggerEvent(e, "galleryChanged")
		SetToast(e, "success", "Media deleted")
		return e.String(http.StatusOK, "")
	}
}

// HandleGalleryPage renders a project's gallery. An invalid filter falls back
// to the newest-first listing.
func HandleGalleryPage(app *pocketbase.PocketBase, maxBytes int64) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		q := galleryQueryFromRequest(e.Request, projectID)
		if err := q.Validate(); err != nil {
			SetToast(e, "warning", "Invalid filter, showing the most recent media")
			q = services.GalleryQuery{ProjectID: projectID}
		}

		items, err := findGalleryItems(app, q)
		if err != nil {
			log.Printf("gallery: could not query media for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load gallery")
		}

		data := templates.GalleryPageData{
			ProjectID:   projectID,
			ProjectName: project.GetString("name"),
			Query:       q,
			Groups:      services.GroupByDate(items, q.SortNewestFirst()),
			MaxUploadMB: int(maxBytes >> 20),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.GalleryContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.GalleryPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

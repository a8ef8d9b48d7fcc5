package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"estimator/services"
)

type GalleryPageData struct {
	ProjectID   string
	ProjectName string
	Query       services.GalleryQuery
	Groups      []services.DateGroup
	MaxUploadMB int
}

func GalleryPage(data GalleryPageData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.ProjectName+" · Gallery", header, sidebar, GalleryContent(data))
}

// GalleryContent renders the upload form, the filters and the date groups.
// The groups refresh themselves whenever an upload or delete fires
// galleryChanged.
func GalleryContent(data GalleryPageData) templ.Component {
	return component(func(h *htmlWriter) {
		pageURL := "/projects/" + data.ProjectID + "/gallery"

		h.raw(`<section id="gallery"><div class="page-header"><h1>`)
		h.text(data.ProjectName)
		h.raw(` · Gallery</h1></div>`)

		h.raw(`<form id="gallery-upload" class="upload"`)
		h.attr("hx-put", "/gallery?project="+data.ProjectID)
		h.raw(` hx-encoding="multipart/form-data" hx-swap="none">`)
		h.raw(`<input type="file" name="media" multiple accept="image/*,video/*,application/pdf" class="file-input">`)
		h.raw(`<button type="submit" class="btn btn-primary">Upload</button><span class="muted">Up to `)
		h.text(strconv.Itoa(data.MaxUploadMB))
		h.raw(` MB per file</span></form>`)

		h.raw(`<form id="gallery-filters" method="get"`)
		h.attr("action", pageURL)
		h.attr("hx-get", pageURL)
		h.raw(` hx-target="#gallery-groups" hx-select="#gallery-groups" hx-swap="outerHTML" hx-trigger="change">`)
		selectFilter(h, "type", "All types", string(data.Query.Type), []string{"photo", "video", "document"})
		selectFilter(h, "date", "Most recent", string(data.Query.Date), []string{"recent", "oldest", "custom"})
		h.raw(`<input type="date" name="from"`)
		h.attr("value", data.Query.From)
		h.raw(`><input type="date" name="to"`)
		h.attr("value", data.Query.To)
		h.raw(`></form>`)

		h.render(GalleryGroups(data))
		h.raw(`</section>`)
	})
}

func selectFilter(h *htmlWriter, name, emptyLabel, selected string, options []string) {
	h.raw(`<select class="select"`)
	h.attr("name", name)
	h.raw(`><option value="">`)
	h.text(emptyLabel)
	h.raw(`</option>`)
	for _, opt := range options {
		h.raw(`<option`)
		h.attr("value", opt)
		if opt == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(opt)
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}

// GalleryGroups renders the media grouped by upload day.
func GalleryGroups(data GalleryPageData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="gallery-groups"`)
		h.attr("hx-get", "/projects/"+data.ProjectID+"/gallery")
		h.raw(` hx-trigger="galleryChanged from:body" hx-select="#gallery-groups" hx-swap="outerHTML">`)
		if len(data.Groups) == 0 {
			h.raw(`<p class="empty">No media uploaded yet.</p></div>`)
			return
		}
		for _, g := range data.Groups {
			h.raw(`<div class="date-group"><h2>`)
			h.text(g.Date)
			h.raw(`</h2><ul class="media-grid">`)
			for _, item := range g.Items {
				h.render(galleryItem(item))
			}
			h.raw(`</ul></div>`)
		}
		h.raw(`</div>`)
	})
}

func galleryItem(item services.GalleryMediaItem) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<li class="media-item"`)
		h.attr("id", "media-"+item.ID)
		h.attr("data-type", string(item.Type))
		h.raw(`>`)
		switch item.Type {
		case services.MediaPhoto:
			h.raw(`<img loading="lazy"`)
			h.href("src", item.URL)
			h.attr("alt", item.Name)
			h.raw(`>`)
		case services.MediaVideo:
			h.raw(`<video controls preload="metadata"`)
			h.href("src", item.URL)
			h.raw(`></video>`)
		default:
			h.raw(`<a class="document" target="_blank"`)
			h.href("href", item.URL)
			h.raw(`>PDF</a>`)
		}
		h.raw(`<p class="name">`)
		h.text(item.Name)
		h.raw(`</p><button class="btn btn-xs btn-error"`)
		h.attr("hx-delete", "/gallery/"+item.ID)
		h.raw(` hx-target="closest .media-item" hx-swap="outerHTML" hx-confirm="Delete this item?">Delete</button></li>`)
	})
}

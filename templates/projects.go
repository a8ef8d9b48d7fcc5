package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

type ProjectListItem struct {
	ID               string
	Name             string
	ClientName       string
	ReferenceNumber  string
	Status           string
	StatusBadgeClass string
	MediaCount       int
	CreatedDate      string
}

type ProjectListData struct {
	Items      []ProjectListItem
	TotalCount int
}

// ProjectFormData backs both the create and the edit form.
type ProjectFormData struct {
	ID              string
	Name            string
	ClientName      string
	ReferenceNumber string
	Status          string
	StatusOptions   []string
	Errors          map[string]string
}

type ProjectViewData struct {
	ID              string
	Name            string
	ClientName      string
	ReferenceNumber string
	Status          string
	MediaCount      int
	PhotoCount      int
	VideoCount      int
	DocumentCount   int
	CreatedDate     string
}

func ProjectListPage(data ProjectListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Projects", header, sidebar, ProjectListContent(data))
}

func ProjectListContent(data ProjectListData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="project-list"><div class="page-header"><h1>Projects</h1>`)
		h.raw(`<a class="btn btn-primary" href="/projects/create">New Project</a></div>`)

		if len(data.Items) == 0 {
			h.raw(`<p class="empty">No projects yet. Create one to start a gallery.</p></section>`)
			return
		}

		h.raw(`<p class="muted">`)
		h.text(strconv.Itoa(data.TotalCount) + " project(s)")
		h.raw(`</p><table class="table"><thead><tr><th>Name</th><th>Client</th><th>Reference</th><th>Status</th><th>Media</th><th>Created</th><th></th></tr></thead><tbody>`)
		for _, p := range data.Items {
			h.raw(`<tr`)
			h.attr("id", "project-"+p.ID)
			h.raw(`><td><a`)
			h.href("href", "/projects/"+p.ID)
			h.raw(`>`)
			h.text(p.Name)
			h.raw(`</a></td><td>`)
			h.text(p.ClientName)
			h.raw(`</td><td>`)
			h.text(p.ReferenceNumber)
			h.raw(`</td><td><span`)
			h.attr("class", "badge "+p.StatusBadgeClass)
			h.raw(`>`)
			h.text(p.Status)
			h.raw(`</span></td><td class="num">`)
			h.text(strconv.Itoa(p.MediaCount))
			h.raw(`</td><td>`)
			h.text(p.CreatedDate)
			h.raw(`</td><td><button class="btn btn-xs"`)
			h.attr("hx-post", "/projects/"+p.ID+"/activate")
			h.raw(`>Activate</button></td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	})
}

func ProjectCreatePage(data ProjectFormData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("New Project", header, sidebar, projectForm("New Project", "/projects", data))
}

func ProjectEditPage(data ProjectFormData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Edit Project", header, sidebar, projectForm("Edit Project", "/projects/"+data.ID+"/save", data))
}

func projectForm(heading, action string, data ProjectFormData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="project-form"><h1>`)
		h.text(heading)
		h.raw(`</h1><form method="post"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.raw(` hx-target="#project-form" hx-select="#project-form" hx-swap="outerHTML">`)

		textField(h, "name", "Project name", data.Name, data.Errors["name"])
		textField(h, "client_name", "Client", data.ClientName, data.Errors["client_name"])
		textField(h, "reference_number", "Reference number", data.ReferenceNumber, data.Errors["reference_number"])

		h.raw(`<label for="status">Status</label><select id="status" name="status" class="select">`)
		for _, opt := range data.StatusOptions {
			h.raw(`<option`)
			h.attr("value", opt)
			if opt == data.Status {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(opt)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)

		h.raw(`<div class="actions"><a class="btn btn-ghost" href="/projects">Cancel</a>`)
		h.raw(`<button type="submit" class="btn btn-primary">Save</button></div></form></section>`)
	})
}

func textField(h *htmlWriter, name, label, value, errMsg string) {
	h.raw(`<div class="form-control"><label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</label><input type="text" class="input"`)
	h.attr("id", name)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`>`)
	if errMsg != "" {
		h.raw(`<p class="field-error">`)
		h.text(errMsg)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}

func ProjectViewPage(data ProjectViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.Name, header, sidebar, ProjectViewContent(data))
}

func ProjectViewContent(data ProjectViewData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section id="project-view"><div class="page-header"><h1>`)
		h.text(data.Name)
		h.raw(`</h1><a class="btn"`)
		h.href("href", "/projects/"+data.ID+"/edit")
		h.raw(`>Edit</a><button class="btn btn-error"`)
		h.attr("hx-delete", "/projects/"+data.ID)
		h.raw(` hx-confirm="Delete this project and all of its gallery media?">Delete</button></div>`)

		h.raw(`<dl class="details"><dt>Client</dt><dd>`)
		h.text(data.ClientName)
		h.raw(`</dd><dt>Reference</dt><dd>`)
		h.text(data.ReferenceNumber)
		h.raw(`</dd><dt>Status</dt><dd>`)
		h.text(data.Status)
		h.raw(`</dd><dt>Created</dt><dd>`)
		h.text(data.CreatedDate)
		h.raw(`</dd></dl>`)

		h.raw(`<div class="stats">`)
		stat(h, "Photos", data.PhotoCount)
		stat(h, "Videos", data.VideoCount)
		stat(h, "Documents", data.DocumentCount)
		h.raw(`</div><a class="btn btn-primary"`)
		h.href("href", "/projects/"+data.ID+"/gallery")
		h.raw(`>Open gallery (`)
		h.text(strconv.Itoa(data.MediaCount))
		h.raw(`)</a></section>`)
	})
}

func stat(h *htmlWriter, label string, n int) {
	h.raw(`<div class="stat"><div class="stat-title">`)
	h.text(label)
	h.raw(`</div><div class="stat-value">`)
	h.text(strconv.Itoa(n))
	h.raw(`</div></div>`)
}

package templates

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"estimator/services"
)

// ActiveProject is the project selected via the active_project cookie.
type ActiveProject struct {
	ID   string
	Name string
}

// ProjectSelectorItem is one entry of the header project dropdown.
type ProjectSelectorItem struct {
	ID       string
	Name     string
	Client   string
	IsActive bool
}

type HeaderData struct {
	ActiveProject *ActiveProject
	Projects      []ProjectSelectorItem
}

// SidebarData drives the left navigation.
type SidebarData struct {
	ActiveProject *ActiveProject
	ActivePath    string
	Calculators   []services.CalculatorGroup
	MediaCount    int
}

const toastScript = `document.body.addEventListener("showToast", function (evt) {
  var d = evt.detail || {};
  var el = document.createElement("div");
  el.className = "alert alert-" + (d.type || "info");
  el.textContent = d.message || "";
  document.getElementById("toasts").appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
});
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  try {
    var d = JSON.parse(decodeURIComponent(m[1]));
    document.body.dispatchEvent(new CustomEvent("showToast", { detail: d }));
  } catch (e) {}
  document.cookie = "flash_toast=; Max-Age=0; path=/";
})();`

// Layout is the page shell: header with project selector, sidebar and a
// toast container around content.
func Layout(title string, header HeaderData, sidebar SidebarData, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` · Estimator</title>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script></head>`)
		h.raw(`<body hx-boost="true"><div id="toasts" class="toast toast-end"></div>`)

		h.render(headerBar(header))

		h.raw(`<div class="shell">`)
		h.render(sidebarNav(sidebar))
		h.raw(`<main id="main-content">`)
		h.render(content)
		h.raw(`</main></div>`)

		h.raw(`<script>`)
		h.raw(toastScript)
		h.raw(`</script></body></html>`)
	})
}

func headerBar(data HeaderData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header class="navbar"><a class="brand" href="/calculators">Estimator</a>`)
		h.raw(`<div class="project-selector">`)
		if data.ActiveProject != nil {
			h.raw(`<span class="active-project">`)
			h.text(data.ActiveProject.Name)
			h.raw(`</span>`)
			h.raw(`<button hx-post="/projects/deactivate" class="btn btn-ghost btn-xs">Clear</button>`)
		} else {
			h.raw(`<span class="active-project muted">No project selected</span>`)
		}
		if len(data.Projects) > 0 {
			h.raw(`<ul class="dropdown">`)
			for _, p := range data.Projects {
				h.raw(`<li`)
				if p.IsActive {
					h.attr("class", "active")
				}
				h.raw(`><button`)
				h.attr("hx-post", "/projects/"+p.ID+"/activate")
				h.raw(`>`)
				h.text(p.Name)
				if p.Client != "" {
					h.raw(` <small>`)
					h.text(p.Client)
					h.raw(`</small>`)
				}
				h.raw(`</button></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div></header>`)
	})
}

func sidebarNav(data SidebarData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav class="sidebar">`)
		navLink(h, "/projects", "Projects", data.ActivePath)
		if data.ActiveProject != nil {
			label := "Gallery"
			if data.MediaCount > 0 {
				label += " (" + strconv.Itoa(data.MediaCount) + ")"
			}
			navLink(h, "/projects/"+data.ActiveProject.ID+"/gallery", label, data.ActivePath)
		}
		navLink(h, "/calculators", "Calculators", data.ActivePath)
		for _, group := range data.Calculators {
			h.raw(`<p class="menu-title">`)
			h.text(group.Category)
			h.raw(`</p><ul class="menu">`)
			for _, def := range group.Calculators {
				h.raw(`<li>`)
				navLink(h, "/calculators/"+def.ID, def.Title, data.ActivePath)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</nav>`)
	})
}

func navLink(h *htmlWriter, path, label, activePath string) {
	h.raw(`<a`)
	h.href("href", path)
	if activePath == path || (path != "/" && strings.HasPrefix(activePath, path+"/")) {
		h.attr("class", "active")
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</a>`)
}

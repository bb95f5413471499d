package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/standings/internal/adapters/display"
)

// Script URLs the page loads.
const (
	ChartJSURL  = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"
	DatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
)

// indexPage is parsed once; each request clones it with lookups bound to the
// current page.
var indexPage = template.Must(template.New("index").Funcs(template.FuncMap{
	"region": func(string) template.HTML { return "" },
	"has":    func(string) bool { return false },
}).Parse(indexTemplate))

// PageHandler serves the full dashboard page with the current region contents.
type PageHandler struct {
	deps Dependencies
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps Dependencies) *PageHandler {
	return &PageHandler{deps: deps}
}

type pageView struct {
	ChartJS  string
	Datastar string
	Canvases []display.CanvasState
}

// HandlePage handles GET / requests.
func (h *PageHandler) HandlePage(w http.ResponseWriter, _ *http.Request) {
	page := h.deps.Page()
	regions := make(map[string]template.HTML)
	for _, r := range page.Regions() {
		regions[r.ID] = template.HTML(r.HTML) //nolint:gosec // region content is produced by the renderer
	}

	tmpl, err := indexPage.Clone()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %w", ErrRenderPage, err))
		return
	}

	tmpl.Funcs(template.FuncMap{
		"region": func(id string) template.HTML { return regions[id] },
		"has":    page.Has,
	})

	var buf bytes.Buffer
	view := pageView{ChartJS: ChartJSURL, Datastar: DatastarURL, Canvases: page.Canvases()}
	if err := tmpl.Execute(&buf, view); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %w", ErrRenderPage, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

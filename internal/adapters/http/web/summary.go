package web

import (
	"net/http"

	service "github.com/okian/standings/internal/app"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/stats"
)

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

type summaryResponse struct {
	LastUpdate model.Timestamp `json:"lastUpdate"`
	stats.Summary
	Status service.Status `json:"status"`
}

// HandleSummary handles GET /api/summary requests.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, summaryResponse{
		LastUpdate: h.deps.Snapshot().LastUpdate,
		Summary:    h.deps.Summary(),
		Status:     h.deps.Status(),
	})
}

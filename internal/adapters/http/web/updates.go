package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/okian/standings/internal/adapters/display"
	"github.com/okian/standings/pkg/logger"
)

// UpdatesHandler streams region patches to an open dashboard.
type UpdatesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewUpdatesHandler creates a new updates handler.
func NewUpdatesHandler(deps Dependencies, l logger.Logger) *UpdatesHandler {
	return &UpdatesHandler{deps: deps, logger: l}
}

// HandleUpdates is the long-lived SSE endpoint of the dashboard page. Each
// open stream counts as one viewer; the browser closes it when the tab is
// hidden, which pauses refreshing once the last viewer is gone.
func (h *UpdatesHandler) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	page := h.deps.Page()
	ctx := r.Context()

	// Subscribe before the first push so no change falls between them.
	updates := page.Subscribe()
	defer page.Unsubscribe(updates)

	viewer := uuid.NewString()
	n := h.deps.ViewerJoined()
	h.logger.Debug(ctx, "viewer joined", logger.String("viewer", viewer), logger.Int("viewers", n))
	defer func() {
		n := h.deps.ViewerLeft()
		h.logger.Debug(context.WithoutCancel(ctx), "viewer left", logger.String("viewer", viewer), logger.Int("viewers", n))
	}()

	version := h.push(ctx, sse, page, 0)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			version = h.push(ctx, sse, page, version)
		}
	}
}

// push sends everything that changed after since and returns the page version sent.
func (h *UpdatesHandler) push(ctx context.Context, sse *datastar.ServerSentEventGenerator, page *display.Page, since uint64) uint64 {
	regions, canvases, version := page.Changes(since)

	for _, region := range regions {
		err := sse.PatchElements(region.HTML,
			datastar.WithSelectorID(region.ID),
			datastar.WithModeInner(),
		)
		if err != nil {
			h.logger.Debug(ctx, "patch failed", logger.String("region", region.ID), logger.Error(err))
			_ = sse.ConsoleError(err)
		}
	}
	for _, canvas := range canvases {
		if err := sse.ExecuteScript(DrawScript(canvas)); err != nil {
			h.logger.Debug(ctx, "chart redraw failed", logger.String("canvas", canvas.ID), logger.Error(err))
			_ = sse.ConsoleError(err)
		}
	}
	return version
}

// DrawScript is the browser call that mirrors a canvas state.
func DrawScript(c display.CanvasState) string {
	if !c.Bound() {
		return fmt.Sprintf("window.standingsClear(%q)", c.ID)
	}
	return fmt.Sprintf("window.standingsDraw(%q, %s, %d, %d)", c.ID, c.Config, c.Width, c.Height)
}

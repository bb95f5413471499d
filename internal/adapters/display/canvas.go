package display

import "encoding/json"

// Canvas is a chart drawing surface on the page.
type Canvas struct {
	page *Page
	id   string
}

// ID returns the canvas id.
func (c *Canvas) ID() string { return c.id }

// Reset sets the surface to a fixed size and wipes any drawing.
func (c *Canvas) Reset(width, height int) {
	c.page.updateCanvas(c.id, func(s *CanvasState) {
		s.Width = width
		s.Height = height
		s.Instance = ""
		s.Config = nil
	})
}

// Bind draws the chart instance with the given config on the surface.
func (c *Canvas) Bind(instance string, config json.RawMessage) {
	c.page.updateCanvas(c.id, func(s *CanvasState) {
		s.Instance = instance
		s.Config = config
	})
}

// Unbind clears the surface if instance is the one drawn on it.
func (c *Canvas) Unbind(instance string) {
	c.page.updateCanvas(c.id, func(s *CanvasState) {
		if s.Instance == instance {
			s.Instance = ""
			s.Config = nil
		}
	})
}

// State returns the current surface state.
func (c *Canvas) State() CanvasState {
	c.page.mu.RLock()
	defer c.page.mu.RUnlock()
	return *c.page.canvases[c.id]
}

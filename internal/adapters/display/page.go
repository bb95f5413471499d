// Package display holds the server-side model of the dashboard page: named
// regions whose content is replaced wholesale, and the chart canvases.
package display

import (
	"encoding/json"
	"fmt"
	"html"
	"sync"
)

// Region is a snapshot of one named region.
type Region struct {
	ID      string
	HTML    string
	Version uint64
}

// CanvasState is a snapshot of one chart surface.
type CanvasState struct {
	ID       string
	Width    int
	Height   int
	Instance string
	Config   json.RawMessage
	Version  uint64
}

// Bound reports whether a chart instance is drawn on the surface.
func (c CanvasState) Bound() bool { return c.Instance != "" }

// Option configures a Page.
type Option func(*pageConfig)

type pageConfig struct {
	omit map[string]bool
}

// WithoutRegion builds a page that lacks the given region.
func WithoutRegion(id string) Option {
	return func(c *pageConfig) { c.omit[id] = true }
}

// Page is safe for concurrent use.
type Page struct {
	mu        sync.RWMutex
	version   uint64
	order     []string
	regions   map[string]*Region
	canvases  map[string]*CanvasState
	listeners map[chan struct{}]struct{}
}

// NewPage builds a page with every known region and canvas.
func NewPage(opts ...Option) *Page {
	cfg := pageConfig{omit: map[string]bool{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Page{
		regions:   make(map[string]*Region),
		canvases:  make(map[string]*CanvasState),
		listeners: make(map[chan struct{}]struct{}),
	}
	for _, id := range RegionIDs() {
		if cfg.omit[id] {
			continue
		}
		p.order = append(p.order, id)
		p.regions[id] = &Region{ID: id}
	}
	for _, id := range CanvasIDs() {
		if cfg.omit[id] {
			continue
		}
		p.canvases[id] = &CanvasState{ID: id}
	}
	return p
}

// Has reports whether the page has the region or canvas id.
func (p *Page) Has(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, region := p.regions[id]
	_, canvas := p.canvases[id]
	return region || canvas
}

// SetText replaces the region content with escaped text.
func (p *Page) SetText(id, text string) error {
	return p.SetHTML(id, html.EscapeString(text))
}

// SetHTML replaces the region content. Writing identical content is a no-op.
func (p *Page) SetHTML(id, content string) error {
	p.mu.Lock()
	r, ok := p.regions[id]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownRegion, id)
	}
	if r.HTML == content && r.Version != 0 {
		p.mu.Unlock()
		return nil
	}
	p.version++
	r.HTML = content
	r.Version = p.version
	p.mu.Unlock()

	p.broadcast()
	return nil
}

// Region returns the current content of a region.
func (p *Page) Region(id string) (Region, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.regions[id]
	if !ok {
		return Region{}, false
	}
	return *r, true
}

// Regions returns every region in page order.
func (p *Page) Regions() []Region {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Region, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.regions[id])
	}
	return out
}

// Canvas returns a handle to the chart surface id.
func (p *Page) Canvas(id string) (*Canvas, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.canvases[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCanvas, id)
	}
	return &Canvas{page: p, id: id}, nil
}

// Canvases returns the state of every canvas in page order.
func (p *Page) Canvases() []CanvasState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]CanvasState, 0, len(p.canvases))
	for _, id := range CanvasIDs() {
		if c, ok := p.canvases[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// Version is the number of changes applied so far.
func (p *Page) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Changes returns the regions and canvases modified after version since.
func (p *Page) Changes(since uint64) ([]Region, []CanvasState, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var (
		regions  []Region
		canvases []CanvasState
	)
	for _, id := range p.order {
		if r := p.regions[id]; r.Version > since {
			regions = append(regions, *r)
		}
	}
	for _, id := range CanvasIDs() {
		if c, ok := p.canvases[id]; ok && c.Version > since {
			canvases = append(canvases, *c)
		}
	}
	return regions, canvases, p.version
}

// Subscribe returns a channel that receives a ping after every change.
// The caller must call Unsubscribe when done.
func (p *Page) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	p.mu.Lock()
	p.listeners[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (p *Page) Unsubscribe(ch chan struct{}) {
	p.mu.Lock()
	_, ok := p.listeners[ch]
	delete(p.listeners, ch)
	p.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Subscribers returns the number of listeners.
func (p *Page) Subscribers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.listeners)
}

// broadcast never blocks: a listener with a pending ping already knows.
func (p *Page) broadcast() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for ch := range p.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (p *Page) updateCanvas(id string, fn func(c *CanvasState)) {
	p.mu.Lock()
	c := p.canvases[id]
	fn(c)
	p.version++
	c.Version = p.version
	p.mu.Unlock()

	p.broadcast()
}

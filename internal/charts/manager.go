// Package charts owns the live chart instances drawn on the page canvases.
// Every render destroys the held instance of a slot before creating its
// replacement, so a slot never holds more than one live instance.
package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/pkg/metrics"
)

// Slot names a chart position.
type Slot string

// Chart slots.
const (
	SlotPoints     Slot = "points"
	SlotCompletion Slot = "completion"
)

// Slots lists every slot in draw order.
func Slots() []Slot { return []Slot{SlotPoints, SlotCompletion} }

// Default surface size in pixels.
const (
	DefaultWidth  = 600
	DefaultHeight = 300
)

// Surface is a canvas a chart instance is drawn on.
type Surface interface {
	Reset(width, height int)
	Bind(instance string, config json.RawMessage)
	Unbind(instance string)
}

// Instance is one chart drawn on a surface.
type Instance struct {
	ID     string
	Slot   Slot
	Config json.RawMessage

	surface   Surface
	destroyed bool
}

// Destroy releases the instance and clears it from its surface. Calling it
// again does nothing.
func (i *Instance) Destroy() {
	if i.destroyed {
		return
	}
	i.destroyed = true
	i.surface.Unbind(i.ID)
}

// Destroyed reports whether Destroy has run.
func (i *Instance) Destroyed() bool { return i.destroyed }

// Option configures a Manager.
type Option func(*Manager)

// WithSize fixes the surface size applied before every draw.
func WithSize(width, height int) Option {
	return func(m *Manager) {
		if width > 0 && height > 0 {
			m.width, m.height = width, height
		}
	}
}

// WithIDGenerator replaces the instance id source.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// Manager holds at most one live instance per slot.
type Manager struct {
	mu       sync.Mutex
	surfaces map[Slot]Surface
	live     map[Slot]*Instance
	width    int
	height   int
	newID    func() string
}

// New returns a manager drawing the points and completion charts on the given surfaces.
func New(points, completion Surface, opts ...Option) *Manager {
	m := &Manager{
		surfaces: map[Slot]Surface{SlotPoints: points, SlotCompletion: completion},
		live:     make(map[Slot]*Instance),
		width:    DefaultWidth,
		height:   DefaultHeight,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Render redraws both charts from the ranked teams.
func (m *Manager) Render(ranked []model.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { metrics.UpdateLiveCharts(len(m.live)) }()

	var errs []error
	for _, slot := range Slots() {
		var cfg Config
		switch slot {
		case SlotPoints:
			cfg = PointsConfig(ranked)
		case SlotCompletion:
			cfg = CompletionConfig(ranked)
		}
		if err := m.draw(slot, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) draw(slot Slot, cfg Config) error {
	if held, ok := m.live[slot]; ok {
		held.Destroy()
		delete(m.live, slot)
	}

	surface := m.surfaces[slot]
	if surface == nil {
		return fmt.Errorf("%w: %s", ErrNoSurface, slot)
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode %s chart: %w", slot, err)
	}

	surface.Reset(m.width, m.height)
	inst := &Instance{ID: m.newID(), Slot: slot, Config: raw, surface: surface}
	surface.Bind(inst.ID, raw)
	m.live[slot] = inst
	return nil
}

// Instance returns the live instance of a slot.
func (m *Manager) Instance(slot Slot) (*Instance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.live[slot]
	return inst, ok
}

// Live returns the number of live instances.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// Close destroys every held instance.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, inst := range m.live {
		inst.Destroy()
		delete(m.live, slot)
	}
	metrics.UpdateLiveCharts(0)
}

package service

import (
	"github.com/okian/standings/pkg/metrics"
)

// ViewerJoined counts an open dashboard view. The first viewer makes the
// dashboard visible.
func (d *Dashboard) ViewerJoined() int {
	d.viewersMu.Lock()
	defer d.viewersMu.Unlock()

	d.viewers++
	metrics.UpdateViewers(d.viewers)
	if d.viewers == 1 {
		d.scheduler.OnVisible()
	}
	return d.viewers
}

// ViewerLeft counts a closed view. When the last viewer leaves the dashboard
// is hidden and stops refreshing.
func (d *Dashboard) ViewerLeft() int {
	d.viewersMu.Lock()
	defer d.viewersMu.Unlock()

	if d.viewers == 0 {
		return 0
	}
	d.viewers--
	metrics.UpdateViewers(d.viewers)
	if d.viewers == 0 {
		d.scheduler.OnHidden()
	}
	return d.viewers
}

// Viewers returns the number of open views.
func (d *Dashboard) Viewers() int {
	d.viewersMu.Lock()
	defer d.viewersMu.Unlock()
	return d.viewers
}

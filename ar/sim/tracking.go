package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/tracking"
)

var ErrUnknownSurface = errors.New("surface is not tracked")

// AddSurface starts tracking a surface. The provider creates an anchor
// container node under the root and hands it to the delegate.
func (w *World) AddSurface(surface tracking.Surface) (scene.NodeID, error) {
	if _, ok := w.surfaces[surface.ID]; ok {
		return uuid.Nil, fmt.Errorf("surface %s is already tracked", surface.ID)
	}
	container := w.newNode(w.root, "anchor-"+surface.ID.String())
	w.hierarchy.SetNodeMatrix(w.nodes[container].handle, surface.Transform)
	w.surfaces[surface.ID] = &trackedSurface{
		surface:   surface,
		container: container,
	}
	w.surfaceOrder = append(w.surfaceOrder, surface.ID)

	if w.delegate != nil {
		w.delegate.SurfaceAdded(surface, container)
	}
	return container, nil
}

// UpdateSurface refines a tracked surface.
func (w *World) UpdateSurface(surface tracking.Surface) error {
	ts, ok := w.surfaces[surface.ID]
	if !ok {
		return fmt.Errorf("failed to update surface %s: %w", surface.ID, ErrUnknownSurface)
	}
	ts.surface = surface
	if data, ok := w.nodes[ts.container]; ok {
		w.hierarchy.SetNodeMatrix(data.handle, surface.Transform)
	}

	if w.delegate != nil {
		w.delegate.SurfaceUpdated(surface, ts.container)
	}
	return nil
}

// RemoveSurface stops tracking a surface and detaches its container
// together with everything attached to it.
func (w *World) RemoveSurface(id uuid.UUID) error {
	ts, ok := w.surfaces[id]
	if !ok {
		return fmt.Errorf("failed to remove surface %s: %w", id, ErrUnknownSurface)
	}
	delete(w.surfaces, id)
	w.surfaceOrder = slices.DeleteFunc(w.surfaceOrder, func(s uuid.UUID) bool {
		return s == id
	})
	w.detach(ts.container)

	if w.delegate != nil {
		w.delegate.SurfaceRemoved(ts.surface)
	}
	return nil
}

// Container returns the anchor node of a tracked surface.
func (w *World) Container(id uuid.UUID) (scene.NodeID, bool) {
	ts, ok := w.surfaces[id]
	if !ok {
		return uuid.Nil, false
	}
	return ts.container, true
}

// SurfaceCount returns the number of tracked surfaces.
func (w *World) SurfaceCount() int {
	return len(w.surfaces)
}

// Restart drops every tracked surface and every node except the root,
// the way a tracking session run with a reset does. The delegate is not
// notified.
func (w *World) Restart() {
	root, _ := w.Node(w.root)
	for _, id := range root.Children {
		w.detach(id)
	}
	clear(w.surfaces)
	w.surfaceOrder = w.surfaceOrder[:0]
	w.animations = w.animations[:0]
	w.logger.Debug("Tracking restarted")
}

// Fail reports a session failure to the delegate.
func (w *World) Fail(err error) {
	w.logger.Warn("Tracking failed", slog.Any("error", err))
	if w.delegate != nil {
		w.delegate.SessionFailed(err)
	}
}

// Interrupt reports a session interruption to the delegate.
func (w *World) Interrupt() {
	if w.delegate != nil {
		w.delegate.SessionInterrupted()
	}
}

// Resume reports the end of an interruption to the delegate.
func (w *World) Resume() {
	if w.delegate != nil {
		w.delegate.SessionInterruptionEnded()
	}
}

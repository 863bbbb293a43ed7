// Package tracking describes the world-tracking provider that discovers
// surfaces and reports their lifecycle.
package tracking

import (
	"github.com/google/uuid"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/gomath/sprec"

	"github.com/nobonobo/ar-darts/ar/scene"
)

type Alignment int

const (
	AlignmentHorizontal Alignment = iota
	AlignmentVertical
)

func (a Alignment) String() string {
	switch a {
	case AlignmentHorizontal:
		return "horizontal"
	case AlignmentVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Surface is a tracked region of the physical world. It is owned by the
// provider and read-only to everyone else.
type Surface struct {
	ID uuid.UUID

	// Center is the middle of the detected region in the surface's own
	// space.
	Center dprec.Vec3

	// Extent is the width (X) and height (Y) of the detected region.
	Extent sprec.Vec2

	Planar    bool
	Alignment Alignment

	// Transform is the pose of the surface in world space.
	Transform dprec.Mat4
}

// Delegate receives surface lifecycle events and session faults. All
// calls arrive on the same serial context as input events.
type Delegate interface {
	SurfaceAdded(surface Surface, container scene.NodeID)
	SurfaceUpdated(surface Surface, container scene.NodeID)
	SurfaceRemoved(surface Surface)

	SessionFailed(err error)
	SessionInterrupted()
	SessionInterruptionEnded()
}

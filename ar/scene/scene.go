// Package scene describes the renderer that draws the game. The game
// only holds NodeID handles into the renderer's node table and never
// assumes it owns the nodes behind them.
package scene

import (
	"time"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"

	"github.com/nobonobo/ar-darts/schema"
)

// NodeID is a non-owning handle to a renderer node.
type NodeID = uuid.UUID

// NodeInfo describes a node to be attached to a parent.
type NodeInfo struct {
	Parent   NodeID
	Name     opt.T[string]
	Geometry Geometry
	Material opt.T[Material]
	Position opt.T[dprec.Vec3]
	Rotation opt.T[dprec.Quat]
}

// Graph is the mutable part of the renderer's scene graph.
type Graph interface {
	// Root returns the top-level node of the scene.
	Root() NodeID

	// AddChild creates a node and attaches it to info.Parent.
	AddChild(info NodeInfo) NodeID

	SetGeometry(node NodeID, geometry Geometry)
	SetMaterial(node NodeID, material Material)
	SetPosition(node NodeID, position dprec.Vec3)
	SetRotation(node NodeID, rotation dprec.Quat)

	// Material returns the current material of the node, if any.
	Material(node NodeID) opt.T[Material]
}

// KeyPathPosition animates the node position.
const KeyPathPosition = "position"

// Animation is a fixed-duration linear interpolation of a node property.
type Animation struct {
	Key        string
	KeyPath    string
	From       dprec.Vec3
	To         dprec.Vec3
	Duration   time.Duration
	OnComplete func()
}

// Animator runs animations on the renderer's own clock.
type Animator interface {
	Animate(node NodeID, animation Animation)
}

// Pose is the position and orientation of the camera in world space.
type Pose struct {
	Position    dprec.Vec3
	Orientation dprec.Quat
}

// PointOfView exposes the current camera pose.
type PointOfView interface {
	CameraPose() Pose
}

// HitTestType selects what a world hit-test intersects with.
type HitTestType int

const (
	// HitExistingPlaneUsingExtent hits tracked surfaces, limited to their
	// detected extent.
	HitExistingPlaneUsingExtent HitTestType = iota
	// HitExistingPlane hits tracked surfaces treated as infinite planes.
	HitExistingPlane
)

// WorldHit is a single world hit-test result.
type WorldHit struct {
	Surface        uuid.UUID
	WorldTransform dprec.Mat4
	Distance       float64
}

// HitTester resolves screen points against the rendered scene and the
// tracked world.
type HitTester interface {
	// ScreenHitTest returns the topmost rendered node under the point.
	ScreenHitTest(point schema.Point) opt.T[NodeID]

	// WorldHitTest returns the tracked surfaces under the point, nearest
	// first.
	WorldHitTest(point schema.Point, kind HitTestType) []WorldHit
}

// Renderer is everything the game needs from the rendering side.
type Renderer interface {
	Graph
	Animator
	PointOfView
	HitTester
}

// Package sim is an in-memory stand-in for the device: it tracks
// surfaces, keeps a node hierarchy, runs animations on a manual clock and
// answers hit-tests by casting segments from a pinhole camera.
package sim

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/lacking/game/hierarchy"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/tracking"
	"github.com/nobonobo/ar-darts/ar/xform"
)

const initialNodeCapacity = 64

var _ scene.Renderer = (*World)(nil)

// Node is a snapshot of a node in the hierarchy.
type Node struct {
	ID       scene.NodeID
	Parent   scene.NodeID
	Children []scene.NodeID
	Name     string
	Geometry scene.Geometry
	Material opt.T[scene.Material]
	Position dprec.Vec3
	Rotation dprec.Quat
}

// nodeData holds what the hierarchy does not store for a node.
type nodeData struct {
	handle   hierarchy.NodeID
	geometry scene.Geometry
	material opt.T[scene.Material]
}

type trackedSurface struct {
	surface   tracking.Surface
	container scene.NodeID
}

type runningAnimation struct {
	node      scene.NodeID
	animation scene.Animation
	elapsed   time.Duration
}

// World plays the role of both the tracking provider and the renderer.
type World struct {
	logger *slog.Logger
	camera Camera

	delegate tracking.Delegate

	hierarchy *hierarchy.Scene
	root      scene.NodeID
	nodes     map[scene.NodeID]*nodeData
	ids       map[hierarchy.NodeID]scene.NodeID
	// order lists live nodes in creation order.
	order []scene.NodeID

	surfaces     map[uuid.UUID]*trackedSurface
	surfaceOrder []uuid.UUID

	animations []*runningAnimation
	clock      time.Duration
}

func NewWorld(cfg *Config) *World {
	w := &World{
		logger:    cfg.logger,
		camera:    cfg.camera,
		hierarchy: hierarchy.NewScene(initialNodeCapacity),
		nodes:     make(map[scene.NodeID]*nodeData),
		ids:       make(map[hierarchy.NodeID]scene.NodeID),
		surfaces:  make(map[uuid.UUID]*trackedSurface),
	}
	w.hierarchy.SubscribeNodeDelete(w.onNodeDeleted)
	w.root = w.newNode(uuid.Nil, "root")
	return w
}

// SetDelegate registers the receiver of surface and session events.
func (w *World) SetDelegate(delegate tracking.Delegate) {
	w.delegate = delegate
}

func (w *World) newNode(parent scene.NodeID, name string) scene.NodeID {
	handle := w.hierarchy.CreateNode()
	w.hierarchy.SetNodeName(handle, name)
	if parentData, ok := w.nodes[parent]; ok {
		w.hierarchy.AppendNodeChild(parentData.handle, handle, false)
	}

	id := uuid.New()
	w.nodes[id] = &nodeData{handle: handle}
	w.ids[handle] = id
	w.order = append(w.order, id)
	return id
}

// onNodeDeleted runs for every node of a deleted subtree, children first.
func (w *World) onNodeDeleted(_ *hierarchy.Scene, handle hierarchy.NodeID) {
	id, ok := w.ids[handle]
	if !ok {
		return
	}
	delete(w.ids, handle)
	delete(w.nodes, id)
	w.order = slices.DeleteFunc(w.order, func(n scene.NodeID) bool {
		return n == id
	})
}

func (w *World) Root() scene.NodeID {
	return w.root
}

func (w *World) AddChild(info scene.NodeInfo) scene.NodeID {
	parent := info.Parent
	if _, ok := w.nodes[parent]; !ok {
		w.logger.Warn("Attaching to unknown parent, using root",
			slog.String("parent", parent.String()),
		)
		parent = w.root
	}

	var name string
	if info.Name.Specified {
		name = info.Name.Value
	}
	id := w.newNode(parent, name)
	data := w.nodes[id]
	data.geometry = info.Geometry
	data.material = info.Material
	if info.Position.Specified {
		w.hierarchy.SetNodePosition(data.handle, info.Position.Value)
	}
	if info.Rotation.Specified {
		w.hierarchy.SetNodeRotation(data.handle, info.Rotation.Value)
	}
	return id
}

func (w *World) SetGeometry(id scene.NodeID, geometry scene.Geometry) {
	if data, ok := w.nodes[id]; ok {
		data.geometry = geometry
	}
}

func (w *World) SetMaterial(id scene.NodeID, material scene.Material) {
	if data, ok := w.nodes[id]; ok {
		data.material = opt.V(material)
	}
}

func (w *World) SetPosition(id scene.NodeID, position dprec.Vec3) {
	if data, ok := w.nodes[id]; ok {
		w.hierarchy.SetNodePosition(data.handle, position)
	}
}

func (w *World) SetRotation(id scene.NodeID, rotation dprec.Quat) {
	if data, ok := w.nodes[id]; ok {
		w.hierarchy.SetNodeRotation(data.handle, rotation)
	}
}

func (w *World) Material(id scene.NodeID) opt.T[scene.Material] {
	if data, ok := w.nodes[id]; ok {
		return data.material
	}
	return opt.T[scene.Material]{}
}

// Node returns a snapshot of the node.
func (w *World) Node(id scene.NodeID) (Node, bool) {
	data, ok := w.nodes[id]
	if !ok {
		return Node{}, false
	}
	h := w.hierarchy
	result := Node{
		ID:       id,
		Parent:   w.ids[h.NodeParent(data.handle)],
		Name:     h.NodeName(data.handle),
		Geometry: data.geometry,
		Material: data.material,
		Position: h.NodePosition(data.handle),
		Rotation: h.NodeRotation(data.handle),
	}
	for child := h.NodeFirstChild(data.handle); !child.IsNil(); child = h.NodeRightSibling(child) {
		result.Children = append(result.Children, w.ids[child])
	}
	return result, true
}

// NodeCount returns the number of live nodes, root included.
func (w *World) NodeCount() int {
	return len(w.nodes)
}

// WorldTransform returns the model (not animated) transform of the node in
// world space.
func (w *World) WorldTransform(id scene.NodeID) dprec.Mat4 {
	data, ok := w.nodes[id]
	if !ok {
		return dprec.IdentityMat4()
	}
	return w.hierarchy.NodeAbsoluteMatrix(data.handle)
}

// detach removes the node and its whole subtree.
func (w *World) detach(id scene.NodeID) {
	if data, ok := w.nodes[id]; ok {
		w.hierarchy.DeleteNode(data.handle)
	}
}

// Advance moves the animation clock forward and fires completions of
// animations that finished.
func (w *World) Advance(dt time.Duration) {
	w.clock += dt

	var finished []*runningAnimation
	w.animations = slices.DeleteFunc(w.animations, func(a *runningAnimation) bool {
		a.elapsed += dt
		if a.elapsed >= a.animation.Duration {
			finished = append(finished, a)
			return true
		}
		return false
	})
	for _, a := range finished {
		if a.animation.OnComplete != nil {
			a.animation.OnComplete()
		}
	}
}

// Clock returns the total time advanced so far.
func (w *World) Clock() time.Duration {
	return w.clock
}

func (w *World) Animate(id scene.NodeID, animation scene.Animation) {
	w.animations = slices.DeleteFunc(w.animations, func(a *runningAnimation) bool {
		return a.node == id && animation.Key != "" && a.animation.Key == animation.Key
	})
	w.animations = append(w.animations, &runningAnimation{
		node:      id,
		animation: animation,
	})
}

// AnimationCount returns the number of animations still running.
func (w *World) AnimationCount() int {
	return len(w.animations)
}

// PresentationPosition returns where the node is currently drawn, taking
// running position animations into account.
func (w *World) PresentationPosition(id scene.NodeID) dprec.Vec3 {
	data, ok := w.nodes[id]
	if !ok {
		return dprec.ZeroVec3()
	}
	for _, a := range w.animations {
		if a.node != id || a.animation.KeyPath != scene.KeyPathPosition {
			continue
		}
		if a.animation.Duration <= 0 {
			return a.animation.To
		}
		t := float64(a.elapsed) / float64(a.animation.Duration)
		return xform.Lerp(a.animation.From, a.animation.To, math.Min(t, 1))
	}
	return w.hierarchy.NodePosition(data.handle)
}

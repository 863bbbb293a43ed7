// Package anchor keeps placeholder nodes in sync with the surfaces
// reported by the tracking provider.
package anchor

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/gomath/sprec"

	"github.com/nobonobo/ar-darts/ar/material"
	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/tracking"
)

var (
	ErrUnknownSurface    = errors.New("surface is not tracked by the registry")
	ErrReverseTransition = errors.New("material tags cannot move backwards")
	ErrSkippedTransition = errors.New("material tags cannot skip a step")
)

// Placeholder is the visual proxy of a single tracked surface.
type Placeholder struct {
	Surface  uuid.UUID
	Node     scene.NodeID
	Tag      material.Tag
	Extent   sprec.Vec2
	Position dprec.Vec3
}

// Gate reports whether placeholders may currently be created or
// reshaped.
type Gate func() bool

type Info struct {
	Graph  scene.Graph
	Policy material.Policy
	Gate   Gate
	Logger opt.T[*slog.Logger]
}

// Registry maps tracked surfaces to their placeholder nodes.
type Registry struct {
	graph  scene.Graph
	policy material.Policy
	gate   Gate
	logger *slog.Logger

	entries map[uuid.UUID]*Placeholder
	byNode  map[scene.NodeID]uuid.UUID
	order   []uuid.UUID
}

func NewRegistry(info Info) *Registry {
	logger := slog.Default()
	if info.Logger.Specified {
		logger = info.Logger.Value
	}
	gate := info.Gate
	if gate == nil {
		gate = func() bool { return true }
	}
	return &Registry{
		graph:   info.Graph,
		policy:  info.Policy,
		gate:    gate,
		logger:  logger,
		entries: make(map[uuid.UUID]*Placeholder),
		byNode:  make(map[scene.NodeID]uuid.UUID),
	}
}

// placeholderTilt lays the XY plane geometry onto the surface's XZ plane.
var placeholderTilt = dprec.RotationQuat(dprec.Degrees(-90), dprec.BasisXVec3())

func placeholderPosition(surface tracking.Surface) dprec.Vec3 {
	return dprec.NewVec3(surface.Center.X, 0, surface.Center.Z)
}

func placeholderGeometry(surface tracking.Surface) scene.Plane {
	return scene.Plane{
		Width:  surface.Extent.X,
		Height: surface.Extent.Y,
	}
}

func (r *Registry) SurfaceAdded(surface tracking.Surface, parent scene.NodeID) {
	if !r.gate() || !surface.Planar {
		return
	}
	if _, ok := r.entries[surface.ID]; ok {
		return
	}

	position := placeholderPosition(surface)
	node := r.graph.AddChild(scene.NodeInfo{
		Parent:   parent,
		Name:     opt.V("placeholder-" + surface.ID.String()),
		Geometry: placeholderGeometry(surface),
		Material: opt.V(r.policy.Material(material.TagDetected)),
		Position: opt.V(position),
		Rotation: opt.V(placeholderTilt),
	})

	r.entries[surface.ID] = &Placeholder{
		Surface:  surface.ID,
		Node:     node,
		Tag:      material.TagDetected,
		Extent:   surface.Extent,
		Position: position,
	}
	r.byNode[node] = surface.ID
	r.order = append(r.order, surface.ID)

	r.logger.Debug("Placeholder added",
		slog.String("surface", surface.ID.String()),
		slog.String("alignment", surface.Alignment.String()),
	)
}

func (r *Registry) SurfaceUpdated(surface tracking.Surface, parent scene.NodeID) {
	if !r.gate() || !surface.Planar {
		return
	}
	entry, ok := r.entries[surface.ID]
	if !ok {
		return
	}

	// Material is left untouched so a selection survives reshaping.
	position := placeholderPosition(surface)
	r.graph.SetGeometry(entry.Node, placeholderGeometry(surface))
	r.graph.SetPosition(entry.Node, position)
	entry.Extent = surface.Extent
	entry.Position = position
}

func (r *Registry) SurfaceRemoved(surface tracking.Surface) {
	if !r.gate() {
		return
	}
	entry, ok := r.entries[surface.ID]
	if !ok {
		return
	}
	delete(r.entries, surface.ID)
	delete(r.byNode, entry.Node)
	r.order = slices.DeleteFunc(r.order, func(id uuid.UUID) bool {
		return id == surface.ID
	})

	r.logger.Debug("Placeholder removed",
		slog.String("surface", surface.ID.String()),
	)
}

// Recolor moves the placeholder of the surface to the next material tag.
func (r *Registry) Recolor(surfaceID uuid.UUID, tag material.Tag) error {
	entry, ok := r.entries[surfaceID]
	if !ok {
		return ErrUnknownSurface
	}
	if !material.CanTransition(entry.Tag, tag) {
		if tag <= entry.Tag {
			return ErrReverseTransition
		}
		return ErrSkippedTransition
	}
	r.graph.SetMaterial(entry.Node, r.policy.Material(tag))
	entry.Tag = tag
	return nil
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup returns a copy of the placeholder for the surface.
func (r *Registry) Lookup(surfaceID uuid.UUID) (Placeholder, bool) {
	entry, ok := r.entries[surfaceID]
	if !ok {
		return Placeholder{}, false
	}
	return *entry, true
}

// LookupNode returns a copy of the placeholder rendered by node.
func (r *Registry) LookupNode(node scene.NodeID) (Placeholder, bool) {
	surfaceID, ok := r.byNode[node]
	if !ok {
		return Placeholder{}, false
	}
	return r.Lookup(surfaceID)
}

// Placeholders returns all placeholders in the order their surfaces were
// first seen.
func (r *Registry) Placeholders() []Placeholder {
	result := make([]Placeholder, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.entries[id])
	}
	return result
}

// Reset forgets every placeholder. The nodes themselves belong to the
// renderer and are not detached.
func (r *Registry) Reset() {
	clear(r.entries)
	clear(r.byNode)
	r.order = r.order[:0]
}

package anchor_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/gomath/sprec"

	"github.com/nobonobo/ar-darts/ar/anchor"
	"github.com/nobonobo/ar-darts/ar/material"
	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/sim"
	"github.com/nobonobo/ar-darts/ar/tracking"
	"github.com/nobonobo/ar-darts/ar/xform"
)

type fixture struct {
	world    *sim.World
	registry *anchor.Registry
	policy   material.Policy
	open     bool
}

func newFixture() *fixture {
	f := &fixture{
		world:  sim.NewWorld(sim.NewConfig(390, 844)),
		policy: material.NewPolicy(""),
		open:   true,
	}
	f.registry = anchor.NewRegistry(anchor.Info{
		Graph:  f.world,
		Policy: f.policy,
		Gate:   func() bool { return f.open },
	})
	return f
}

func wall(center dprec.Vec3, width, height float32) tracking.Surface {
	return tracking.Surface{
		ID:        uuid.New(),
		Center:    center,
		Extent:    sprec.NewVec2(width, height),
		Planar:    true,
		Alignment: tracking.AlignmentVertical,
		Transform: xform.Pose(dprec.NewVec3(0, 0, -2), dprec.RotationQuat(dprec.Degrees(90), dprec.BasisXVec3())),
	}
}

func (f *fixture) add(t *testing.T, surface tracking.Surface) scene.NodeID {
	t.Helper()
	container, err := f.world.AddSurface(surface)
	if err != nil {
		t.Fatalf("AddSurface: %v", err)
	}
	f.registry.SurfaceAdded(surface, container)
	return container
}

func TestSurfaceAddedCreatesPlaceholder(t *testing.T) {
	f := newFixture()
	surface := wall(dprec.NewVec3(0.25, 0.1, -0.5), 1.0, 0.5)
	container := f.add(t, surface)

	if f.registry.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.registry.Len())
	}
	placeholder, ok := f.registry.Lookup(surface.ID)
	if !ok {
		t.Fatal("placeholder not found")
	}
	if placeholder.Tag != material.TagDetected {
		t.Fatalf("tag = %v, want detected", placeholder.Tag)
	}

	node, ok := f.world.Node(placeholder.Node)
	if !ok {
		t.Fatal("node not in scene")
	}
	if node.Parent != container {
		t.Fatal("placeholder is not a child of the anchor container")
	}
	if node.Geometry != (scene.Plane{Width: 1.0, Height: 0.5}) {
		t.Fatalf("geometry = %#v, want 1.0x0.5 plane", node.Geometry)
	}
	if want := dprec.NewVec3(0.25, 0, -0.5); node.Position != want {
		t.Fatalf("position = %v, want %v", node.Position, want)
	}
	tilt := dprec.RotationQuat(dprec.Degrees(-90), dprec.BasisXVec3())
	if !xform.SameRotation(node.Rotation, tilt, 1e-9) {
		t.Fatalf("rotation = %v, want -90 degrees about X", node.Rotation)
	}
	if !node.Material.Specified || node.Material.Value != f.policy.Material(material.TagDetected) {
		t.Fatalf("material = %#v, want detected", node.Material)
	}

	byNode, ok := f.registry.LookupNode(placeholder.Node)
	if !ok || byNode.Surface != surface.ID {
		t.Fatal("LookupNode did not resolve the placeholder")
	}
}

func TestSurfaceAddedIgnoresNonPlanarAndDuplicates(t *testing.T) {
	f := newFixture()

	blob := wall(dprec.ZeroVec3(), 1, 1)
	blob.Planar = false
	f.add(t, blob)
	if f.registry.Len() != 0 {
		t.Fatalf("Len = %d, want 0 for non-planar surface", f.registry.Len())
	}

	surface := wall(dprec.ZeroVec3(), 1, 1)
	container := f.add(t, surface)
	before := f.world.NodeCount()
	f.registry.SurfaceAdded(surface, container)
	if f.registry.Len() != 1 || f.world.NodeCount() != before {
		t.Fatal("duplicate add created another placeholder")
	}
}

func TestSurfaceUpdatedKeepsMaterial(t *testing.T) {
	f := newFixture()
	surface := wall(dprec.ZeroVec3(), 1, 1)
	container := f.add(t, surface)

	if err := f.registry.Recolor(surface.ID, material.TagSelected); err != nil {
		t.Fatalf("Recolor: %v", err)
	}

	surface.Extent = sprec.NewVec2(2, 3)
	surface.Center = dprec.NewVec3(0.5, 0.7, 0.25)
	f.registry.SurfaceUpdated(surface, container)

	placeholder, _ := f.registry.Lookup(surface.ID)
	node, _ := f.world.Node(placeholder.Node)
	if node.Geometry != (scene.Plane{Width: 2, Height: 3}) {
		t.Fatalf("geometry = %#v, want 2x3 plane", node.Geometry)
	}
	if want := dprec.NewVec3(0.5, 0, 0.25); node.Position != want {
		t.Fatalf("position = %v, want %v", node.Position, want)
	}
	if node.Material.Value != f.policy.Material(material.TagSelected) {
		t.Fatal("update replaced the selected material")
	}
	if placeholder.Tag != material.TagSelected {
		t.Fatalf("tag = %v, want selected", placeholder.Tag)
	}
}

func TestSurfaceUpdatedUnknownIsSilent(t *testing.T) {
	f := newFixture()
	surface := wall(dprec.ZeroVec3(), 1, 1)
	before := f.world.NodeCount()
	f.registry.SurfaceUpdated(surface, f.world.Root())
	if f.registry.Len() != 0 || f.world.NodeCount() != before {
		t.Fatal("update of an unknown surface changed state")
	}
}

func TestSurfaceRemoved(t *testing.T) {
	f := newFixture()
	a := wall(dprec.ZeroVec3(), 1, 1)
	b := wall(dprec.NewVec3(2, 0, 0), 1, 1)
	f.add(t, a)
	f.add(t, b)

	f.registry.SurfaceRemoved(a)
	if f.registry.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.registry.Len())
	}
	if _, ok := f.registry.Lookup(a.ID); ok {
		t.Fatal("removed surface still registered")
	}
	placeholders := f.registry.Placeholders()
	if len(placeholders) != 1 || placeholders[0].Surface != b.ID {
		t.Fatalf("placeholders = %+v, want only b", placeholders)
	}

	// Removing again is a no-op.
	f.registry.SurfaceRemoved(a)
	if f.registry.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.registry.Len())
	}
}

func TestClosedGateFreezesPlaceholders(t *testing.T) {
	f := newFixture()
	surface := wall(dprec.ZeroVec3(), 1, 1)
	container := f.add(t, surface)
	placeholder, _ := f.registry.Lookup(surface.ID)

	f.open = false

	late := wall(dprec.NewVec3(3, 0, 0), 1, 1)
	lateContainer, _ := f.world.AddSurface(late)
	f.registry.SurfaceAdded(late, lateContainer)

	resized := surface
	resized.Extent = sprec.NewVec2(5, 5)
	f.registry.SurfaceUpdated(resized, container)

	f.registry.SurfaceRemoved(surface)

	if f.registry.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.registry.Len())
	}
	node, _ := f.world.Node(placeholder.Node)
	if node.Geometry != (scene.Plane{Width: 1, Height: 1}) {
		t.Fatalf("geometry = %#v, want untouched 1x1 plane", node.Geometry)
	}
	if _, ok := f.registry.Lookup(surface.ID); !ok {
		t.Fatal("closed gate allowed removal")
	}
}

func TestRecolorIsMonotonic(t *testing.T) {
	f := newFixture()
	surface := wall(dprec.ZeroVec3(), 1, 1)
	f.add(t, surface)

	steps := []struct {
		tag     material.Tag
		wantErr error
	}{
		{material.TagFinal, anchor.ErrSkippedTransition},
		{material.TagSelected, nil},
		{material.TagDetected, anchor.ErrReverseTransition},
		{material.TagFinal, nil},
		{material.TagSelected, anchor.ErrReverseTransition},
		{material.TagDetected, anchor.ErrReverseTransition},
		{material.TagFinal, anchor.ErrReverseTransition},
	}
	for i, step := range steps {
		err := f.registry.Recolor(surface.ID, step.tag)
		if !errors.Is(err, step.wantErr) {
			t.Fatalf("step %d: Recolor(%v) = %v, want %v", i, step.tag, err, step.wantErr)
		}
	}

	placeholder, _ := f.registry.Lookup(surface.ID)
	if placeholder.Tag != material.TagFinal {
		t.Fatalf("tag = %v, want final", placeholder.Tag)
	}
	node, _ := f.world.Node(placeholder.Node)
	if node.Material.Value != f.policy.Material(material.TagFinal) {
		t.Fatal("node is not shaded as the dartboard")
	}

	if err := f.registry.Recolor(uuid.New(), material.TagSelected); !errors.Is(err, anchor.ErrUnknownSurface) {
		t.Fatalf("Recolor(unknown) = %v, want ErrUnknownSurface", err)
	}
}

func TestReset(t *testing.T) {
	f := newFixture()
	f.add(t, wall(dprec.ZeroVec3(), 1, 1))
	f.add(t, wall(dprec.NewVec3(1, 0, 0), 1, 1))
	f.registry.Reset()
	if f.registry.Len() != 0 || len(f.registry.Placeholders()) != 0 {
		t.Fatal("Reset left placeholders behind")
	}
}

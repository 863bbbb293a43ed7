package launch_test

import (
	"math"
	"testing"
	"time"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"

	"github.com/nobonobo/ar-darts/ar/launch"
	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/sim"
	"github.com/nobonobo/ar-darts/ar/xform"
)

func newLauncher(world *sim.World, orientation launch.Orientation) *launch.Launcher {
	return launch.NewLauncher(launch.Info{
		Graph:       world,
		Animator:    world,
		PointOfView: world,
		Orientation: orientation,
	})
}

func TestLaunchRestsExactlyAtHit(t *testing.T) {
	testCases := []struct {
		name   string
		camera dprec.Vec3
		end    dprec.Vec3
	}{
		{"straight", dprec.NewVec3(0, 0, 0), dprec.NewVec3(0, 0, -2)},
		{"awkward", dprec.NewVec3(0.1, 0.2, 0.3), dprec.NewVec3(-1.0/3.0, 2.0/7.0, -1.1)},
		{"zero-length", dprec.NewVec3(0.5, 0.5, 0.5), dprec.NewVec3(0.5, 0.5, 0.5)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := sim.NewConfig(390, 844)
			cfg.SetCameraPose(scene.Pose{Position: tc.camera, Orientation: dprec.IdentityQuat()})
			world := sim.NewWorld(cfg)
			launcher := newLauncher(world, launch.OrientationAlignToSurface)

			hit := xform.Pose(tc.end, dprec.RotationQuat(dprec.Degrees(90), dprec.BasisXVec3()))
			projectile := launcher.Launch(hit)

			if projectile.Start != tc.camera {
				t.Fatalf("start = %v, want %v", projectile.Start, tc.camera)
			}
			if got := world.PresentationPosition(projectile.Node); got != tc.camera {
				t.Fatalf("initial position = %v, want %v", got, tc.camera)
			}

			world.Advance(250 * time.Millisecond)
			if world.AnimationCount() != 1 {
				t.Fatalf("animations = %d, want 1 mid-flight", world.AnimationCount())
			}

			world.Advance(250 * time.Millisecond)
			if world.AnimationCount() != 0 {
				t.Fatalf("animations = %d, want 0 after landing", world.AnimationCount())
			}
			node, ok := world.Node(projectile.Node)
			if !ok {
				t.Fatal("dart node missing")
			}
			if node.Position != tc.end {
				t.Fatalf("rest position = %v, want exactly %v", node.Position, tc.end)
			}
		})
	}
}

func TestLaunchCreatesDartUnderRoot(t *testing.T) {
	world := sim.NewWorld(sim.NewConfig(390, 844))
	launcher := newLauncher(world, launch.OrientationAlignToSurface)

	projectile := launcher.Launch(xform.Pose(dprec.NewVec3(0, 0, -1), dprec.IdentityQuat()))

	node, ok := world.Node(projectile.Node)
	if !ok {
		t.Fatal("dart node missing")
	}
	if node.Parent != world.Root() {
		t.Fatal("dart is not attached to the root")
	}
	if node.Geometry != launch.DartGeometry {
		t.Fatalf("geometry = %#v, want dart cone", node.Geometry)
	}
	if node.Material != opt.V(launch.DartMaterial) {
		t.Fatalf("material = %#v, want dart material", node.Material)
	}
	if projectile.Duration != launch.DefaultDuration {
		t.Fatalf("duration = %v, want %v", projectile.Duration, launch.DefaultDuration)
	}
	if launcher.Thrown() != 1 {
		t.Fatalf("thrown = %d, want 1", launcher.Thrown())
	}
}

func TestOrientationPolicies(t *testing.T) {
	surface := dprec.RotationQuat(dprec.Degrees(90), dprec.BasisXVec3())
	camera := dprec.RotationQuat(dprec.Degrees(30), dprec.BasisYVec3())
	hit := xform.Pose(dprec.NewVec3(0, 0, -2), surface)

	cfg := sim.NewConfig(390, 844)
	cfg.SetCameraPose(scene.Pose{Position: dprec.ZeroVec3(), Orientation: camera})
	world := sim.NewWorld(cfg)

	aligned := newLauncher(world, launch.OrientationAlignToSurface).Plan(hit)
	wantAligned := dprec.Quat{W: -surface.W, X: surface.X, Y: surface.Y, Z: surface.Z}
	if !xform.SameRotation(aligned.Orientation, wantAligned, 1e-9) {
		t.Fatalf("aligned orientation = %v, want %v", aligned.Orientation, wantAligned)
	}
	if xform.SameRotation(aligned.Orientation, surface, 1e-6) {
		t.Fatal("aligned orientation kept the W component of the surface")
	}

	relative := newLauncher(world, launch.OrientationRelativeToCamera).Plan(hit)
	if got := dprec.QuatProd(relative.Orientation, camera); !xform.SameRotation(got, surface, 1e-9) {
		t.Fatalf("relative * camera = %v, want %v", got, surface)
	}
	if n := relative.Orientation.Norm(); math.Abs(n-1) > 1e-9 {
		t.Fatalf("relative orientation is not a unit quaternion: norm %v", n)
	}

	// Component-wise subtraction would give a non-unit quaternion here.
	diff := dprec.Quat{
		W: surface.W - camera.W,
		X: surface.X - camera.X,
		Y: surface.Y - camera.Y,
		Z: surface.Z - camera.Z,
	}
	if xform.SameRotation(diff, relative.Orientation, 1e-6) {
		t.Fatal("relative orientation matches component-wise difference")
	}
}

func TestCustomDuration(t *testing.T) {
	world := sim.NewWorld(sim.NewConfig(390, 844))
	launcher := launch.NewLauncher(launch.Info{
		Graph:       world,
		Animator:    world,
		PointOfView: world,
		Duration:    opt.V(time.Second),
	})
	projectile := launcher.Launch(xform.Pose(dprec.NewVec3(0, 0, -1), dprec.IdentityQuat()))

	world.Advance(500 * time.Millisecond)
	if world.AnimationCount() != 1 {
		t.Fatal("dart landed too early")
	}
	world.Advance(500 * time.Millisecond)
	node, _ := world.Node(projectile.Node)
	if node.Position != projectile.End {
		t.Fatalf("rest position = %v, want %v", node.Position, projectile.End)
	}
}

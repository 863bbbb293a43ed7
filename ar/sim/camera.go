package sim

import (
	"math"

	"github.com/mokiat/gomath/dprec"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/schema"
)

// Camera is a pinhole camera looking down its local -Z axis with +Y up.
type Camera struct {
	Pose     scene.Pose
	Viewport schema.Point
	FoV      dprec.Angle
}

func (c Camera) aspect() float64 {
	if c.Viewport.Y == 0 {
		return 1
	}
	return c.Viewport.X / c.Viewport.Y
}

// Ray returns the world-space ray through the screen point. Screen
// coordinates start at the top-left corner.
func (c Camera) Ray(point schema.Point) (origin, direction dprec.Vec3) {
	ndcX := 2*point.X/c.Viewport.X - 1
	ndcY := 1 - 2*point.Y/c.Viewport.Y
	tanHalf := math.Tan(c.FoV.Radians() / 2)
	local := dprec.NewVec3(ndcX*tanHalf*c.aspect(), ndcY*tanHalf, -1)
	direction = dprec.QuatVec3Rotation(c.Pose.Orientation, local)
	return c.Pose.Position, dprec.UnitVec3(direction)
}

// Project returns the screen point of a world position. The second
// result is false when the position is behind the camera.
func (c Camera) Project(position dprec.Vec3) (schema.Point, bool) {
	local := dprec.QuatVec3Rotation(dprec.InverseQuat(c.Pose.Orientation), dprec.Vec3Diff(position, c.Pose.Position))
	if local.Z >= 0 {
		return schema.Point{}, false
	}
	tanHalf := math.Tan(c.FoV.Radians() / 2)
	ndcX := local.X / (-local.Z * tanHalf * c.aspect())
	ndcY := local.Y / (-local.Z * tanHalf)
	return schema.Point{
		X: (ndcX + 1) / 2 * c.Viewport.X,
		Y: (1 - ndcY) / 2 * c.Viewport.Y,
	}, true
}

func (w *World) CameraPose() scene.Pose {
	return w.camera.Pose
}

// SetCameraPose moves the device.
func (w *World) SetCameraPose(pose scene.Pose) {
	w.camera.Pose = pose
}

// Camera returns the current camera.
func (w *World) Camera() Camera {
	return w.camera
}

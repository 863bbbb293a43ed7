package main

import (
	"github.com/google/uuid"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/gomath/sprec"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/tracking"
	"github.com/nobonobo/ar-darts/ar/xform"
	"github.com/nobonobo/ar-darts/schema"
)

// surfaceID maps script ids to uuids. Ids that are not uuids are hashed
// so that the same name always gives the same surface.
func surfaceID(id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
}

func vec3(v schema.Vec3) dprec.Vec3 {
	return dprec.NewVec3(v.X, v.Y, v.Z)
}

// eulerQuat applies roll, then pitch, then yaw.
func eulerQuat(degrees schema.Vec3) dprec.Quat {
	return dprec.EulerQuat(
		dprec.Degrees(degrees.X),
		dprec.Degrees(degrees.Y),
		dprec.Degrees(degrees.Z),
		dprec.RotationOrderGlobalZXY,
	)
}

func toSurface(s schema.Surface) tracking.Surface {
	alignment := tracking.AlignmentHorizontal
	if s.Vertical {
		alignment = tracking.AlignmentVertical
	}
	planar := true
	if s.Planar != nil {
		planar = *s.Planar
	}
	return tracking.Surface{
		ID:        surfaceID(s.ID),
		Center:    vec3(s.Center),
		Extent:    sprec.NewVec2(s.Width, s.Height),
		Planar:    planar,
		Alignment: alignment,
		Transform: xform.Pose(vec3(s.Position), eulerQuat(s.Rotation)),
	}
}

func toPose(c schema.Camera) scene.Pose {
	return scene.Pose{
		Position:    vec3(c.Position),
		Orientation: eulerQuat(c.Rotation),
	}
}

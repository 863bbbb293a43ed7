package sim

import (
	"math"
	"slices"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/lacking/util/shape3d"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/xform"
	"github.com/nobonobo/ar-darts/schema"
)

// maxRayLength is how far hit-test segments reach. It also bounds
// surfaces that are tested without their extent.
const maxRayLength = 1000.0

// seamTolerance grows quad triangles so that rounding cannot open a gap
// along the shared diagonal.
const seamTolerance = 1e-9

// tieTolerance is how close two screen hits must be to count as the same
// distance.
const tieTolerance = 1e-9

// quad is a rectangle given by its corners in winding order.
type quad [4]dprec.Vec3

func (q quad) transformed(m dprec.Mat4) quad {
	for i := range q {
		q[i] = dprec.Mat4Vec3Transformation(m, q[i])
	}
	return q
}

// triangles splits the quad in two and adds the reversed windings, since
// shape3d culls back faces and both sides of a quad are hittable.
func (q quad) triangles() [4]shape3d.Triangle {
	return [4]shape3d.Triangle{
		seamless(q[0], q[1], q[2]),
		seamless(q[0], q[2], q[3]),
		seamless(q[0], q[2], q[1]),
		seamless(q[0], q[3], q[2]),
	}
}

func seamless(a, b, c dprec.Vec3) shape3d.Triangle {
	centroid := dprec.Vec3Prod(dprec.Vec3Sum(dprec.Vec3Sum(a, b), c), 1.0/3.0)
	grow := func(p dprec.Vec3) dprec.Vec3 {
		return dprec.Vec3Sum(centroid, dprec.Vec3Prod(dprec.Vec3Diff(p, centroid), 1.0+seamTolerance))
	}
	return shape3d.NewTriangle(grow(a), grow(b), grow(c))
}

// cast returns where the segment crosses the quad.
func (q quad) cast(segment shape3d.Segment) (dprec.Vec3, bool) {
	var result shape3d.LastIntersection
	for _, triangle := range q.triangles() {
		shape3d.CheckSegmentTriangleIntersection(segment, triangle, result.AddIntersection)
		if intersection, ok := result.Intersection(); ok {
			return intersection.TargetContact, true
		}
	}
	return dprec.Vec3{}, false
}

func (c Camera) segment(point schema.Point) shape3d.Segment {
	origin, direction := c.Ray(point)
	return shape3d.NewSegment(origin, dprec.Vec3Sum(origin, dprec.Vec3Prod(direction, maxRayLength)))
}

func planeQuad(transform dprec.Mat4, plane scene.Plane) quad {
	hw, hh := float64(plane.Width)/2, float64(plane.Height)/2
	return quad{
		dprec.NewVec3(-hw, -hh, 0),
		dprec.NewVec3(hw, -hh, 0),
		dprec.NewVec3(hw, hh, 0),
		dprec.NewVec3(-hw, hh, 0),
	}.transformed(transform)
}

// ScreenHitTest returns the nearest plane node under the point. Other
// geometry is not pickable. Of planes at the same distance the one
// created first wins.
func (w *World) ScreenHitTest(point schema.Point) opt.T[scene.NodeID] {
	segment := w.camera.segment(point)

	var (
		best     scene.NodeID
		bestDist = math.Inf(1)
	)
	for _, id := range w.order {
		plane, ok := w.nodes[id].geometry.(scene.Plane)
		if !ok {
			continue
		}
		contact, ok := planeQuad(w.WorldTransform(id), plane).cast(segment)
		if !ok {
			continue
		}
		if dist := dprec.Vec3Diff(contact, segment.A).Length(); dist < bestDist-tieTolerance {
			best, bestDist = id, dist
		}
	}
	if math.IsInf(bestDist, 1) {
		return opt.T[scene.NodeID]{}
	}
	return opt.V(best)
}

// surfaceQuad lies in the local XZ plane of the surface. Without extent
// it spans as far as a hit-test segment can reach.
func surfaceQuad(ts *trackedSurface, bounded bool) quad {
	s := ts.surface
	hw, hh := float64(s.Extent.X)/2, float64(s.Extent.Y)/2
	if !bounded {
		hw, hh = maxRayLength, maxRayLength
	}
	c := s.Center
	return quad{
		dprec.NewVec3(c.X-hw, 0, c.Z-hh),
		dprec.NewVec3(c.X+hw, 0, c.Z-hh),
		dprec.NewVec3(c.X+hw, 0, c.Z+hh),
		dprec.NewVec3(c.X-hw, 0, c.Z+hh),
	}.transformed(s.Transform)
}

// WorldHitTest intersects the ray through the point with tracked
// surfaces. Each hit carries the surface orientation and the hit
// position.
func (w *World) WorldHitTest(point schema.Point, kind scene.HitTestType) []scene.WorldHit {
	segment := w.camera.segment(point)
	bounded := kind == scene.HitExistingPlaneUsingExtent

	var hits []scene.WorldHit
	for _, id := range w.surfaceOrder {
		ts := w.surfaces[id]
		if !ts.surface.Planar {
			continue
		}
		position, ok := surfaceQuad(ts, bounded).cast(segment)
		if !ok {
			continue
		}
		hits = append(hits, scene.WorldHit{
			Surface:        id,
			WorldTransform: xform.WithPosition(ts.surface.Transform, position),
			Distance:       dprec.Vec3Diff(position, segment.A).Length(),
		})
	}
	slices.SortStableFunc(hits, func(a, b scene.WorldHit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return hits
}

package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// TriangleTriangleIntersection reports whether two triangles, each placed in
// world space by its own model matrix, intersect. Touching counts as
// intersecting. The test is exact up to floatEpsilon: each triangle is
// intersected with the other's supporting plane and the resulting segments
// are compared on the planes' common line.
// Reference: Moller, "A Fast Triangle-Triangle Intersection Test", 1997.
func TriangleTriangleIntersection(t1 *Triangle, m1 mgl64.Mat4, t2 *Triangle, m2 mgl64.Mat4) bool {
	return triangleTriangleIntersect(t1.Transform(m1), t2.Transform(m2))
}

// TriangleTriangleDistance returns the shortest distance between two
// triangles placed in world space by their model matrices, or 0 if they
// intersect.
func TriangleTriangleDistance(t1 *Triangle, m1 mgl64.Mat4, t2 *Triangle, m2 mgl64.Mat4) float64 {
	w1 := t1.Transform(m1)
	w2 := t2.Transform(m2)
	if triangleTriangleIntersect(w1, w2) {
		return 0
	}
	return triangleTriangleSeparationDist(w1, w2)
}

// triangleTriangleIntersect is the world-space triangle intersection test.
func triangleTriangleIntersect(w1, w2 *Triangle) bool {
	n1 := w1.Normal()
	n2 := w2.Normal()

	// Degenerate triangles have no plane; fall back to feature distances.
	if n1.Norm2() < floatEpsilon || n2.Norm2() < floatEpsilon {
		return triangleTriangleSeparationDist(w1, w2) <= floatEpsilon
	}

	// Early reject: all vertices of one triangle strictly on one side of the
	// other's plane.
	if !w1.IntersectsPlane(w2.p0, n2) || !w2.IntersectsPlane(w1.p0, n1) {
		return false
	}

	// Coplanar triangles require a 2D overlap test.
	cross := n1.Cross(n2)
	if cross.Norm2() < floatEpsilon*floatEpsilon {
		// Parallel planes; coplanar only if w1's vertices lie on w2's plane.
		if math.Abs(n2.Dot(w1.p0.Sub(w2.p0))) > floatEpsilon {
			return false
		}
		return coplanarTrianglesIntersect(w1, w2, n2)
	}

	// Each triangle cuts the other's plane in a segment; both segments lie on
	// the planes' intersection line. The triangles intersect iff the segments'
	// projections onto that line overlap.
	s1a, s1b, ok := w1.PlaneIntersectingSegment(w2.p0, n2)
	if !ok {
		return false
	}
	s2a, s2b, ok := w2.PlaneIntersectingSegment(w1.p0, n1)
	if !ok {
		return false
	}

	dir := cross.Normalize()
	min1, max1 := projectedInterval(dir, s1a, s1b)
	min2, max2 := projectedInterval(dir, s2a, s2b)
	return max1 >= min2-floatEpsilon && min1 <= max2+floatEpsilon
}

func projectedInterval(dir r3.Vector, pts ...r3.Vector) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, p := range pts {
		d := dir.Dot(p)
		min = math.Min(min, d)
		max = math.Max(max, d)
	}
	return min, max
}

// triangleTriangleSeparationDist computes the minimum distance between two
// non-intersecting triangles by checking vertex-to-triangle and edge-to-edge
// feature pairs, the same enumeration used for separated boxes.
func triangleTriangleSeparationDist(w1, w2 *Triangle) float64 {
	minDist := math.Inf(1)

	for _, pt := range w1.Points() {
		if d := pt.Sub(w2.ClosestPointToPoint(pt)).Norm(); d < minDist {
			minDist = d
		}
	}
	for _, pt := range w2.Points() {
		if d := pt.Sub(w1.ClosestPointToPoint(pt)).Norm(); d < minDist {
			minDist = d
		}
	}

	edges1 := triangleEdges(w1)
	edges2 := triangleEdges(w2)
	for _, e1 := range edges1 {
		for _, e2 := range edges2 {
			if d := SegmentDistanceToSegment(e1[0], e1[1], e2[0], e2[1]); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}

func triangleEdges(t *Triangle) [3][2]r3.Vector {
	return [3][2]r3.Vector{{t.p0, t.p1}, {t.p1, t.p2}, {t.p2, t.p0}}
}

// coplanarTrianglesIntersect tests two triangles lying in the same plane by
// projecting them to 2D along the plane normal's dominant axis.
func coplanarTrianglesIntersect(w1, w2 *Triangle, normal r3.Vector) bool {
	a := project2D(w1, normal)
	b := project2D(w2, normal)

	// Any pair of crossing edges means overlap.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if segmentsIntersect2D(a[i], a[(i+1)%3], b[j], b[(j+1)%3]) {
				return true
			}
		}
	}

	// No crossing edges: one triangle may contain the other entirely.
	return pointInTriangle2D(a[0], b) || pointInTriangle2D(b[0], a)
}

type point2D struct {
	x, y float64
}

// project2D drops the dominant axis of the normal, preserving the largest
// (most numerically stable) projection of the triangle.
func project2D(t *Triangle, normal r3.Vector) [3]point2D {
	ax := math.Abs(normal.X)
	ay := math.Abs(normal.Y)
	az := math.Abs(normal.Z)

	var out [3]point2D
	for i, p := range t.Points() {
		switch {
		case ax >= ay && ax >= az:
			out[i] = point2D{p.Y, p.Z}
		case ay >= ax && ay >= az:
			out[i] = point2D{p.X, p.Z}
		default:
			out[i] = point2D{p.X, p.Y}
		}
	}
	return out
}

func orient2D(a, b, c point2D) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func onSegment2D(a, b, p point2D) bool {
	return math.Min(a.x, b.x)-floatEpsilon <= p.x && p.x <= math.Max(a.x, b.x)+floatEpsilon &&
		math.Min(a.y, b.y)-floatEpsilon <= p.y && p.y <= math.Max(a.y, b.y)+floatEpsilon
}

func segmentsIntersect2D(a1, a2, b1, b2 point2D) bool {
	d1 := orient2D(b1, b2, a1)
	d2 := orient2D(b1, b2, a2)
	d3 := orient2D(a1, a2, b1)
	d4 := orient2D(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear overlap and endpoint touching.
	if math.Abs(d1) <= floatEpsilon && onSegment2D(b1, b2, a1) {
		return true
	}
	if math.Abs(d2) <= floatEpsilon && onSegment2D(b1, b2, a2) {
		return true
	}
	if math.Abs(d3) <= floatEpsilon && onSegment2D(a1, a2, b1) {
		return true
	}
	if math.Abs(d4) <= floatEpsilon && onSegment2D(a1, a2, b2) {
		return true
	}
	return false
}

func pointInTriangle2D(p point2D, tri [3]point2D) bool {
	d1 := orient2D(tri[0], tri[1], p)
	d2 := orient2D(tri[1], tri[2], p)
	d3 := orient2D(tri[2], tri[0], p)

	hasNeg := d1 < -floatEpsilon || d2 < -floatEpsilon || d3 < -floatEpsilon
	hasPos := d1 > floatEpsilon || d2 > floatEpsilon || d3 > floatEpsilon
	return !(hasNeg && hasPos)
}

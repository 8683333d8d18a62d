package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// TrianglesAABB computes the axis-aligned bounding box tightly enclosing
// every vertex of every given triangle.
func TrianglesAABB(triangles []*Triangle) (r3.Vector, r3.Vector, error) {
	if len(triangles) == 0 {
		return r3.Vector{}, r3.Vector{}, errors.New("cannot compute AABB of an empty triangle list")
	}
	min := triangles[0].p0
	max := min
	for _, tri := range triangles {
		for _, vertex := range tri.Points() {
			min.X = math.Min(vertex.X, min.X)
			min.Y = math.Min(vertex.Y, min.Y)
			min.Z = math.Min(vertex.Z, min.Z)

			max.X = math.Max(vertex.X, max.X)
			max.Y = math.Max(vertex.Y, max.Y)
			max.Z = math.Max(vertex.Z, max.Z)
		}
	}
	return min, max, nil
}

// AABBOverlap reports whether two axis-aligned bounding boxes overlap.
// Touching faces count as overlap.
func AABBOverlap(min1, max1, min2, max2 r3.Vector) bool {
	return max1.X >= min2.X && min1.X <= max2.X &&
		max1.Y >= min2.Y && min1.Y <= max2.Y &&
		max1.Z >= min2.Z && min1.Z <= max2.Z
}

// AABBDistance returns the Euclidean distance between two axis-aligned
// bounding boxes, or 0 if they overlap.
func AABBDistance(min1, max1, min2, max2 r3.Vector) float64 {
	dx := math.Max(0, math.Max(min2.X-max1.X, min1.X-max2.X))
	dy := math.Max(0, math.Max(min2.Y-max1.Y, min1.Y-max2.Y))
	dz := math.Max(0, math.Max(min2.Z-max1.Z, min1.Z-max2.Z))
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// TransformAABB transforms the two diagonal corner points of an AABB by a
// model matrix and renormalizes them componentwise so the returned min is
// <= the returned max on every axis. Only the two corners are transformed,
// not all eight, so under rotation the result is an approximation of the
// true world-space AABB. The broad phase treats it as a fast reject only.
func TransformAABB(min, max r3.Vector, m mgl64.Mat4) (r3.Vector, r3.Vector) {
	a := TransformPoint(m, min)
	b := TransformPoint(m, max)
	newMin := r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
	newMax := r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
	return newMin, newMax
}

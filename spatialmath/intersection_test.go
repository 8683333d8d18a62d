package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

var ident = mgl64.Ident4()

func xyTriangle() *Triangle {
	return NewTriangle(
		r3.Vector{X: 0, Y: 0, Z: 0},
		r3.Vector{X: 1, Y: 0, Z: 0},
		r3.Vector{X: 0, Y: 1, Z: 0},
	)
}

func TestTriangleTriangleIntersection(t *testing.T) {
	t.Run("identical triangles intersect", func(t *testing.T) {
		tri := xyTriangle()
		test.That(t, TriangleTriangleIntersection(tri, ident, tri, ident), test.ShouldBeTrue)
	})

	t.Run("piercing triangle intersects", func(t *testing.T) {
		tri1 := xyTriangle()
		tri2 := NewTriangle(
			r3.Vector{X: 0.5, Y: 0.5, Z: -0.5},
			r3.Vector{X: 0.5, Y: 0.5, Z: 0.5},
			r3.Vector{X: -0.5, Y: 0.5, Z: 0},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeTrue)
		test.That(t, TriangleTriangleIntersection(tri2, ident, tri1, ident), test.ShouldBeTrue)
	})

	t.Run("separated parallel triangles do not intersect", func(t *testing.T) {
		tri1 := xyTriangle()
		tri2 := NewTriangle(
			r3.Vector{X: 0, Y: 0, Z: 5},
			r3.Vector{X: 1, Y: 0, Z: 5},
			r3.Vector{X: 0, Y: 1, Z: 5},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeFalse)
	})

	t.Run("crossing planes but disjoint triangles", func(t *testing.T) {
		tri1 := xyTriangle()
		// crosses the XY plane but far from tri1
		tri2 := NewTriangle(
			r3.Vector{X: 10, Y: 10, Z: -1},
			r3.Vector{X: 11, Y: 10, Z: 1},
			r3.Vector{X: 10, Y: 11, Z: 1},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeFalse)
	})

	t.Run("coplanar overlapping triangles intersect", func(t *testing.T) {
		tri1 := xyTriangle()
		tri2 := NewTriangle(
			r3.Vector{X: 0.25, Y: 0.25, Z: 0},
			r3.Vector{X: 1.25, Y: 0.25, Z: 0},
			r3.Vector{X: 0.25, Y: 1.25, Z: 0},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeTrue)
	})

	t.Run("coplanar contained triangle intersects", func(t *testing.T) {
		tri1 := NewTriangle(
			r3.Vector{X: -5, Y: -5, Z: 0},
			r3.Vector{X: 5, Y: -5, Z: 0},
			r3.Vector{X: 0, Y: 5, Z: 0},
		)
		tri2 := NewTriangle(
			r3.Vector{X: -0.5, Y: -0.5, Z: 0},
			r3.Vector{X: 0.5, Y: -0.5, Z: 0},
			r3.Vector{X: 0, Y: 0.5, Z: 0},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeTrue)
		test.That(t, TriangleTriangleIntersection(tri2, ident, tri1, ident), test.ShouldBeTrue)
	})

	t.Run("coplanar disjoint triangles do not intersect", func(t *testing.T) {
		tri1 := xyTriangle()
		tri2 := NewTriangle(
			r3.Vector{X: 10, Y: 0, Z: 0},
			r3.Vector{X: 11, Y: 0, Z: 0},
			r3.Vector{X: 10, Y: 1, Z: 0},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeFalse)
	})

	t.Run("transforms move triangles into collision", func(t *testing.T) {
		tri := xyTriangle()
		away := mgl64.Translate3D(100, 100, 100)
		test.That(t, TriangleTriangleIntersection(tri, ident, tri, away), test.ShouldBeFalse)

		nearby := mgl64.Translate3D(0.1, 0.1, 0)
		test.That(t, TriangleTriangleIntersection(tri, ident, tri, nearby), test.ShouldBeTrue)
	})

	t.Run("rotation moves triangle into collision", func(t *testing.T) {
		tri1 := xyTriangle()
		// parallel above tri1, crossing it once tipped 90 degrees about X
		tri2 := NewTriangle(
			r3.Vector{X: -1, Y: -1, Z: 0.5},
			r3.Vector{X: 2, Y: -1, Z: 0.5},
			r3.Vector{X: -1, Y: 2, Z: 0.5},
		)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, ident), test.ShouldBeFalse)
		rot := mgl64.HomogRotate3DX(-math.Pi / 2)
		test.That(t, TriangleTriangleIntersection(tri1, ident, tri2, rot), test.ShouldBeTrue)
	})
}

func TestTriangleTriangleDistance(t *testing.T) {
	t.Run("intersecting triangles have zero distance", func(t *testing.T) {
		tri := xyTriangle()
		test.That(t, TriangleTriangleDistance(tri, ident, tri, ident), test.ShouldEqual, 0)
	})

	t.Run("parallel triangles separated in Z", func(t *testing.T) {
		tri1 := xyTriangle()
		tri2 := NewTriangle(
			r3.Vector{X: 0, Y: 0, Z: 3},
			r3.Vector{X: 1, Y: 0, Z: 3},
			r3.Vector{X: 0, Y: 1, Z: 3},
		)
		test.That(t, TriangleTriangleDistance(tri1, ident, tri2, ident), test.ShouldAlmostEqual, 3, 1e-9)
	})

	t.Run("distance respects transforms", func(t *testing.T) {
		tri := xyTriangle()
		d := TriangleTriangleDistance(tri, ident, tri, mgl64.Translate3D(0, 0, 10))
		test.That(t, d, test.ShouldAlmostEqual, 10, 1e-9)
	})

	t.Run("closest features are edges", func(t *testing.T) {
		tri1 := NewTriangle(
			r3.Vector{X: -1, Y: 0, Z: 0},
			r3.Vector{X: 1, Y: 0, Z: 0},
			r3.Vector{X: 0, Y: -2, Z: 0},
		)
		tri2 := NewTriangle(
			r3.Vector{X: 0, Y: 1, Z: 2},
			r3.Vector{X: 0, Y: 3, Z: 2},
			r3.Vector{X: 0, Y: 1, Z: -2},
		)
		// closest approach is between edge y=0 of tri1 and the edge of tri2
		// along y=1
		test.That(t, TriangleTriangleDistance(tri1, ident, tri2, ident), test.ShouldAlmostEqual, 1, 1e-9)
	})
}

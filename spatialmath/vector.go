// Package spatialmath defines the geometric primitives used for mesh
// collision detection: triangles, axis-aligned bounding boxes, and the
// narrow-phase triangle intersection and distance tests.
package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/collision/utils"
)

const floatEpsilon = 1e-6

// TransformPoint applies a 4x4 model matrix to a point, treating it as a
// homogeneous point with w=1.
func TransformPoint(m mgl64.Mat4, p r3.Vector) r3.Vector {
	v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// R3VectorAlmostEqual compares two r3.Vectors and returns if the all elements are almost equal.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

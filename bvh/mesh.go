package bvh

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/collision/spatialmath"
)

// Mesh owns a set of triangles and the BVH built over them. The hierarchy is
// built lazily on first use and cached; the subdivision parameters are fixed
// at mesh creation. Triangle collision flags set by a test are visible
// through the mesh since nodes reference the mesh's triangles directly.
type Mesh struct {
	label                string
	triangles            []*spatialmath.Triangle
	maxDepth             int
	minTrianglesForSplit int

	once     sync.Once
	root     *Node
	buildErr error
}

// NewMesh creates a mesh from a non-empty triangle list. maxDepth and
// minTrianglesForSplit are handed to the builder when the BVH is first
// needed.
func NewMesh(label string, triangles []*spatialmath.Triangle, maxDepth, minTrianglesForSplit int) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, ErrNoTriangles
	}
	return &Mesh{
		label:                label,
		triangles:            triangles,
		maxDepth:             maxDepth,
		minTrianglesForSplit: minTrianglesForSplit,
	}, nil
}

// Label returns the label of the mesh.
func (m *Mesh) Label() string {
	return m.label
}

// Triangles returns the mesh's triangles.
func (m *Mesh) Triangles() []*spatialmath.Triangle {
	return m.triangles
}

// String returns a human readable string that represents the mesh.
func (m *Mesh) String() string {
	return fmt.Sprintf("Type: Mesh | Label: %s | Triangles: %d", m.label, len(m.triangles))
}

// BVH returns the mesh's hierarchy, building it on first call.
func (m *Mesh) BVH() (*Node, error) {
	m.once.Do(func() {
		m.root, m.buildErr = Construct(m.triangles, m.maxDepth, m.minTrianglesForSplit)
	})
	return m.root, m.buildErr
}

// MarkCollisions runs the flag-marking collision test between this mesh and
// another, under their respective model matrices. Previously set flags stay
// set; call ResetCollisions first for a fresh result.
func (m *Mesh) MarkCollisions(meshMatrix mgl64.Mat4, other *Mesh, otherMatrix mgl64.Mat4) error {
	first, err := m.BVH()
	if err != nil {
		return err
	}
	second, err := other.BVH()
	if err != nil {
		return err
	}
	return TestCollision(first, meshMatrix, second, otherMatrix)
}

// CollidesWith reports whether this mesh comes within buffer of another,
// without mutating collision flags.
func (m *Mesh) CollidesWith(meshMatrix mgl64.Mat4, other *Mesh, otherMatrix mgl64.Mat4, buffer float64) (bool, error) {
	first, err := m.BVH()
	if err != nil {
		return false, err
	}
	second, err := other.BVH()
	if err != nil {
		return false, err
	}
	collides, _, err := NewTester(nil, nil).Collides(first, meshMatrix, second, otherMatrix, buffer)
	return collides, err
}

// DistanceFrom returns the minimum separation between this mesh and
// another, or 0 if they intersect.
func (m *Mesh) DistanceFrom(meshMatrix mgl64.Mat4, other *Mesh, otherMatrix mgl64.Mat4) (float64, error) {
	first, err := m.BVH()
	if err != nil {
		return 0, err
	}
	second, err := other.BVH()
	if err != nil {
		return 0, err
	}
	return NewTester(nil, nil).Distance(first, meshMatrix, second, otherMatrix)
}

// ResetCollisions clears the collision flags on the mesh's triangles and on
// every node of its hierarchy, if one has been built.
func (m *Mesh) ResetCollisions() {
	if m.root != nil {
		m.root.ResetCollisions()
		return
	}
	for _, tri := range m.triangles {
		tri.ResetCollision()
	}
}

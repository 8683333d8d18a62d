package bvh

import (
	"github.com/edaniels/golog"
	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/collision/spatialmath"
)

// defaultMaxRecursionDepth bounds traversal recursion. The combined depth of
// two well-formed trees never approaches this; hitting it means the trees
// are pathological.
const defaultMaxRecursionDepth = 1024

// TriangleIntersectionFunc is the narrow-phase predicate: it reports whether
// two triangles intersect once each is placed in world space by its model
// matrix. It must be side-effect free.
type TriangleIntersectionFunc func(t1 *spatialmath.Triangle, m1 mgl64.Mat4, t2 *spatialmath.Triangle, m2 mgl64.Mat4) bool

type testStats struct {
	nodeOverlaps int
	pairTests    int
	pairHits     int
}

// Tester tests two BVH trees for collision. It borrows the trees read-only
// except for their collision flags and never allocates or frees nodes. A
// Tester is stateless between calls and safe to reuse, but two concurrent
// calls must not share nodes or triangles.
type Tester struct {
	logger            golog.Logger
	intersects        TriangleIntersectionFunc
	maxRecursionDepth int
}

// NewTester returns a Tester using the given narrow-phase predicate. A nil
// predicate selects spatialmath.TriangleTriangleIntersection; a nil logger
// disables logging.
func NewTester(logger golog.Logger, intersects TriangleIntersectionFunc) *Tester {
	if intersects == nil {
		intersects = spatialmath.TriangleTriangleIntersection
	}
	return &Tester{
		logger:            logger,
		intersects:        intersects,
		maxRecursionDepth: defaultMaxRecursionDepth,
	}
}

// SetMaxRecursionDepth overrides the traversal recursion limit.
func (ct *Tester) SetMaxRecursionDepth(limit int) {
	ct.maxRecursionDepth = limit
}

// TestCollision tests two trees, each under its own model matrix, and marks
// the collision flags of every overlapping node pair and every intersecting
// triangle pair reachable from the two roots. Flags are only ever set, so a
// caller wanting a fresh result resets them first. The traversal always
// explores every overlapping subtree pair; it does not stop at the first
// confirmed collision.
func TestCollision(first *Node, firstMatrix mgl64.Mat4, second *Node, secondMatrix mgl64.Mat4) error {
	return NewTester(nil, nil).TestCollision(first, firstMatrix, second, secondMatrix)
}

// TestCollision tests two trees and marks colliding nodes and triangles.
// See the package-level TestCollision.
func (ct *Tester) TestCollision(first *Node, firstMatrix mgl64.Mat4, second *Node, secondMatrix mgl64.Mat4) error {
	if first == nil || second == nil {
		return nil
	}
	var stats testStats
	err := ct.testCollision(first, firstMatrix, second, secondMatrix, 0, &stats)
	if err == nil && ct.logger != nil {
		ct.logger.Debugf(
			"collision test: %d node overlaps, %d triangle pair tests, %d intersecting pairs",
			stats.nodeOverlaps, stats.pairTests, stats.pairHits,
		)
	}
	return err
}

func (ct *Tester) testCollision(
	first *Node, firstMatrix mgl64.Mat4,
	second *Node, secondMatrix mgl64.Mat4,
	depth int, stats *testStats,
) error {
	if depth > ct.maxRecursionDepth {
		return ErrRecursionDepth
	}
	firstLeaf, err := first.leaf()
	if err != nil {
		return err
	}
	secondLeaf, err := second.leaf()
	if err != nil {
		return err
	}

	// Broad phase: compare the nodes' AABBs in world space. The transformed
	// boxes are approximate under rotation, so a pass here is only a
	// cheap maybe; the narrow phase decides.
	firstMin, firstMax := spatialmath.TransformAABB(first.min, first.max, firstMatrix)
	secondMin, secondMax := spatialmath.TransformAABB(second.min, second.max, secondMatrix)
	if !spatialmath.AABBOverlap(firstMin, firstMax, secondMin, secondMax) {
		return nil
	}

	// Bounding volumes overlap: both nodes are marked even if no triangle
	// pair below them ends up intersecting.
	first.collision = true
	second.collision = true
	stats.nodeOverlaps++

	switch {
	case firstLeaf && secondLeaf:
		for _, t1 := range first.triangles {
			for _, t2 := range second.triangles {
				stats.pairTests++
				if ct.intersects(t1, firstMatrix, t2, secondMatrix) {
					t1.MarkCollision()
					t2.MarkCollision()
					stats.pairHits++
				}
			}
		}
		return nil
	case firstLeaf:
		if err := ct.testCollision(first, firstMatrix, second.left, secondMatrix, depth+1, stats); err != nil {
			return err
		}
		return ct.testCollision(first, firstMatrix, second.right, secondMatrix, depth+1, stats)
	case secondLeaf:
		if err := ct.testCollision(first.left, firstMatrix, second, secondMatrix, depth+1, stats); err != nil {
			return err
		}
		return ct.testCollision(first.right, firstMatrix, second, secondMatrix, depth+1, stats)
	default:
		if err := ct.testCollision(first.left, firstMatrix, second.left, secondMatrix, depth+1, stats); err != nil {
			return err
		}
		if err := ct.testCollision(first.left, firstMatrix, second.right, secondMatrix, depth+1, stats); err != nil {
			return err
		}
		if err := ct.testCollision(first.right, firstMatrix, second.left, secondMatrix, depth+1, stats); err != nil {
			return err
		}
		return ct.testCollision(first.right, firstMatrix, second.right, secondMatrix, depth+1, stats)
	}
}

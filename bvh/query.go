package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/collision/spatialmath"
)

// Collides reports whether any triangle of the first tree comes within
// buffer of any triangle of the second, without mutating any collision
// flags. When the trees do not collide the second return value is the
// smallest separation found before pruning; it is an upper bound on the
// true distance, not necessarily the minimum (use Distance for that).
// A nil root never collides and reports +Inf.
func (ct *Tester) Collides(
	first *Node, firstMatrix mgl64.Mat4,
	second *Node, secondMatrix mgl64.Mat4,
	buffer float64,
) (bool, float64, error) {
	if first == nil || second == nil {
		return false, math.Inf(1), nil
	}
	return ct.collides(first, firstMatrix, second, secondMatrix, buffer, 0)
}

func (ct *Tester) collides(
	first *Node, firstMatrix mgl64.Mat4,
	second *Node, secondMatrix mgl64.Mat4,
	buffer float64, depth int,
) (bool, float64, error) {
	if depth > ct.maxRecursionDepth {
		return false, math.Inf(1), ErrRecursionDepth
	}
	firstLeaf, err := first.leaf()
	if err != nil {
		return false, math.Inf(1), err
	}
	secondLeaf, err := second.leaf()
	if err != nil {
		return false, math.Inf(1), err
	}

	firstMin, firstMax := spatialmath.TransformAABB(first.min, first.max, firstMatrix)
	secondMin, secondMax := spatialmath.TransformAABB(second.min, second.max, secondMatrix)
	if d := spatialmath.AABBDistance(firstMin, firstMax, secondMin, secondMax); d > buffer {
		return false, d, nil
	}

	if firstLeaf && secondLeaf {
		collides, dist := leafCollidesWithLeaf(first.triangles, firstMatrix, second.triangles, secondMatrix, buffer)
		return collides, dist, nil
	}

	best := math.Inf(1)
	for _, pair := range childPairs(first, second, firstLeaf, secondLeaf) {
		collides, dist, err := ct.collides(pair[0], firstMatrix, pair[1], secondMatrix, buffer, depth+1)
		if err != nil {
			return false, math.Inf(1), err
		}
		if collides {
			return true, dist, nil
		}
		best = math.Min(best, dist)
	}
	return false, best, nil
}

// Distance returns the minimum separation between the triangles of two
// trees, or 0 if they intersect. Either tree being nil yields +Inf.
func (ct *Tester) Distance(
	first *Node, firstMatrix mgl64.Mat4,
	second *Node, secondMatrix mgl64.Mat4,
) (float64, error) {
	if first == nil || second == nil {
		return math.Inf(1), nil
	}
	best := math.Inf(1)
	if err := ct.distance(first, firstMatrix, second, secondMatrix, 0, &best); err != nil {
		return math.Inf(1), err
	}
	return best, nil
}

// distance is a branch-and-bound descent: subtree pairs whose world AABBs
// are already farther apart than the best distance found are pruned.
func (ct *Tester) distance(
	first *Node, firstMatrix mgl64.Mat4,
	second *Node, secondMatrix mgl64.Mat4,
	depth int, best *float64,
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

	firstMin, firstMax := spatialmath.TransformAABB(first.min, first.max, firstMatrix)
	secondMin, secondMax := spatialmath.TransformAABB(second.min, second.max, secondMatrix)
	if spatialmath.AABBDistance(firstMin, firstMax, secondMin, secondMax) >= *best {
		return nil
	}

	if firstLeaf && secondLeaf {
		if d := leafDistanceFromLeaf(first.triangles, firstMatrix, second.triangles, secondMatrix); d < *best {
			*best = d
		}
		return nil
	}

	for _, pair := range childPairs(first, second, firstLeaf, secondLeaf) {
		if err := ct.distance(pair[0], firstMatrix, pair[1], secondMatrix, depth+1, best); err != nil {
			return err
		}
	}
	return nil
}

// childPairs enumerates the recursion cases: a leaf is paired against both
// children of the other node, two internal nodes against all four child
// combinations.
func childPairs(first, second *Node, firstLeaf, secondLeaf bool) [][2]*Node {
	switch {
	case firstLeaf:
		return [][2]*Node{{first, second.left}, {first, second.right}}
	case secondLeaf:
		return [][2]*Node{{first.left, second}, {first.right, second}}
	default:
		return [][2]*Node{
			{first.left, second.left},
			{first.left, second.right},
			{first.right, second.left},
			{first.right, second.right},
		}
	}
}

// leafCollidesWithLeaf reports whether any triangle pair across two leaves
// comes within buffer, along with the smallest pair distance seen.
func leafCollidesWithLeaf(
	first []*spatialmath.Triangle, firstMatrix mgl64.Mat4,
	second []*spatialmath.Triangle, secondMatrix mgl64.Mat4,
	buffer float64,
) (bool, float64) {
	best := math.Inf(1)
	for _, t1 := range first {
		for _, t2 := range second {
			d := spatialmath.TriangleTriangleDistance(t1, firstMatrix, t2, secondMatrix)
			if d <= buffer {
				return true, d
			}
			best = math.Min(best, d)
		}
	}
	return false, best
}

// leafDistanceFromLeaf returns the minimum distance across all triangle
// pairs of two leaves.
func leafDistanceFromLeaf(
	first []*spatialmath.Triangle, firstMatrix mgl64.Mat4,
	second []*spatialmath.Triangle, secondMatrix mgl64.Mat4,
) float64 {
	best := math.Inf(1)
	for _, t1 := range first {
		for _, t2 := range second {
			best = math.Min(best, spatialmath.TriangleTriangleDistance(t1, firstMatrix, t2, secondMatrix))
		}
	}
	return best
}

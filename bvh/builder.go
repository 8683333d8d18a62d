package bvh

import (
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"go.viam.com/collision/spatialmath"
	"go.viam.com/collision/utils"
)

const (
	axisX = iota
	axisY
	axisZ
)

type buildStats struct {
	nodes    int
	leaves   int
	maxDepth int
}

// Builder constructs BVH trees by recursive spatial subdivision. A Builder
// may be reused across builds but is not safe for concurrent use.
type Builder struct {
	logger golog.Logger
	stats  buildStats
}

// NewBuilder returns a Builder that logs build statistics to the given
// logger. A nil logger disables logging.
func NewBuilder(logger golog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Construct builds a BVH over the given triangles. maxDepth bounds how deep
// subdivision may recurse and minTrianglesForSplit is the smallest triangle
// count for which a partition is allowed to keep subdividing; a partition
// below it is still boxed once more but then terminates as a leaf.
// The triangles are referenced, never copied or mutated.
func Construct(triangles []*spatialmath.Triangle, maxDepth, minTrianglesForSplit int) (*Node, error) {
	return NewBuilder(nil).Construct(triangles, maxDepth, minTrianglesForSplit)
}

// Construct builds a BVH over the given triangles. See the package-level
// Construct for parameter semantics.
func (b *Builder) Construct(triangles []*spatialmath.Triangle, maxDepth, minTrianglesForSplit int) (*Node, error) {
	if len(triangles) == 0 {
		return nil, ErrNoTriangles
	}
	b.stats = buildStats{}

	start := time.Now()
	root := b.construct(triangles, 0, maxDepth, minTrianglesForSplit)
	if b.logger != nil {
		b.logger.Debugf(
			"BVH build time: %s, triangles: %d, nodes: %d, leaves: %d, max depth: %d",
			time.Since(start), len(triangles), b.stats.nodes, b.stats.leaves, b.stats.maxDepth,
		)
	}
	return root, nil
}

// construct recursively subdivides a non-empty triangle list. depth is the
// node's absolute distance from the root while maxDepth is the remaining
// budget, decremented along the path.
func (b *Builder) construct(triangles []*spatialmath.Triangle, depth, maxDepth, minTrianglesForSplit int) *Node {
	// The triangle list is non-empty on every path here, so the AABB is
	// always defined.
	min, max, _ := spatialmath.TrianglesAABB(triangles)

	node := &Node{
		min:       min,
		max:       max,
		triangles: triangles,
		depth:     depth,
	}
	b.stats.nodes++
	b.stats.maxDepth = utils.MaxInt(b.stats.maxDepth, depth)

	axis, splitCoord := splitAxis(min, max)

	var leftTriangles, rightTriangles []*spatialmath.Triangle
	for _, tri := range triangles {
		if partitionLeft(tri, axis, splitCoord) {
			leftTriangles = append(leftTriangles, tri)
		} else {
			rightTriangles = append(rightTriangles, tri)
		}
	}

	// Children are created only when the split actually separated the
	// triangles and this node still has depth budget.
	if len(leftTriangles) > 0 && len(rightTriangles) > 0 && depth <= maxDepth {
		node.left = b.construct(leftTriangles, depth+1, childDepthBudget(len(leftTriangles), maxDepth, minTrianglesForSplit), minTrianglesForSplit)
		node.right = b.construct(rightTriangles, depth+1, childDepthBudget(len(rightTriangles), maxDepth, minTrianglesForSplit), minTrianglesForSplit)
	} else {
		b.stats.leaves++
	}
	return node
}

// childDepthBudget returns the depth budget passed to a child. A partition
// with too few triangles gets a budget of zero: it is boxed one more time
// but its depth check then fails, so the branch terminates as a leaf.
func childDepthBudget(count, maxDepth, minTrianglesForSplit int) int {
	if count >= minTrianglesForSplit {
		return maxDepth - 1
	}
	return 0
}

// splitAxis picks the axis with the largest AABB extent, ties preferring X
// over Y over Z, and returns it with the midpoint split coordinate.
func splitAxis(min, max r3.Vector) (int, float64) {
	xLength := max.X - min.X
	yLength := max.Y - min.Y
	zLength := max.Z - min.Z

	switch {
	case xLength >= yLength && xLength >= zLength:
		return axisX, (min.X + max.X) / 2
	case yLength >= zLength:
		return axisY, (min.Y + max.Y) / 2
	default:
		return axisZ, (min.Z + max.Z) / 2
	}
}

func axisCoord(v r3.Vector, axis int) float64 {
	switch axis {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	default:
		return v.Z
	}
}

// partitionLeft decides which side of the split plane a triangle belongs
// to. Triangles fully on one side go there; a straddling triangle goes to
// whichever side holds more of its projected extent, ties to the left. No
// triangle is clipped.
func partitionLeft(tri *spatialmath.Triangle, axis int, splitCoord float64) bool {
	pts := tri.Points()
	c0 := axisCoord(pts[0], axis)
	c1 := axisCoord(pts[1], axis)
	c2 := axisCoord(pts[2], axis)

	if c0 <= splitCoord && c1 <= splitCoord && c2 <= splitCoord {
		return true
	}
	if c0 > splitCoord && c1 > splitCoord && c2 > splitCoord {
		return false
	}

	minV := math.Min(c0, math.Min(c1, c2))
	maxV := math.Max(c0, math.Max(c1, c2))
	return splitCoord-minV >= maxV-splitCoord
}

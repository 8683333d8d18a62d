// Package bvh builds binary bounding volume hierarchies over triangle sets
// and tests two hierarchies, each under its own model matrix, for collision
// down to individual triangle pairs.
package bvh

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collision/spatialmath"
)

// Node is one axis-aligned bounding box in a BVH. Every node stores the full
// list of triangles it bounds; the list is authoritative for narrow-phase
// testing only at leaves. Children are owned by their parent and a tree is
// immutable after construction except for the collision flags.
type Node struct {
	min r3.Vector
	max r3.Vector

	triangles []*spatialmath.Triangle

	left  *Node
	right *Node
	depth int

	collision bool
}

// Min returns the minimum corner point of the node's AABB in mesh-local space.
func (n *Node) Min() r3.Vector {
	return n.min
}

// Max returns the maximum corner point of the node's AABB in mesh-local space.
func (n *Node) Max() r3.Vector {
	return n.max
}

// Triangles returns the triangles bounded by this node. The slice is shared
// with the caller that built the tree; triangles are never copied.
func (n *Node) Triangles() []*spatialmath.Triangle {
	return n.triangles
}

// Left returns the node's left child, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the node's right child, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Depth returns the node's distance from the root, fixed at construction.
func (n *Node) Depth() int {
	return n.depth
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// Colliding reports whether a collision test found this node's AABB
// overlapping an AABB of the other hierarchy.
func (n *Node) Colliding() bool {
	return n.collision
}

// leaf classifies the node as leaf or internal, failing on the malformed
// single-child state.
func (n *Node) leaf() (bool, error) {
	if n.left == nil && n.right == nil {
		return true, nil
	}
	if n.left != nil && n.right != nil {
		return false, nil
	}
	return false, ErrMalformedTree
}

// ResetCollisions clears the collision flags on every node of the subtree
// and on every triangle it bounds. Callers do this between collision tests;
// the tester itself only ever sets flags.
func (n *Node) ResetCollisions() {
	if n == nil {
		return
	}
	n.collision = false
	for _, tri := range n.triangles {
		tri.ResetCollision()
	}
	n.left.ResetCollisions()
	n.right.ResetCollisions()
}

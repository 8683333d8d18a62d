package bvh

import "github.com/pkg/errors"

var (
	// ErrNoTriangles is returned when a BVH build is attempted over an empty
	// triangle list.
	ErrNoTriangles = errors.New("cannot construct a BVH from an empty triangle list")

	// ErrMalformedTree is returned when a node has exactly one child. A valid
	// node has either two children or none, so traversal fails fast rather
	// than misclassify the node as a leaf.
	ErrMalformedTree = errors.New("malformed BVH node: exactly one child present")

	// ErrRecursionDepth is returned when a traversal exceeds the recursion
	// limit, which guards the native stack against adversarial trees.
	ErrRecursionDepth = errors.New("BVH recursion depth limit exceeded")
)

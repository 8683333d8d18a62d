package spatialmath

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collision/utils"
)

// ClosestPointSegmentPoint takes a line segment defined by pt1 and pt2, and returns the closest point
// on that segment to the provided point.
func ClosestPointSegmentPoint(pt1, pt2, point r3.Vector) r3.Vector {
	ab := pt2.Sub(pt1)
	denom := ab.Norm2()
	if denom < floatEpsilon*floatEpsilon {
		return pt1
	}
	t := utils.Clamp(point.Sub(pt1).Dot(ab)/denom, 0, 1)
	return pt1.Add(ab.Mul(t))
}

// ClosestPointsSegmentSegment computes the closest points between segment [ap1, ap2] and
// segment [bp1, bp2]. The point on the first segment is returned first.
// Reference: Ericson, "Real-Time Collision Detection", Ch. 5.1.9.
func ClosestPointsSegmentSegment(ap1, ap2, bp1, bp2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := ap2.Sub(ap1)
	d2 := bp2.Sub(bp1)
	r := ap1.Sub(bp1)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	// Both segments degenerate to points.
	if a < floatEpsilon*floatEpsilon && e < floatEpsilon*floatEpsilon {
		return ap1, bp1
	}

	var s, t float64
	switch {
	case a < floatEpsilon*floatEpsilon:
		// First segment degenerates to a point.
		s = 0
		t = utils.Clamp(f/e, 0, 1)
	case e < floatEpsilon*floatEpsilon:
		// Second segment degenerates to a point.
		t = 0
		s = utils.Clamp(-d1.Dot(r)/a, 0, 1)
	default:
		c := d1.Dot(r)
		b := d1.Dot(d2)
		denom := a*e - b*b

		// If segments are not parallel, compute the closest point on the infinite
		// line of the first segment to the second, clamped to the segment.
		if denom > floatEpsilon {
			s = utils.Clamp((b*f-c*e)/denom, 0, 1)
		} else {
			s = 0
		}

		t = (b*s + f) / e

		// If t lands outside [0,1], clamp it and recompute s for the clamped t.
		if t < 0 {
			t = 0
			s = utils.Clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = utils.Clamp((b-c)/a, 0, 1)
		}
	}

	return ap1.Add(d1.Mul(s)), bp1.Add(d2.Mul(t))
}

// SegmentDistanceToSegment returns the shortest distance between segment [ap1, ap2] and
// segment [bp1, bp2].
func SegmentDistanceToSegment(ap1, ap2, bp1, bp2 r3.Vector) float64 {
	best1, best2 := ClosestPointsSegmentSegment(ap1, ap2, bp1, bp2)
	return best1.Sub(best2).Norm()
}

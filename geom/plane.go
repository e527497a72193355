package geom

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the thickness of a plane: points whose signed distance lies
// within it classify as On. It absorbs the error accumulated by repeated
// clipping.
const Epsilon = 1e-3

// DegenerateEpsilon is the smallest cross product magnitude accepted when
// deriving a normal from three points.
const DegenerateEpsilon = 1e-8

// CoincidentEpsilon is the distance under which two vertices are the same
// point. It must stay well below Epsilon: a vertex within Epsilon of a plane
// and a point computed on it are still distinct.
const CoincidentEpsilon = 1e-6

// NormalEpsilon is the per-axis difference under which two unit normals point
// the same way.
const NormalEpsilon = 1e-6

// ParallelEpsilon is the smallest |n.d| for which a segment of direction d is
// not treated as parallel to a plane of normal n.
const ParallelEpsilon = 1e-12

var ErrDegeneratePlane = errors.New("degenerate plane")

// Side is the position of a point relative to a plane.
type Side int

const (
	On Side = iota
	Front
	Back
)

func (s Side) String() string {
	switch s {
	case Front:
		return "front"
	case Back:
		return "back"
	default:
		return "on"
	}
}

// Plane is an oriented boundary. A point p lies on it when
// Normal.Dot(p) == Distance; the half-space Normal.Dot(p) <= Distance is
// behind it.
type Plane struct {
	Normal   Vector // unit length
	Distance float64
}

// PlaneFromPoints builds the plane through a, b and c, with its normal given
// by the right-hand rule on (b-a, c-a).
func PlaneFromPoints(a, b, c Point) (Plane, error) {
	if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
		return Plane{}, fmt.Errorf("%w: non-finite point in %v %v %v", ErrDegeneratePlane, a, b, c)
	}

	normal := b.Sub(a).Cross(c.Sub(a))
	length := normal.Len()
	if length < DegenerateEpsilon {
		return Plane{}, fmt.Errorf("%w: collinear points %v %v %v", ErrDegeneratePlane, a, b, c)
	}
	normal = normal.Mul(1.0 / length)

	return Plane{Normal: normal, Distance: normal.Dot(a.Vector())}, nil
}

// NewPlane builds a plane from a normal and an offset, normalizing both.
func NewPlane(normal Vector, distance float64) (Plane, error) {
	length := normal.Len()
	if length < DegenerateEpsilon || math.IsNaN(length) || math.IsInf(length, 0) ||
		math.IsNaN(distance) || math.IsInf(distance, 0) {
		return Plane{}, fmt.Errorf("%w: normal %v", ErrDegeneratePlane, normal)
	}

	return Plane{Normal: normal.Mul(1.0 / length), Distance: distance / length}, nil
}

// DistanceTo returns the signed distance of p from the plane, positive in
// front.
func (pl Plane) DistanceTo(p Point) float64 {
	return pl.Normal.Dot(p.Vector()) - pl.Distance
}

// Classify places p relative to the plane using Epsilon.
func (pl Plane) Classify(p Point) Side {
	return pl.ClassifyWithin(p, Epsilon)
}

// ClassifyWithin places p relative to the plane with an explicit tolerance.
func (pl Plane) ClassifyWithin(p Point, eps float64) Side {
	d := pl.DistanceTo(p)
	switch {
	case d > eps:
		return Front
	case d < -eps:
		return Back
	default:
		return On
	}
}

// Flip returns the same boundary facing the other way.
func (pl Plane) Flip() Plane {
	return Plane{Normal: pl.Normal.Mul(-1), Distance: -pl.Distance}
}

// Project returns the point of the plane closest to p.
func (pl Plane) Project(p Point) Point {
	return p.Add(pl.Normal.Mul(-pl.DistanceTo(p)))
}

// Equal reports whether both planes share orientation and offset within eps.
func (pl Plane) Equal(o Plane, eps float64) bool {
	return pl.Normal.ApproxEqual(o.Normal, eps) && math.Abs(pl.Distance-o.Distance) <= eps
}

// Coincides reports whether o is the same oriented plane: normals within
// NormalEpsilon and offsets within Epsilon.
func (pl Plane) Coincides(o Plane) bool {
	return pl.Normal.ApproxEqual(o.Normal, NormalEpsilon) && math.Abs(pl.Distance-o.Distance) <= Epsilon
}

// TangentBasis returns two unit vectors u and v spanning the plane, with
// u.Cross(v) equal to the plane normal.
func (pl Plane) TangentBasis() (Vector, Vector) {
	n := pl.Normal
	u := Vector{1, 0, 0}
	if math.Abs(n.X()) > 0.9 {
		u = Vector{0, 1, 0}
	}

	u = u.Sub(n.Mul(u.Dot(n))).Normalize()
	v := n.Cross(u).Normalize()

	return u, v
}

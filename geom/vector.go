// Package geom holds the value types the compiler is built on: points,
// vectors, planes and convex polygons (windings).
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point is a position in 3D space.
type Point mgl64.Vec3

// Vector is a direction or displacement in 3D space. It is kept distinct from
// Point so that affine and linear operations cannot be mixed by accident.
type Vector mgl64.Vec3

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }
func (p Point) Z() float64 { return p[2] }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector(mgl64.Vec3(p).Sub(mgl64.Vec3(q)))
}

// Add translates p by v.
func (p Point) Add(v Vector) Point {
	return Point(mgl64.Vec3(p).Add(mgl64.Vec3(v)))
}

// Lerp returns p + t*(q-p).
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

// ApproxEqual reports whether p and q are within tolerance on every axis.
func (p Point) ApproxEqual(q Point, tolerance float64) bool {
	return math.Abs(p[0]-q[0]) <= tolerance &&
		math.Abs(p[1]-q[1]) <= tolerance &&
		math.Abs(p[2]-q[2]) <= tolerance
}

// Coincident reports whether p and q are closer than CoincidentEpsilon.
func (p Point) Coincident(q Point) bool {
	return p.Sub(q).Len() <= CoincidentEpsilon
}

// IsFinite reports whether no coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Vector returns the position vector of p, relative to the origin.
func (p Point) Vector() Vector {
	return Vector(p)
}

func (v Vector) X() float64 { return v[0] }
func (v Vector) Y() float64 { return v[1] }
func (v Vector) Z() float64 { return v[2] }

func (v Vector) Add(w Vector) Vector {
	return Vector(mgl64.Vec3(v).Add(mgl64.Vec3(w)))
}

func (v Vector) Sub(w Vector) Vector {
	return Vector(mgl64.Vec3(v).Sub(mgl64.Vec3(w)))
}

// Mul scales v by s.
func (v Vector) Mul(s float64) Vector {
	return Vector(mgl64.Vec3(v).Mul(s))
}

func (v Vector) Dot(w Vector) float64 {
	return mgl64.Vec3(v).Dot(mgl64.Vec3(w))
}

func (v Vector) Cross(w Vector) Vector {
	return Vector(mgl64.Vec3(v).Cross(mgl64.Vec3(w)))
}

func (v Vector) Len() float64 {
	return mgl64.Vec3(v).Len()
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged; callers that need a direction must check Len first.
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1.0 / l)
}

// ApproxEqual reports whether v and w are within tolerance on every axis.
func (v Vector) ApproxEqual(w Vector, tolerance float64) bool {
	return Point(v).ApproxEqual(Point(w), tolerance)
}

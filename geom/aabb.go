package geom

import "math"

// AABB is an axis-aligned box. The zero value is the single point at the
// origin; use EmptyAABB for a box holding nothing.
type AABB struct {
	Min Point
	Max Point
}

// EmptyAABB returns an inverted box that any Extend call replaces.
func EmptyAABB() AABB {
	return AABB{
		Min: Point{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// BoundsOf returns the smallest box holding every point.
func BoundsOf(points ...Point) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// IsEmpty reports whether the box holds no point.
func (a AABB) IsEmpty() bool {
	return a.Min.X() > a.Max.X() || a.Min.Y() > a.Max.Y() || a.Min.Z() > a.Max.Z()
}

// Extend grows the box to contain point.
func (a AABB) Extend(point Point) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], point[i])
		a.Max[i] = math.Max(a.Max[i], point[i])
	}
	return a
}

// Union returns the box holding both a and other.
func (a AABB) Union(other AABB) AABB {
	if other.IsEmpty() {
		return a
	}
	return a.Extend(other.Min).Extend(other.Max)
}

// ContainsPoint reports whether point lies in the box, boundary included.
func (a AABB) ContainsPoint(point Point) bool {
	for i := range 3 {
		if point[i] < a.Min[i] || point[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether the boxes share a point. Touching boxes overlap;
// an empty box overlaps nothing.
func (a AABB) Overlaps(other AABB) bool {
	for i := range 3 {
		if a.Max[i] < other.Min[i] || other.Max[i] < a.Min[i] {
			return false
		}
	}
	return true
}

// Size returns the extent of the box along each axis.
func (a AABB) Size() Vector {
	if a.IsEmpty() {
		return Vector{}
	}
	return a.Max.Sub(a.Min)
}

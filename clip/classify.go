// Package clip classifies convex polygons against planes and splits them.
package clip

import "github.com/akmonengine/brushbsp/geom"

// Classification is the position of a whole polygon relative to a plane.
type Classification int

const (
	AllFront Classification = iota
	AllBack
	Spanning
	Coplanar
)

func (c Classification) String() string {
	switch c {
	case AllFront:
		return "front"
	case AllBack:
		return "back"
	case Spanning:
		return "spanning"
	default:
		return "coplanar"
	}
}

// ClassifyVertices classifies every vertex of poly against plane and returns
// the per-vertex sides with their unresolved aggregate.
func ClassifyVertices(poly *geom.Polygon, plane geom.Plane) ([]geom.Side, Classification) {
	sides := make([]geom.Side, poly.Len())
	front, back := 0, 0

	for i := range sides {
		sides[i] = plane.Classify(poly.Vertex(i))
		switch sides[i] {
		case geom.Front:
			front++
		case geom.Back:
			back++
		}
	}

	switch {
	case front > 0 && back > 0:
		return sides, Spanning
	case front > 0:
		return sides, AllFront
	case back > 0:
		return sides, AllBack
	default:
		return sides, Coplanar
	}
}

// ClassifyPolygon classifies poly against plane. Coplanar polygons are
// resolved by orientation: a polygon facing the same way as the plane is
// AllFront, one facing away is AllBack. The result is never Coplanar.
func ClassifyPolygon(poly *geom.Polygon, plane geom.Plane) Classification {
	_, c := ClassifyVertices(poly, plane)
	return c.Resolve(poly, plane)
}

// Resolve turns Coplanar into AllFront or AllBack by comparing the polygon's
// winding normal with the plane normal. Other values are returned unchanged.
func (c Classification) Resolve(poly *geom.Polygon, plane geom.Plane) Classification {
	if c != Coplanar {
		return c
	}
	if poly.Normal().Dot(plane.Normal) >= 0 {
		return AllFront
	}
	return AllBack
}

package geom

import (
	"errors"
	"fmt"
	"iter"
)

// AreaEpsilon is the smallest area a polygon may have.
const AreaEpsilon = 1e-6

var ErrInvalidPolygon = errors.New("invalid polygon")

// Polygon is a closed convex loop of coplanar points. The vertex order gives
// the outward normal by the right-hand rule. A Polygon owns its vertex slice;
// nothing else refers to it.
type Polygon struct {
	vertices []Point
}

// NewPolygon validates and copies vertices into a new Polygon.
func NewPolygon(vertices []Point) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrInvalidPolygon, len(vertices))
	}

	for i, v := range vertices {
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %d is not finite", ErrInvalidPolygon, i)
		}
		next := vertices[(i+1)%len(vertices)]
		if v.Coincident(next) {
			return nil, fmt.Errorf("%w: vertices %d and %d coincide", ErrInvalidPolygon, i, (i+1)%len(vertices))
		}
	}

	p := &Polygon{vertices: append([]Point(nil), vertices...)}

	area := p.Area()
	if area < AreaEpsilon {
		return nil, fmt.Errorf("%w: area %g", ErrInvalidPolygon, area)
	}

	plane := p.Plane()
	for i, v := range p.vertices {
		if plane.Classify(v) != On {
			return nil, fmt.Errorf("%w: vertex %d is %g off the polygon plane", ErrInvalidPolygon, i, plane.DistanceTo(v))
		}
	}

	return p, nil
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.vertices)
}

// Vertex returns the i-th vertex, wrapping around the loop.
func (p *Polygon) Vertex(i int) Point {
	n := len(p.vertices)
	return p.vertices[((i%n)+n)%n]
}

// Vertices returns a copy of the vertex loop.
func (p *Polygon) Vertices() []Point {
	return append([]Point(nil), p.vertices...)
}

// Edges yields every edge (v[i], v[i+1 mod n]) of the loop once, in order.
// The sequence can be ranged over any number of times.
func (p *Polygon) Edges() iter.Seq2[Point, Point] {
	return func(yield func(Point, Point) bool) {
		n := len(p.vertices)
		for i := 0; i < n; i++ {
			if !yield(p.vertices[i], p.vertices[(i+1)%n]) {
				return
			}
		}
	}
}

// areaVector is Newell's normal: its direction is the winding normal and its
// length twice the area.
func (p *Polygon) areaVector() Vector {
	var sum Vector
	origin := p.vertices[0]
	for i := 1; i+1 < len(p.vertices); i++ {
		a := p.vertices[i].Sub(origin)
		b := p.vertices[i+1].Sub(origin)
		sum = sum.Add(a.Cross(b))
	}
	return sum
}

// Area returns the surface area of the polygon.
func (p *Polygon) Area() float64 {
	return p.areaVector().Len() / 2
}

// Normal returns the unit normal given by the vertex order.
func (p *Polygon) Normal() Vector {
	return p.areaVector().Normalize()
}

// Centroid returns the average of the vertices.
func (p *Polygon) Centroid() Point {
	var sum Vector
	for _, v := range p.vertices {
		sum = sum.Add(v.Vector())
	}
	return Point(sum.Mul(1.0 / float64(len(p.vertices))))
}

// Plane returns the plane the polygon lies in, facing along Normal.
func (p *Polygon) Plane() Plane {
	n := p.Normal()
	return Plane{Normal: n, Distance: n.Dot(p.Centroid().Vector())}
}

// Bounds returns the axis-aligned box enclosing the polygon.
func (p *Polygon) Bounds() AABB {
	return BoundsOf(p.vertices...)
}

// Reverse returns a new polygon with the opposite winding.
func (p *Polygon) Reverse() *Polygon {
	n := len(p.vertices)
	out := make([]Point, n)
	for i, v := range p.vertices {
		out[n-1-i] = v
	}
	return &Polygon{vertices: out}
}

// IsConvex reports whether every corner turns the same way as the normal.
func (p *Polygon) IsConvex() bool {
	n := p.Normal()
	count := len(p.vertices)
	for i := 0; i < count; i++ {
		a := p.Vertex(i)
		b := p.Vertex(i + 1)
		c := p.Vertex(i + 2)
		if b.Sub(a).Cross(c.Sub(b)).Dot(n) < -AreaEpsilon {
			return false
		}
	}
	return true
}

func (p *Polygon) String() string {
	return fmt.Sprintf("Polygon%v", p.vertices)
}

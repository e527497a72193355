// Package brush turns convex brushes, given as ordered plane lists, into the
// polygons bounding them.
package brush

import (
	"github.com/akmonengine/brushbsp/geom"
	"github.com/akmonengine/brushbsp/mapfile"
)

// Texture is the surface metadata of a brush side. The compiler does not
// interpret it; it travels with the side's winding.
type Texture struct {
	Name     string
	OffsetX  float64
	OffsetY  float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// Side is one bounding plane of a brush, given by three points on it.
type Side struct {
	Points  [3]geom.Point
	Texture Texture
}

// Plane derives the side's plane. The interior of the brush lies behind it.
func (s Side) Plane() (geom.Plane, error) {
	return geom.PlaneFromPoints(s.Points[0], s.Points[1], s.Points[2])
}

// Brush is a convex solid: the intersection of the back half-spaces of its
// sides.
type Brush struct {
	Sides []Side
}

// FromDef converts a parsed brush.
func FromDef(def mapfile.BrushDef) Brush {
	b := Brush{Sides: make([]Side, len(def.Planes))}
	for i, p := range def.Planes {
		b.Sides[i] = Side{
			Points: p.Points,
			Texture: Texture{
				Name:     p.Texture,
				OffsetX:  p.OffsetX,
				OffsetY:  p.OffsetY,
				Rotation: p.Rotation,
				ScaleX:   p.ScaleX,
				ScaleY:   p.ScaleY,
			},
		}
	}
	return b
}

// FromPlanes builds a brush from planes directly, picking three points on
// each. Texture names are left empty.
func FromPlanes(planes ...geom.Plane) Brush {
	b := Brush{Sides: make([]Side, len(planes))}
	for i, pl := range planes {
		u, v := pl.TangentBasis()
		origin := pl.Project(geom.Point{})
		b.Sides[i] = Side{
			Points: [3]geom.Point{origin, origin.Add(u), origin.Add(v)},
		}
	}
	return b
}

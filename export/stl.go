// Package export writes compiled windings out as triangle meshes for
// inspection in external viewers.
package export

import (
	"fmt"

	"github.com/akmonengine/brushbsp/geom"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func toVec(p geom.Point) v3.Vec {
	return v3.Vec{X: p.X(), Y: p.Y(), Z: p.Z()}
}

// Triangles fans every polygon from its first vertex. The triangles keep the
// polygon winding, so their normals match the polygon normal.
func Triangles(polys []*geom.Polygon) []*sdf.Triangle3 {
	count := 0
	for _, p := range polys {
		count += p.Len() - 2
	}

	triangles := make([]*sdf.Triangle3, 0, count)
	for _, p := range polys {
		origin := toVec(p.Vertex(0))
		for i := 1; i+1 < p.Len(); i++ {
			triangles = append(triangles, &sdf.Triangle3{origin, toVec(p.Vertex(i)), toVec(p.Vertex(i + 1))})
		}
	}
	return triangles
}

// WriteSTL writes polys to path as a binary STL file.
func WriteSTL(path string, polys []*geom.Polygon) error {
	if len(polys) == 0 {
		return fmt.Errorf("write %s: no polygons", path)
	}
	if err := render.SaveSTL(path, Triangles(polys)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

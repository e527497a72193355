package brush

import (
	"errors"
	"fmt"

	"github.com/akmonengine/brushbsp/clip"
	"github.com/akmonengine/brushbsp/geom"
)

// DefaultExtent is the half-size of the base winding. It must exceed any
// coordinate of real geometry while keeping interpolation far from overflow.
const DefaultExtent = 1e5

// ErrEmptyFace reports a side that bounds nothing: another side of the brush
// cuts it away entirely. Brushes routinely carry such redundant planes.
var ErrEmptyFace = errors.New("empty face")

// BaseWinding returns a square of half-size extent lying on plane, centered
// on the point of the plane closest to the origin. Its vertex order gives
// the plane normal.
func BaseWinding(plane geom.Plane, extent float64) (*geom.Polygon, error) {
	u, v := plane.TangentBasis()
	center := plane.Project(geom.Point{})
	u = u.Mul(extent)
	v = v.Mul(extent)

	// Counter-clockwise in (u, v); u x v is the plane normal.
	return geom.NewPolygon([]geom.Point{
		center.Add(u.Mul(-1)).Add(v.Mul(-1)),
		center.Add(u).Add(v.Mul(-1)),
		center.Add(u).Add(v),
		center.Add(u.Mul(-1)).Add(v),
	})
}

// Face is the outcome for one side of a brush.
type Face struct {
	Index   int
	Side    Side
	Plane   geom.Plane
	Winding *geom.Polygon // nil when the side produces no face
	Err     error         // why Winding is nil
}

// Builder computes brush windings.
type Builder struct {
	// Extent is the half-size of the base winding; zero means DefaultExtent.
	Extent float64
}

func (b Builder) extent() float64 {
	if b.Extent <= 0 {
		return DefaultExtent
	}
	return b.Extent
}

// Faces returns one Face per side of br, in side order.
func (b Builder) Faces(br Brush) []Face {
	faces := make([]Face, len(br.Sides))
	planes := make([]geom.Plane, len(br.Sides))
	valid := make([]bool, len(br.Sides))

	for i, side := range br.Sides {
		faces[i] = Face{Index: i, Side: side}
		pl, err := side.Plane()
		if err != nil {
			faces[i].Err = fmt.Errorf("side %d: %w", i, err)
			continue
		}
		planes[i], valid[i] = pl, true
		faces[i].Plane = pl
	}

	for i := range faces {
		if !valid[i] {
			continue
		}
		faces[i].Winding, faces[i].Err = b.winding(i, planes, valid)
	}
	return faces
}

// Windings returns the produced windings keyed by side index. Sides without
// a face are absent.
func (b Builder) Windings(br Brush) map[int]*geom.Polygon {
	out := make(map[int]*geom.Polygon)
	for _, f := range b.Faces(br) {
		if f.Winding != nil {
			out[f.Index] = f.Winding
		}
	}
	return out
}

// winding clips the base winding of planes[target] by every other valid
// plane in declared order, keeping what lies behind each.
func (b Builder) winding(target int, planes []geom.Plane, valid []bool) (*geom.Polygon, error) {
	plane := planes[target]
	w, err := BaseWinding(plane, b.extent())
	if err != nil {
		return nil, fmt.Errorf("side %d: base winding: %w", target, err)
	}

	for j, other := range planes {
		if j == target || !valid[j] {
			continue
		}

		if other.Coincides(plane) {
			// The first declared copy of a plane owns the face.
			if j < target {
				return nil, fmt.Errorf("%w: side %d duplicates side %d", ErrEmptyFace, target, j)
			}
			continue
		}

		switch clip.ClassifyPolygon(w, other) {
		case clip.AllBack:
			continue
		case clip.AllFront:
			return nil, fmt.Errorf("%w: side %d is in front of side %d", ErrEmptyFace, target, j)
		}

		back, err := clip.ClipBack(w, other)
		if err != nil {
			return nil, fmt.Errorf("%w: side %d clipped away by side %d: %w", ErrEmptyFace, target, j, err)
		}
		if back == nil {
			return nil, fmt.Errorf("%w: side %d is in front of side %d", ErrEmptyFace, target, j)
		}
		w = back
	}

	return w, nil
}

// Bounds returns the box enclosing every winding in faces.
func Bounds(faces []Face) geom.AABB {
	box := geom.EmptyAABB()
	for _, f := range faces {
		if f.Winding != nil {
			box = box.Union(f.Winding.Bounds())
		}
	}
	return box
}

package clip

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/brushbsp/geom"
)

// ErrDegenerateFragment reports a split fragment that collapsed below three
// vertices or below geom.AreaEpsilon and was dropped. It is not fatal.
var ErrDegenerateFragment = errors.New("degenerate fragment")

// Split cuts poly along plane and returns the parts in front of and behind
// it.
//
// A polygon entirely on one side is returned as is, in the matching slot,
// with the other slot nil. Coplanar polygons go to the side their normal
// faces. A spanning polygon yields two new polygons sharing the cut edge;
// both keep the vertex order, and so the normal, of poly. Vertices lying on
// the plane go to both parts.
//
// When a part degenerates it is dropped and err wraps ErrDegenerateFragment;
// the other part is still returned.
func Split(poly *geom.Polygon, plane geom.Plane) (front, back *geom.Polygon, err error) {
	sides, class := ClassifyVertices(poly, plane)

	switch class.Resolve(poly, plane) {
	case AllFront:
		return poly, nil, nil
	case AllBack:
		return nil, poly, nil
	}

	n := poly.Len()
	frontPts := make([]geom.Point, 0, n+1)
	backPts := make([]geom.Point, 0, n+1)

	i := 0
	for current, next := range poly.Edges() {
		currentSide, nextSide := sides[i], sides[(i+1)%n]
		i++

		if currentSide != geom.Back {
			frontPts = append(frontPts, current)
		}
		if currentSide != geom.Front {
			backPts = append(backPts, current)
		}

		if crosses(currentSide, nextSide) {
			intersection := intersect(current, next, plane)
			frontPts = append(frontPts, intersection)
			backPts = append(backPts, intersection)
		}
	}

	var frontErr, backErr error
	front, frontErr = fragment(frontPts)
	back, backErr = fragment(backPts)
	if frontErr != nil {
		err = fmt.Errorf("front: %w", frontErr)
	}
	if backErr != nil {
		err = errors.Join(err, fmt.Errorf("back: %w", backErr))
	}

	return front, back, err
}

// ClipBack keeps the part of poly behind plane. It returns nil when nothing
// remains; err wraps ErrDegenerateFragment when the back part collapsed.
func ClipBack(poly *geom.Polygon, plane geom.Plane) (*geom.Polygon, error) {
	_, back, err := Split(poly, plane)
	if back != nil {
		return back, nil
	}
	return nil, err
}

func crosses(a, b geom.Side) bool {
	return (a == geom.Front && b == geom.Back) || (a == geom.Back && b == geom.Front)
}

// intersect returns the point where segment [a, b] meets plane. When rounding
// pushes the interpolated point off the plane it falls back to the nearer
// endpoint, which then classifies Front or Back rather than On.
func intersect(a, b geom.Point, plane geom.Plane) geom.Point {
	dir := b.Sub(a)
	denom := plane.Normal.Dot(dir)
	if math.Abs(denom) < geom.ParallelEpsilon {
		return a // Segment parallel to plane
	}

	t := (plane.Distance - plane.Normal.Dot(a.Vector())) / denom
	t = math.Max(0, math.Min(1, t)) // Clamp to segment

	p := a.Add(dir.Mul(t))
	if plane.Classify(p) == geom.On {
		return p
	}
	if t < 0.5 {
		return a
	}
	return b
}

// fragment collapses consecutive duplicates and builds the polygon, reporting
// ErrDegenerateFragment when what is left cannot form one.
func fragment(points []geom.Point) (*geom.Polygon, error) {
	out := points[:0]
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Coincident(p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Coincident(out[0]) {
		out = out[:len(out)-1]
	}

	if len(out) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerateFragment, len(out))
	}

	poly, err := geom.NewPolygon(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateFragment, err)
	}
	return poly, nil
}

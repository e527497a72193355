package brushbsp

import (
	"math"
	"testing"

	"github.com/akmonengine/brushbsp/brush"
	"github.com/akmonengine/brushbsp/geom"
)

// Helper functions for testing
func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func mustPlane(t *testing.T, normal geom.Vector, distance float64) geom.Plane {
	t.Helper()
	p, err := geom.NewPlane(normal, distance)
	if err != nil {
		t.Fatalf("NewPlane(%v, %v) error = %v", normal, distance, err)
	}
	return p
}

func square(t *testing.T, z, x0, x1 float64) *geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon([]geom.Point{{x0, 0, z}, {x1, 0, z}, {x1, 1, z}, {x0, 1, z}})
	if err != nil {
		t.Fatalf("NewPolygon() error = %v", err)
	}
	return p
}

// boxFaces builds the windings of an axis-aligned box as tree faces.
func boxFaces(t *testing.T, brushIndex int, min, max geom.Point) []*TreeFace {
	t.Helper()
	b := brush.FromPlanes(
		mustPlane(t, geom.Vector{1, 0, 0}, max.X()),
		mustPlane(t, geom.Vector{-1, 0, 0}, -min.X()),
		mustPlane(t, geom.Vector{0, 1, 0}, max.Y()),
		mustPlane(t, geom.Vector{0, -1, 0}, -min.Y()),
		mustPlane(t, geom.Vector{0, 0, 1}, max.Z()),
		mustPlane(t, geom.Vector{0, 0, -1}, -min.Z()),
	)

	var out []*TreeFace
	for _, f := range (brush.Builder{}).Faces(b) {
		if f.Winding == nil {
			t.Fatalf("box face %d error = %v", f.Index, f.Err)
		}
		out = append(out, &TreeFace{Polygon: f.Winding, Brush: brushIndex, Side: f.Index})
	}
	return out
}

func totalArea(faces []*TreeFace) float64 {
	sum := 0.0
	for _, f := range faces {
		sum += f.Polygon.Area()
	}
	return sum
}

func TestBuildTreeEmpty(t *testing.T) {
	root, stats := BuildTree(nil)
	if root != nil {
		t.Errorf("BuildTree(nil) = %v, want nil", root)
	}
	if stats != (TreeStats{}) {
		t.Errorf("stats = %+v", stats)
	}
	if root.Count() != 0 || root.Depth() != 0 || root.AllFaces() != nil {
		t.Error("nil tree reports content")
	}
	if !root.Walk(geom.Point{}, func(*TreeFace) bool { return true }) {
		t.Error("Walk() on a nil tree returned false")
	}
}

func TestBuildTreeConvexBrush(t *testing.T) {
	faces := boxFaces(t, 0, geom.Point{-0.5, -0.5, -0.5}, geom.Point{0.5, 0.5, 0.5})
	root, stats := BuildTree(faces)

	// Every face of a convex solid lies behind every other face.
	if stats.Splits != 0 || stats.Dropped != 0 {
		t.Errorf("stats = %+v, want no splits", stats)
	}
	if root.Count() != 6 || root.Depth() != 6 {
		t.Errorf("Count() = %d, Depth() = %d, want 6 and 6", root.Count(), root.Depth())
	}
	for n := root; n != nil; n = n.Back {
		if n.Front != nil {
			t.Errorf("node %v has a front child", n.Plane)
		}
	}
	if len(root.AllFaces()) != 6 {
		t.Errorf("AllFaces() returned %d faces", len(root.AllFaces()))
	}
}

func TestBuildTreeSplitsOverlappingBrushes(t *testing.T) {
	faces := append(
		boxFaces(t, 0, geom.Point{-0.5, -0.5, -0.5}, geom.Point{0.5, 0.5, 0.5}),
		boxFaces(t, 1, geom.Point{0, 0, 0}, geom.Point{1, 1, 1})...,
	)
	inputArea := totalArea(faces)

	root, stats := BuildTree(faces)
	if stats.Splits == 0 {
		t.Error("overlapping brushes produced no splits")
	}
	if stats.Dropped != 0 {
		t.Errorf("dropped %d fragments", stats.Dropped)
	}

	out := root.AllFaces()
	if len(out) != 12+stats.Splits {
		t.Errorf("tree holds %d faces, want %d", len(out), 12+stats.Splits)
	}
	if !floatEqual(totalArea(out), inputArea, 1e-9) {
		t.Errorf("tree area = %v, want %v", totalArea(out), inputArea)
	}

	for _, f := range out {
		source := faces[f.Brush*6+f.Side]
		if !f.Polygon.Normal().ApproxEqual(source.Polygon.Normal(), 1e-9) {
			t.Errorf("fragment of brush %d side %d changed orientation", f.Brush, f.Side)
		}
		if source.Polygon.Plane().Classify(f.Polygon.Centroid()) != geom.On {
			t.Errorf("fragment of brush %d side %d left its plane", f.Brush, f.Side)
		}
	}
}

func TestBuildTreeCoplanar(t *testing.T) {
	a := &TreeFace{Polygon: square(t, 0, 0, 1), Side: 0}
	same := &TreeFace{Polygon: square(t, 0, 2, 3), Side: 1}
	opposite := &TreeFace{Polygon: square(t, 0, 4, 5).Reverse(), Side: 2}

	root, _ := BuildTree([]*TreeFace{a, same, opposite})
	if root.Faces[0] != a {
		t.Fatal("first face is not the root splitter")
	}
	if root.Front == nil || root.Front.Faces[0] != same {
		t.Error("same-facing coplanar face is not in front")
	}
	if root.Back == nil || root.Back.Faces[0] != opposite {
		t.Error("opposite-facing coplanar face is not behind")
	}
}

func TestWalkOrder(t *testing.T) {
	near := &TreeFace{Polygon: square(t, 1, 0, 1), Side: 1}
	far := &TreeFace{Polygon: square(t, 0, 0, 1), Side: 0}
	root, _ := BuildTree([]*TreeFace{near, far})

	tests := []struct {
		name     string
		eye      geom.Point
		expected []int
	}{
		{"above", geom.Point{0.5, 0.5, 10}, []int{0, 1}},
		{"below", geom.Point{0.5, 0.5, -10}, []int{1, 0}},
		{"between", geom.Point{0.5, 0.5, 0.5}, []int{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var order []int
			root.Walk(tt.eye, func(f *TreeFace) bool {
				order = append(order, f.Side)
				return true
			})
			if len(order) != len(tt.expected) {
				t.Fatalf("Walk() visited %v, want %v", order, tt.expected)
			}
			for i := range order {
				if order[i] != tt.expected[i] {
					t.Errorf("Walk() visited %v, want %v", order, tt.expected)
					break
				}
			}
		})
	}
}

func TestWalkStops(t *testing.T) {
	faces := boxFaces(t, 0, geom.Point{0, 0, 0}, geom.Point{1, 1, 1})
	root, _ := BuildTree(faces)

	visited := 0
	complete := root.Walk(geom.Point{5, 5, 5}, func(*TreeFace) bool {
		visited++
		return visited < 3
	})
	if complete || visited != 3 {
		t.Errorf("Walk() = %v after %d visits, want false after 3", complete, visited)
	}
}

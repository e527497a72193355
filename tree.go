package brushbsp

import (
	"github.com/akmonengine/brushbsp/brush"
	"github.com/akmonengine/brushbsp/clip"
	"github.com/akmonengine/brushbsp/geom"
)

// TreeFace is a polygon placed in the tree with the metadata of the brush
// side it came from. Fragments keep the metadata of their parent.
type TreeFace struct {
	Polygon *geom.Polygon
	Texture brush.Texture
	Brush   int
	Side    int
}

func (f *TreeFace) fragment(p *geom.Polygon) *TreeFace {
	return &TreeFace{Polygon: p, Texture: f.Texture, Brush: f.Brush, Side: f.Side}
}

// Node is a BSP tree node. Faces holds the splitting face; Front and Back
// are nil at the leaves.
type Node struct {
	Plane geom.Plane
	Faces []*TreeFace
	Front *Node
	Back  *Node
}

// TreeStats counts the work done building a tree.
type TreeStats struct {
	Splits  int // spanning faces cut in two
	Dropped int // degenerate fragments discarded
}

// BuildTree partitions faces into a BSP tree, using the first remaining face
// of each set as its splitter. It returns nil for an empty set.
func BuildTree(faces []*TreeFace) (*Node, TreeStats) {
	var stats TreeStats
	return buildNode(faces, &stats), stats
}

func buildNode(faces []*TreeFace, stats *TreeStats) *Node {
	if len(faces) == 0 {
		return nil
	}

	splitter := faces[0]
	node := &Node{
		Plane: splitter.Polygon.Plane(),
		Faces: []*TreeFace{splitter},
	}

	var front, back []*TreeFace
	for _, f := range faces[1:] {
		switch clip.ClassifyPolygon(f.Polygon, node.Plane) {
		case clip.AllFront:
			front = append(front, f)
		case clip.AllBack:
			back = append(back, f)
		default:
			stats.Splits++
			// Split only fails with dropped fragments; the survivors are kept.
			frontPart, backPart, _ := clip.Split(f.Polygon, node.Plane)
			if frontPart != nil {
				front = append(front, f.fragment(frontPart))
			} else {
				stats.Dropped++
			}
			if backPart != nil {
				back = append(back, f.fragment(backPart))
			} else {
				stats.Dropped++
			}
		}
	}

	node.Front = buildNode(front, stats)
	node.Back = buildNode(back, stats)
	return node
}

// Walk visits every face from the farthest to the nearest as seen from eye,
// stopping early when fn returns false.
func (n *Node) Walk(eye geom.Point, fn func(*TreeFace) bool) bool {
	if n == nil {
		return true
	}

	far, near := n.Back, n.Front
	if n.Plane.Classify(eye) == geom.Back {
		far, near = n.Front, n.Back
	}

	if !far.Walk(eye, fn) {
		return false
	}
	for _, f := range n.Faces {
		if !fn(f) {
			return false
		}
	}
	return near.Walk(eye, fn)
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Front.Count() + n.Back.Count()
}

// Depth returns the length of the longest root to leaf path.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Front.Depth(), n.Back.Depth())
}

// AllFaces returns every face of the tree, node faces before their front
// then back subtrees.
func (n *Node) AllFaces() []*TreeFace {
	if n == nil {
		return nil
	}
	out := append([]*TreeFace(nil), n.Faces...)
	out = append(out, n.Front.AllFaces()...)
	return append(out, n.Back.AllFaces()...)
}

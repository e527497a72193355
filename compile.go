// Package brushbsp compiles brush-based levels into BSP trees of boundary
// polygons.
package brushbsp

import (
	"errors"
	"fmt"

	"github.com/akmonengine/brushbsp/brush"
	"github.com/akmonengine/brushbsp/geom"
	"github.com/akmonengine/brushbsp/mapfile"
	"github.com/samber/lo"
)

var ErrNoGeometry = errors.New("map has no brushes")

// Model is the compiled geometry of one brush entity.
type Model struct {
	Entity    int
	ClassName string
	// Faces of every brush, indexed by brush then side
	Brushes   [][]brush.Face
	Tree      *Node
	TreeStats TreeStats

	// Pairs of brushes whose bounds intersect
	Overlapping int
	// Sides defined by a point beyond the base winding extent
	OutOfExtent int
}

// Windings returns the faces of every brush that produced a polygon.
func (m *Model) Windings() []brush.Face {
	var out []brush.Face
	for _, faces := range m.Brushes {
		out = append(out, lo.Filter(faces, func(f brush.Face, _ int) bool {
			return f.Winding != nil
		})...)
	}
	return out
}

// Bounds returns the box enclosing the model's windings.
func (m *Model) Bounds() geom.AABB {
	box := geom.EmptyAABB()
	for _, faces := range m.Brushes {
		box = box.Union(brush.Bounds(faces))
	}
	return box
}

// Stats summarizes a compilation.
type Stats struct {
	Entities         int
	Models           int
	Brushes          int
	Sides            int
	Faces            int
	EmptyFaces       int
	DegeneratePlanes int
	Splits           int
	DroppedFragments int
	Nodes            int

	OverlappingBrushes int
	OutOfExtent        int
}

// Result is the output of Compile.
type Result struct {
	Models []Model
	Stats  Stats
}

// Compiler turns parsed maps into BSP trees.
type Compiler struct {
	cfg     Config
	builder brush.Builder
}

// NewCompiler returns a compiler using cfg; zero fields take their defaults.
func NewCompiler(cfg Config) *Compiler {
	cfg = cfg.withDefaults()
	return &Compiler{
		cfg:     cfg,
		builder: brush.Builder{Extent: cfg.Extent},
	}
}

// Compile builds one model per entity carrying brushes. Faces that cannot be
// built are reported in the log and in the statistics, never as an error.
func (c *Compiler) Compile(m *mapfile.Map) (*Result, error) {
	if m == nil || m.BrushCount() == 0 {
		return nil, ErrNoGeometry
	}

	res := &Result{}
	for i := range m.Entities {
		ent := &m.Entities[i]
		if len(ent.Brushes) == 0 {
			continue
		}
		res.Models = append(res.Models, c.compileEntity(i, ent))
	}

	res.Stats = c.stats(m, res.Models)
	c.cfg.Logger.Info("compiled map",
		"models", res.Stats.Models,
		"brushes", res.Stats.Brushes,
		"faces", res.Stats.Faces,
		"empty", res.Stats.EmptyFaces,
		"degenerate", res.Stats.DegeneratePlanes,
		"nodes", res.Stats.Nodes,
	)
	return res, nil
}

func (c *Compiler) compileEntity(index int, ent *mapfile.Entity) Model {
	model := Model{
		Entity:    index,
		ClassName: ent.ClassName(),
		Brushes:   make([][]brush.Face, len(ent.Brushes)),
	}

	e := c.cfg.Extent
	limit := geom.BoundsOf(geom.Point{-e, -e, -e}, geom.Point{e, e, e})

	var treeFaces []*TreeFace
	for j, def := range ent.Brushes {
		for k, pd := range def.Planes {
			if lo.EveryBy(pd.Points[:], limit.ContainsPoint) {
				continue
			}
			model.OutOfExtent++
			c.cfg.Logger.Warn("side outside extent",
				"entity", index,
				"brush", j,
				"side", k,
				"line", pd.Line,
				"extent", e,
			)
		}

		faces := c.builder.Faces(brush.FromDef(def))
		model.Brushes[j] = faces

		for _, f := range faces {
			if f.Winding == nil {
				c.cfg.Logger.Debug("dropped face",
					"entity", index,
					"brush", j,
					"side", f.Index,
					"line", def.Planes[f.Index].Line,
					"err", f.Err,
				)
				continue
			}
			treeFaces = append(treeFaces, &TreeFace{
				Polygon: f.Winding,
				Texture: f.Side.Texture,
				Brush:   j,
				Side:    f.Index,
			})
		}
	}

	model.Overlapping = overlappingBrushes(model.Brushes)
	model.Tree, model.TreeStats = BuildTree(treeFaces)
	c.cfg.Logger.Debug("built tree",
		"entity", index,
		"classname", model.ClassName,
		"faces", len(treeFaces),
		"nodes", model.Tree.Count(),
		"depth", model.Tree.Depth(),
		"splits", model.TreeStats.Splits,
		"overlapping", model.Overlapping,
	)
	return model
}

// overlappingBrushes counts the pairs of brushes whose bounds intersect.
// Overlapping brushes leave faces buried inside each other.
func overlappingBrushes(brushes [][]brush.Face) int {
	boxes := lo.Map(brushes, func(faces []brush.Face, _ int) geom.AABB {
		return brush.Bounds(faces)
	})

	count := 0
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Overlaps(boxes[j]) {
				count++
			}
		}
	}
	return count
}

func (c *Compiler) stats(m *mapfile.Map, models []Model) Stats {
	allFaces := lo.Flatten(lo.FlatMap(models, func(model Model, _ int) [][]brush.Face {
		return model.Brushes
	}))

	return Stats{
		Entities: len(m.Entities),
		Models:   len(models),
		Brushes:  m.BrushCount(),
		Sides:    len(allFaces),
		Faces: lo.CountBy(allFaces, func(f brush.Face) bool {
			return f.Winding != nil
		}),
		EmptyFaces: lo.CountBy(allFaces, func(f brush.Face) bool {
			return errors.Is(f.Err, brush.ErrEmptyFace)
		}),
		DegeneratePlanes: lo.CountBy(allFaces, func(f brush.Face) bool {
			return errors.Is(f.Err, geom.ErrDegeneratePlane)
		}),
		Splits: lo.SumBy(models, func(model Model) int {
			return model.TreeStats.Splits
		}),
		DroppedFragments: lo.SumBy(models, func(model Model) int {
			return model.TreeStats.Dropped
		}),
		Nodes: lo.SumBy(models, func(model Model) int {
			return model.Tree.Count()
		}),
		OverlappingBrushes: lo.SumBy(models, func(model Model) int {
			return model.Overlapping
		}),
		OutOfExtent: lo.SumBy(models, func(model Model) int {
			return model.OutOfExtent
		}),
	}
}

// String formats the statistics on one line.
func (s Stats) String() string {
	return fmt.Sprintf("%d models, %d brushes, %d/%d faces (%d empty, %d degenerate), %d nodes, %d splits, %d dropped",
		s.Models, s.Brushes, s.Faces, s.Sides, s.EmptyFaces, s.DegeneratePlanes, s.Nodes, s.Splits, s.DroppedFragments)
}

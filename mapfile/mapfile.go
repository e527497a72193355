// Package mapfile reads the brush-based level format written by level
// editors: a sequence of entities, each a block of quoted key/value pairs and
// optional brushes, each brush a block of planes given as three points and a
// texture.
//
//	{
//	"classname" "worldspawn"
//	{
//	( 0 0 0 ) ( 1 0 0 ) ( 0 1 0 ) BRICK 0 0 0 1 1
//	...
//	}
//	}
package mapfile

import (
	"fmt"

	"github.com/akmonengine/brushbsp/geom"
)

// PlaneDef is one brush plane as written in the file.
type PlaneDef struct {
	Points   [3]geom.Point
	Texture  string
	OffsetX  float64
	OffsetY  float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Line     int
}

// BrushDef is the ordered plane list of one brush.
type BrushDef struct {
	Planes []PlaneDef
	Line   int
}

// Entity is a block of properties with optional brushes. Brushes is nil for
// point entities.
type Entity struct {
	Properties map[string]string
	Brushes    []BrushDef
	Line       int
}

// ClassName returns the "classname" property.
func (e *Entity) ClassName() string {
	return e.Properties["classname"]
}

// Map is a parsed level.
type Map struct {
	Entities []Entity
}

// BrushCount returns the number of brushes over all entities.
func (m *Map) BrushCount() int {
	count := 0
	for _, e := range m.Entities {
		count += len(e.Brushes)
	}
	return count
}

// ParseError is a syntax error with the line it was found on.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

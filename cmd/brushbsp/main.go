package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/akmonengine/brushbsp"
	"github.com/akmonengine/brushbsp/export"
	"github.com/akmonengine/brushbsp/geom"
	"github.com/akmonengine/brushbsp/mapfile"
)

func main() {
	var (
		mapPath = flag.String("map", "", "level file to compile")
		stlPath = flag.String("stl", "", "write the compiled windings to this STL file")
		extent  = flag.Float64("extent", brushbsp.DEFAULT_EXTENT, "half-size of the base winding")
		verbose = flag.Bool("v", false, "report every dropped face")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *mapPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*mapPath, *stlPath, brushbsp.Config{Extent: *extent, Logger: logger}); err != nil {
		logger.Error("compilation failed", "map", *mapPath, "err", err)
		os.Exit(1)
	}
}

func run(mapPath, stlPath string, cfg brushbsp.Config) error {
	f, err := os.Open(mapPath)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := mapfile.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", mapPath, err)
	}

	res, err := brushbsp.NewCompiler(cfg).Compile(m)
	if err != nil {
		return err
	}

	for _, model := range res.Models {
		bounds := model.Bounds()
		fmt.Printf("model %d (%s): %d faces, %d nodes, depth %d, %d overlapping brush pairs, bounds %v - %v\n",
			model.Entity, model.ClassName, len(model.Windings()),
			model.Tree.Count(), model.Tree.Depth(), model.Overlapping, bounds.Min, bounds.Max)
	}
	fmt.Println(res.Stats)

	if stlPath == "" {
		return nil
	}

	var polys []*geom.Polygon
	for _, model := range res.Models {
		for _, face := range model.Tree.AllFaces() {
			polys = append(polys, face.Polygon)
		}
	}
	return export.WriteSTL(stlPath, polys)
}

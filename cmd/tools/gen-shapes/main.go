// Command gen-shapes writes reference OBJ meshes (cube, sphere, cylinder)
// for exercising the placement pipeline without a real model.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/aerolab-data/windtunnel/internal/geometry"
	"github.com/aerolab-data/windtunnel/internal/geometry/objfile"
)

func main() {
	outDir := flag.String("o", "shapes", "output directory")
	radius := flag.Float64("radius", 1, "sphere and cylinder radius")
	height := flag.Float64("height", 2, "cylinder height")
	res := flag.Int("res", 64, "sphere/cylinder resolution")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	shapes := map[string]*geometry.Mesh{
		"cube.obj":     geometry.UnitCube(),
		"sphere.obj":   geometry.Sphere(*radius, *res),
		"cylinder.obj": geometry.Cylinder(*radius, *height, *res),
	}
	for name, mesh := range shapes {
		path := filepath.Join(*outDir, name)
		if err := objfile.WriteFile(path, mesh); err != nil {
			log.Fatalf("write %s: %v", name, err)
		}
		log.Printf("wrote %s (%d points, %d faces)", path, mesh.NumPoints(), mesh.NumFaces())
	}
}

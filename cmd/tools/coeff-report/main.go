// Command coeff-report renders the force coefficient history of a solver
// output directory as a standalone HTML chart.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/aerolab-data/windtunnel/internal/foam"
	"github.com/aerolab-data/windtunnel/internal/fsutil"
	"github.com/aerolab-data/windtunnel/internal/scene"
)

func main() {
	outputsDir := flag.String("outputs", "", "solver outputs directory")
	htmlPath := flag.String("o", "coefficients.html", "report file to write")
	flag.Parse()

	if *outputsDir == "" {
		log.Fatal("missing required -outputs flag")
	}

	history, err := foam.ReadCoefficientHistory(fsutil.OS{}, *outputsDir)
	if err != nil {
		log.Fatalf("read coefficient history: %v", err)
	}

	f, err := os.Create(*htmlPath)
	if err != nil {
		log.Fatalf("create report: %v", err)
	}
	defer f.Close()

	if err := scene.CoefficientHistoryHTML(f, history); err != nil {
		log.Fatalf("render report: %v", err)
	}
	log.Printf("wrote %s (%d time steps)", *htmlPath, len(history))
}

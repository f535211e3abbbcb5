// Command windtunnel stages objects into virtual wind tunnel cases,
// post-processes solver output into renders and reports, and serves the run
// registry over HTTP.
//
// Usage:
//
//	windtunnel [flags] place
//	windtunnel [flags] postprocess
//	windtunnel [flags] serve
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aerolab-data/windtunnel/internal/config"
	"github.com/aerolab-data/windtunnel/internal/tunnel"
	"github.com/aerolab-data/windtunnel/internal/version"
)

// tuning holds pipeline parameters loaded from -config, or defaults.
var tuning = config.EmptyTuningConfig()

var (
	objectPath = flag.String("object", "", "input OBJ mesh to place (required for place)")
	rotateZ    = flag.Float64("rotate-z", 0, "yaw rotation in degrees applied during placement")
	normalize  = flag.Bool("normalize", true, "scale the object to fit the tunnel's object bounds")
	center     = flag.Bool("center", true, "center the object on the tunnel reference line")
	axisUp     = flag.Bool("axis-correct", false, "rotate 90 degrees about x for y-up input meshes")

	tunnelDims = flag.String("tunnel", "20,10,8", "tunnel length,width,height in meters")
	vcpus      = flag.Int("vcpus", 0, "solver machine group vCPU count (0 selects the default group)")

	casesDir   = flag.String("cases", "cases", "directory for staged solver cases")
	outputsDir = flag.String("outputs", "", "solver output directory to post-process")
	plotsDir   = flag.String("plots", "plots", "directory for rendered views and reports")
	runID      = flag.String("run", "", "run id to record post-processing results against")

	configFile = flag.String("config", "", "optional JSON tuning config")

	dbFile      = flag.String("db", "runs.db", "run registry database file")
	listen      = flag.String("listen", ":8080", "listen address for serve")
	verbose     = flag.Bool("verbose", false, "log placement and post-processing progress")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"usage: %s [flags] <place|postprocess|serve>\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}

// parseTunnelDims reads the "L,W,H" flag value.
func parseTunnelDims(s string) (*tunnel.Tunnel, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("tunnel dimensions %q: want length,width,height", s)
	}
	var dims [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("tunnel dimensions %q: %v", s, err)
		}
		dims[i] = v
	}
	return tunnel.New(dims[0], dims[1], dims[2])
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("windtunnel %s\n", version.String())
		return
	}

	if *configFile != "" {
		cfg, err := config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("invalid -config: %v", err)
		}
		tuning = cfg

		tunnelSet := false
		flag.Visit(func(f *flag.Flag) {
			if f.Name == "tunnel" {
				tunnelSet = true
			}
		})
		if !tunnelSet {
			*tunnelDims = fmt.Sprintf("%g,%g,%g",
				tuning.GetTunnelLength(), tuning.GetTunnelWidth(), tuning.GetTunnelHeight())
		}
	}

	tun, err := parseTunnelDims(*tunnelDims)
	if err != nil {
		log.Fatalf("invalid -tunnel: %v", err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "place":
		err = runPlace(tun)
	case "postprocess":
		err = runPostprocess(tun)
	case "serve":
		err = runServe()
	case "":
		usage()
		os.Exit(2)
	default:
		log.Fatalf("unknown command %q (want place, postprocess, or serve)", cmd)
	}
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

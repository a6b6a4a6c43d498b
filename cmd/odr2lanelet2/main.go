package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LdDl/odr2lanelet2"
	"github.com/k0kubun/go-ansi"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/slog"
)

var (
	configFile  = flag.String("config", "", "Filename of YAML configuration. Command line flags override its values")
	inputFile   = flag.String("i", "", "Filename of GeoJSON lanelet network (*.geojson / *.json)")
	outputFile  = flag.String("o", "", "Filename of Lanelet2 OSM output (*.osm)")
	projString  = flag.String("proj", "", "Projection string of local coordinates. Overrides 'geoReference' of input")
	geojsonFile = flag.String("geojson", "", "Optional filename for GeoJSON export of ways")
	wktFile     = flag.String("wkt", "", "Optional filename for WKT (CSV with ';' separator) export of ways")
	route       = flag.String("route", "", "Optional pair of lanelet ids 'from,to' to find shortest lanelet path for")
	verify      = flag.Bool("verify", false, "Read produced file back and check its references?")
	verbose     = flag.Bool("verbose", false, "Print debug messages?")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := prepareConfiguration()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	err = run(cfg, logger)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func prepareConfiguration() (*odr2lanelet2.Configuration, error) {
	cfg := odr2lanelet2.DefaultConfiguration()
	if *configFile != "" {
		var err error
		cfg, err = odr2lanelet2.LoadConfiguration(*configFile)
		if err != nil {
			return nil, err
		}
	}
	if *inputFile != "" {
		cfg.Input = *inputFile
	}
	if *outputFile != "" {
		cfg.Output = *outputFile
	}
	if *projString != "" {
		cfg.GeoReference = *projString
	}
	if *geojsonFile != "" {
		cfg.GeoJSON = *geojsonFile
	}
	if *wktFile != "" {
		cfg.WKT = *wktFile
	}
	if *route != "" {
		cfg.Route = *route
	}
	if *verify {
		cfg.Verify = true
	}
	err := cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "Bad configuration")
	}
	return cfg, nil
}

func run(cfg *odr2lanelet2.Configuration, logger *slog.Logger) error {
	fmt.Printf("Reading lanelets...")
	st := time.Now()
	network, err := odr2lanelet2.ReadLaneletsGeoJSONFile(cfg.Input)
	if err != nil {
		return errors.Wrap(err, "Can't read lanelet network")
	}
	fmt.Printf("Done in %v\n\tLanelets: %d\n", time.Since(st), len(network.Lanelets))

	geoReference := cfg.GeoReference
	if geoReference == "" {
		geoReference = network.GeoReference
	}
	if geoReference == "" {
		geoReference = odr2lanelet2.DEFAULT_PROJ_STRING
		logger.Warn("no geo reference provided, using default", "proj", geoReference)
	}
	projector, err := odr2lanelet2.NewProjector(geoReference)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(network.Lanelets),
		progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/2][reset] converting lanelets..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	options := append(cfg.ConverterOptions(),
		odr2lanelet2.WithLogger(logger),
		odr2lanelet2.WithProgress(func(done, total int) {
			bar.Add(1)
		}),
	)
	converter := odr2lanelet2.NewConverter(projector, options...)
	logger.Debug(converter.String())

	st = time.Now()
	graph, err := converter.Convert(network.Lanelets)
	if err != nil {
		return errors.Wrap(err, "Conversion aborted")
	}
	fmt.Printf("\nDone in %v\n\tNodes: %d\n\tWays: %d\n\tLanelets: %d\n\tRegulatory elements: %d\n", time.Since(st), len(graph.Nodes), len(graph.Ways), len(graph.Relations), len(graph.Regulations))

	fmt.Printf("[2/2] Writing '%s'...", cfg.Output)
	err = odr2lanelet2.WriteOSMFile(cfg.Output, graph, cfg.WriterOptions(geoReference))
	if err != nil {
		return err
	}
	fmt.Println("Done")

	if cfg.GeoJSON != "" {
		b, err := odr2lanelet2.ExportWaysGeoJSON(graph)
		if err != nil {
			return err
		}
		err = os.WriteFile(cfg.GeoJSON, b, 0644)
		if err != nil {
			return errors.Wrap(err, "Can't save GeoJSON export")
		}
	}
	if cfg.WKT != "" {
		err = exportWKT(cfg.WKT, graph)
		if err != nil {
			return err
		}
	}
	if cfg.Verify {
		report, err := odr2lanelet2.VerifyOSMFile(cfg.Output)
		if err != nil {
			return errors.Wrap(err, "Can't verify output")
		}
		fmt.Println(report)
		for _, dangling := range report.Dangling {
			logger.Warn("dangling reference", "reference", dangling)
		}
	}
	if from, to, ok := cfg.RouteEnds(); ok {
		routing, err := odr2lanelet2.NewRoutingGraph(graph, logger)
		if err != nil {
			return errors.Wrap(err, "Can't prepare routing graph")
		}
		cost, path, err := routing.ShortestPath(from, to)
		if err != nil {
			return err
		}
		if len(path) == 0 {
			fmt.Printf("No lanelet path from '%s' to '%s'\n", from, to)
		} else {
			fmt.Printf("Lanelet path: %s (cost %f)\n", strings.Join(path, " -> "), cost)
		}
	}
	return nil
}

func exportWKT(fname string, graph *odr2lanelet2.Graph) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return odr2lanelet2.ExportWaysWKT(graph, file)
}

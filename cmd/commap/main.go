package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tidwall/geojson"

	"github.com/commap/commap"
	"github.com/commap/commap/internal/config"
)

func main() {
	fs := flag.NewFlagSet("commap", flag.ExitOnError)
	var (
		confFilename = fs.String("config", "commap.yml", "Sets configuration filename. Default is commap.yml in the current folder.")
		snapshotOut  = fs.String("snapshot", "", "Writes the dataset as a msgpack snapshot to the given path and exits.")
		sweep        = fs.Bool("sweep", false, "Prints the marker plan size for every zoom level and exits.")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags]")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Printf("[ERROR] fs.Parse(%v) => %v\n", os.Args[1:], err)
		os.Exit(1)
	}

	envConfFilename := os.Getenv("CONFIG")
	if len(envConfFilename) > 0 {
		*confFilename = envConfFilename
	}
	conf, err := config.FromFile(*confFilename)
	if err != nil {
		fmt.Printf("[ERROR] config.FromFile(%s) => %v\n", *confFilename, err)
		os.Exit(1)
	}

	logger, err := conf.BuildLogger()
	if err != nil {
		fmt.Printf("[ERROR] conf.BuildLogger() => %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dataset, err := loadDataset(conf.Map.Dataset)
	if err != nil {
		logger.Sugar().Errorf("load dataset %s: %v", conf.Map.Dataset, err)
		os.Exit(1)
	}
	logger.Sugar().Infof("dataset loaded: %d countries", dataset.Len())

	if len(*snapshotOut) > 0 {
		if err := commap.WriteDatasetSnapshot(*snapshotOut, dataset); err != nil {
			logger.Sugar().Errorf("write snapshot: %v", err)
			os.Exit(1)
		}
		logger.Sugar().Infof("snapshot written: %s", *snapshotOut)
		return
	}

	renderer := &countingRenderer{}
	opts := []commap.Option{
		commap.WithLogger(logger),
		commap.WithRenderer(renderer),
		commap.WithZoomBounds(
			commap.ZoomLevel(conf.Map.MinZoom),
			commap.ZoomLevel(conf.Map.MaxZoom),
		),
		commap.WithInitialZoom(commap.ZoomLevel(conf.Map.InitialZoom)),
	}
	if len(conf.Map.GeometryURL) > 0 {
		opts = append(opts, commap.WithGeometrySource(
			commap.NewHTTPGeometrySource(conf.Map.GeometryURL)))
	}
	engine := commap.New(dataset, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := engine.LoadGeometry(ctx); err != nil {
		logger.Sugar().Warnf("geometry unavailable: %v", err)
	}

	if *sweep {
		printSweep(ctx, engine, renderer, conf.Map.MinZoom, conf.Map.MaxZoom)
	}
}

func loadDataset(filename string) (commap.Dataset, error) {
	if strings.HasSuffix(filename, ".msgpack") {
		return commap.LoadDatasetSnapshot(filename)
	}
	return commap.LoadDataset(filename)
}

func printSweep(ctx context.Context, engine *commap.Engine, renderer *countingRenderer, minZoom, maxZoom int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ZOOM\tCITIES\tPLACES\tLABELED")
	for z := minZoom; z <= maxZoom; z++ {
		engine.SetZoom(ctx, commap.ZoomLevel(z))
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", z, renderer.cities, renderer.places, renderer.labeled)
	}
	w.Flush()
}

// countingRenderer tallies what a real surface would draw.
type countingRenderer struct {
	boundaries int
	cities     int
	places     int
	labeled    int
}

func (r *countingRenderer) AddBoundary(string, geojson.Object, commap.Style) commap.Drawable {
	r.boundaries++
	return nopDrawable{}
}

func (r *countingRenderer) ReplaceMarkers(markers []commap.Marker) {
	r.cities, r.places, r.labeled = 0, 0, 0
	for _, m := range markers {
		switch m.Kind {
		case commap.CityMarker:
			r.cities++
		case commap.PlaceMarker:
			r.places++
		}
		if m.Label == commap.LabelPermanent {
			r.labeled++
		}
	}
}

type nopDrawable struct{}

func (nopDrawable) SetStyle(commap.Style) {}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}

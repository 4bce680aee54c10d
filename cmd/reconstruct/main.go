// reconstruct runs a kernel density reconstruction offline: event-count
// image (or localization CSV) in, 16-bit density image out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smlm-data/gsdrecon/internal/db"
	"github.com/smlm-data/gsdrecon/internal/events"
	"github.com/smlm-data/gsdrecon/internal/imageio"
	"github.com/smlm-data/gsdrecon/internal/recon"
	"github.com/smlm-data/gsdrecon/internal/report"
)

var (
	input     = flag.String("in", "", "Input event-count image (.png, .tif, .tiff)")
	eventsCSV = flag.String("events", "", "Input localization CSV (x,y[,count]) instead of an image")
	dbPath    = flag.String("db", "", "Optional sqlite database (record the run; with -dataset, load events from it)")
	dataset   = flag.String("dataset", "", "Dataset label to load from -db instead of -in/-events")
	width     = flag.Int("width", 0, "Grid width for -events/-dataset input")
	height    = flag.Int("height", 0, "Grid height for -events/-dataset input")
	output    = flag.String("out", "", "Output image path (.png, .tif, .tiff)")
	bandwidth = flag.Float64("bandwidth", recon.DefaultBandwidth, "Gaussian kernel bandwidth in pixels")
	workers   = flag.Int("workers", 0, "Worker pool size (0 = NumCPU+1)")
	reportDir = flag.String("report", "", "Optional directory for heatmap/summary artefacts")
	quiet     = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if *output == "" {
		return fmt.Errorf("-out is required")
	}

	var database *db.DB
	if *dbPath != "" {
		var err error
		database, err = db.NewDB(*dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer database.Close()
	}

	src, source, err := loadSource(database)
	if err != nil {
		return err
	}
	log.Printf("loaded %s: %dx%d", source, src.Width(), src.Height())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []recon.Option{recon.WithWorkers(*workers)}
	if !*quiet {
		lastDecile := -1
		opts = append(opts, recon.WithProgress(func(done, total int) {
			if d := done * 10 / total; d > lastDecile {
				lastDecile = d
				log.Printf("reconstruction %3d%% (%d/%d pixels)", done*100/total, done, total)
			}
		}))
	}

	start := time.Now()
	res, err := recon.Reconstruct(ctx, src, recon.KernelParams{Bandwidth: *bandwidth}, opts...)
	if err != nil {
		return fmt.Errorf("reconstruction: %w", err)
	}
	elapsed := time.Since(start)
	log.Printf("reconstructed in %s (density range %g..%g)", elapsed.Round(time.Millisecond),
		res.MinDensity, res.MaxDensity)

	if err := imageio.WriteOutput(*output, res.Output); err != nil {
		return err
	}
	log.Printf("wrote %s", *output)

	rec := &db.Run{
		Source:         source,
		Width:          src.Width(),
		Height:         src.Height(),
		Bandwidth:      *bandwidth,
		MinDensity:     res.MinDensity,
		MaxDensity:     res.MaxDensity,
		DurationMillis: elapsed.Milliseconds(),
	}
	if database != nil {
		if err := database.InsertRun(rec); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.Printf("recorded run %s", rec.RunID)
	}

	if *reportDir != "" {
		meta := report.Meta{RunID: rec.RunID, Source: source, Bandwidth: *bandwidth}
		if err := report.Generate(*reportDir, res, meta); err != nil {
			return err
		}
		log.Printf("wrote report to %s", *reportDir)
	}
	return nil
}

// loadSource builds the event-count grid from whichever input was given:
// an image file, a localization CSV, or a dataset stored in the database.
func loadSource(database *db.DB) (*recon.SourceGrid, string, error) {
	switch {
	case *input != "":
		g, err := imageio.ReadSource(*input)
		return g, *input, err

	case *eventsCSV != "":
		if *width <= 0 || *height <= 0 {
			return nil, "", fmt.Errorf("-events requires positive -width and -height")
		}
		f, err := os.Open(*eventsCSV)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		evs, err := events.ReadCSV(f)
		if err != nil {
			return nil, "", err
		}
		g, dropped := events.Rasterize(evs, *width, *height)
		if dropped > 0 {
			log.Printf("warning: %d events outside the %dx%d grid were dropped", dropped, *width, *height)
		}
		return g, *eventsCSV, nil

	case *dataset != "":
		if database == nil {
			return nil, "", fmt.Errorf("-dataset requires -db")
		}
		if *width <= 0 || *height <= 0 {
			return nil, "", fmt.Errorf("-dataset requires positive -width and -height")
		}
		evs, err := database.LoadEvents(*dataset)
		if err != nil {
			return nil, "", err
		}
		if len(evs) == 0 {
			return nil, "", fmt.Errorf("dataset %q is empty", *dataset)
		}
		g, dropped := events.Rasterize(evs, *width, *height)
		if dropped > 0 {
			log.Printf("warning: %d events outside the %dx%d grid were dropped", dropped, *width, *height)
		}
		return g, "dataset:" + *dataset, nil

	default:
		return nil, "", fmt.Errorf("one of -in, -events or -dataset is required")
	}
}

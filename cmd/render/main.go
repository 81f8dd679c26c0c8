// Command render builds the heat map offline and writes it as a standalone
// SVG document or as a static HTML page. Hover tooltips and resize handling
// are served by cmd/heatmap over its WebSocket, so the exported page has
// neither.
//
// Usage:
//
//	go run ./cmd/render -out chart.svg
//	go run ./cmd/render -file data/global-temperature.json -format html -out index.html
//	go run ./cmd/render -width 800 > chart.svg
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/interaction"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	url := flag.String("url", config.DefaultDatasetURL, "dataset URL")
	file := flag.String("file", "", "read the dataset from a local file instead of -url")
	out := flag.String("out", "", "output path (default stdout)")
	format := flag.String("format", "svg", "output format: svg or html (static page, no hover tooltips)")
	width := flag.Float64("width", 0, "svg width attribute (default: layout width)")
	timeout := flag.Duration("timeout", 10*time.Second, "fetch timeout")
	flag.Parse()

	if *format != "svg" && *format != "html" {
		flag.Usage()
		return fmt.Errorf("unknown -format %q", *format)
	}

	// Fixed clock so repeated renders of the same dataset are identical.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var src domain.DatasetSource = source.NewHTTPSource(*url, *timeout, logger)
	if *file != "" {
		src = source.NewFileSource(*file)
	}

	p := pipeline.New(src, chart.DefaultLayout(), chart.DefaultPalette(), logger, observability.NewUnregisteredMetrics())
	if err := p.Run(context.Background()); err != nil {
		return err
	}
	c := p.Chart()

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)

	var err error
	switch *format {
	case "html":
		err = c.WritePage(bw, "")
	default:
		err = c.WriteSVG(bw, interaction.FitWidth(*width, c.Layout.Width))
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", *format, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if *out != "" {
		log.Printf("wrote %s: %d cells, %d skipped", *out, len(c.Grid.Cells), c.Grid.Skipped)
	}
	return nil
}

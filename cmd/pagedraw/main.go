// Command pagedraw renders a single chart page from values given on the
// command line.
//
//	pagedraw -kind column -title Sales -o sales.png 3 5 2 8
//
// The output format follows the file extension: .png, .jpg or .pdf.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VantageDataChat/GoPageDraw"
)

func main() {
	kind := flag.String("kind", "column", "chart kind: pie, line, area, column, bar, column-stacked, bar-stacked")
	title := flag.String("title", "", "chart title")
	out := flag.String("o", "chart.png", "output file (.png, .jpg or .pdf)")
	size := flag.Float64("size", 400, "page width and height in points")
	bg := flag.String("bg", "white", "background color name or ARGB hex")
	series := flag.String("series", "", "extra series as semicolon separated lists, e.g. \"1,2;3,4\"")
	labels := flag.Bool("labels", false, "draw value labels")
	fontDir := flag.String("fonts", "", "additional font directory")
	version := flag.Bool("version", false, "print the version and exit")
	verbose := flag.Bool("v", false, "log debug messages to stderr")
	flag.Parse()

	if *version {
		fmt.Println("pagedraw", pagedraw.Version)
		return
	}
	if *verbose {
		pagedraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(*kind, *title, *out, *size, *bg, *series, *labels, *fontDir, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "pagedraw: %v\n", err)
		os.Exit(1)
	}
}

func run(kindName, title, out string, size float64, bg, series string, labels bool, fontDir string, args []string) error {
	kind, err := pagedraw.ParseChartKind(kindName)
	if err != nil {
		return err
	}
	first, err := parseValues(args)
	if err != nil {
		return err
	}
	sets := []pagedraw.DataSet{pagedraw.NewDataSet(title, first...)}
	if series != "" {
		for _, s := range strings.Split(series, ";") {
			vals, err := parseValues(strings.Split(s, ","))
			if err != nil {
				return err
			}
			sets = append(sets, pagedraw.NewDataSet("", vals...))
		}
	}
	if labels {
		for i := range sets {
			sets[i] = sets[i].SetLabels(pagedraw.LabelAbove)
		}
	}

	background, ok := pagedraw.ColorByName(bg)
	if !ok {
		background = pagedraw.NewColor(bg)
	}

	page := pagedraw.NewPage(size, size).SetBackground(background)
	page.AddShape(pagedraw.NewChart(page.Boundary(), kind, sets...))

	opts := pagedraw.DefaultRenderOptions()
	opts.Width = int(size)
	opts.Format = pagedraw.ImageFormatFromPath(out)
	if fontDir != "" {
		opts.FontDirs = []string{fontDir}
	}

	if strings.EqualFold(filepath.Ext(out), ".pdf") {
		err = page.SavePDF(out, opts)
	} else {
		err = page.SaveImage(out, opts)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s chart to %s\n", kind, out)
	return nil
}

func parseValues(args []string) ([]float64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no values given")
	}
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", a, err)
		}
		out = append(out, v)
	}
	return out, nil
}

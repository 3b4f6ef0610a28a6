package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/VantageDataChat/GoPageDraw"
)

func main() {
	dst := flag.String("o", filepath.Join(os.TempDir(), "pagedraw_render"), "output directory")
	width := flag.Int("width", 1920, "image width in pixels")
	withPDF := flag.Bool("pdf", true, "also write one PDF per page")
	preview := flag.Bool("preview", false, "draw preview shapes and comments")
	verbose := flag.Bool("v", false, "log debug messages to stderr")
	flag.Parse()

	if *verbose {
		pagedraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := os.MkdirAll(*dst, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	doc, err := pagedraw.Gallery()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build: %v\n", err)
		os.Exit(1)
	}
	if err := doc.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	opts := pagedraw.DefaultRenderOptions()
	opts.Width = *width
	opts.Preview = *preview
	opts.ShowComments = *preview

	if err := doc.SaveImages(filepath.Join(*dst, "page%02d.png"), opts); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	if *withPDF {
		if err := doc.SavePDFs(filepath.Join(*dst, "page%02d.pdf"), opts); err != nil {
			fmt.Fprintf(os.Stderr, "pdf: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Rendered %d pages to %s\n", doc.GetPageCount(), *dst)
}

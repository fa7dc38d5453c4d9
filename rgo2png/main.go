package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"rgotools/rgo"
)

func main() {
	scanMode := flag.Bool("scan", false, "print archive layout and image headers, write nothing")
	listFile := flag.String("list", "", "read input paths from this file, one per line")
	outDir := flag.String("o", "", "output directory (default: <archive>_out next to each archive)")
	format := flag.String("format", "png", "output format: png or bmp")
	scale := flag.Int("scale", 1, "upscale exported images by this factor (nearest neighbour)")
	ps2Width := flag.Int("ps2w", rgo.DefaultPS2Width, "raster width of PS2 images")
	pspWidth := flag.Int("pspw", rgo.DefaultPSPWidth, "raster width of PSP images (multiple of 16)")
	jobs := flag.Int("j", 4, "archives decoded in parallel")
	dedup := flag.Bool("dedup", false, "skip images identical to one already exported")
	manifest := flag.Bool("manifest", false, "write a JSON manifest per archive")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config{
		outDir:   *outDir,
		format:   *format,
		scale:    *scale,
		jobs:     *jobs,
		dedup:    *dedup,
		manifest: *manifest,
		opts: rgo.Options{
			PS2Width:      *ps2Width,
			PSPWidth:      *pspWidth,
			MaxImageBytes: rgo.DefaultMaxImageBytes,
		},
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		usage()
		os.Exit(2)
	}

	paths, err := collectInputs(flag.Args(), *listFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		usage()
		os.Exit(2)
	}

	if *scanMode {
		for _, p := range paths {
			scanFile(os.Stdout, p)
		}
		return
	}

	sum := runBatch(paths, cfg)
	fmt.Printf("Done. %d archives, %d images exported, %d skipped, %d failed.\n",
		sum.archives, sum.exported, sum.skipped, sum.failed)
	if sum.failed > 0 {
		os.Exit(1)
	}
}

func usage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintln(os.Stderr, "RGO image archive converter (PS2 / PSP)")
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintf(os.Stderr, "  Scan archives   : %s -scan <file|dir|glob>...\n", exe)
	fmt.Fprintf(os.Stderr, "  Export images   : %s [flags] <file|dir|glob>...\n", exe)
	fmt.Fprintf(os.Stderr, "  From a file list: %s [flags] -list filelist.txt\n", exe)
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

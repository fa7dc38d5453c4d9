package main

import (
	"fmt"
	"io"
	"os"

	"rgotools/rgo"
)

// scanFile prints what the scanner and header chain find, without decoding.
func scanFile(w io.Writer, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error: can't read %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(w, "Scanning %s (size: %d bytes)...\n", path, len(data))

	a, err := rgo.Open(data)
	if err != nil {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	l := a.Layout
	if l.Kind == rgo.LayoutMapData {
		fmt.Fprintln(w, "  MAP data, no images.")
		return
	}
	fmt.Fprintf(w, "  %d images, last palette %d bytes, headers from 0x%X\n", l.Images, l.LastPaletteSize, l.HeaderStart)
	fmt.Fprintln(w, "----------------------------------------------------------------")
	fmt.Fprintln(w, "Img #   | Header    | Subfiles | Platform | Size      | Colors")
	fmt.Fprintln(w, "----------------------------------------------------------------")

	h, err := a.Header(0)
	for i := 0; i < l.Images; i++ {
		if err != nil {
			fmt.Fprintf(w, "Img %-3d | %v\n", i, err)
			break
		}
		if plat, perr := rgo.DetectPlatform(h); perr != nil {
			fmt.Fprintf(w, "Img %-3d | 0x%-7X | %-8d | %v\n", i, h.Offset, h.Count, perr)
		} else {
			fmt.Fprintf(w, "Img %-3d | 0x%-7X | %-8d | %-8s | %-9s | %d\n", i, h.Offset, h.Count, plat, declaredSize(h), paletteColors(a, i))
		}
		if i+1 < l.Images {
			h, err = rgo.NextHeader(h)
		}
	}
	fmt.Fprintln(w, "----------------------------------------------------------------")
}

func declaredSize(h *rgo.ImageHeader) string {
	size, err := rgo.DecompressedSize(h)
	if err != nil {
		return "bad"
	}
	return fmt.Sprintf("%d", size)
}

func paletteColors(a *rgo.Archive, i int) int {
	p, err := a.Palette(i)
	if err != nil {
		return 0
	}
	return p.Colors()
}

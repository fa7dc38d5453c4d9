package main

import (
	"fmt"

	"rgotools/rgo"
)

type config struct {
	outDir   string
	root     string // inputs' common directory, mirrored under outDir
	format   string
	scale    int
	jobs     int
	dedup    bool
	manifest bool
	opts     rgo.Options
}

func (c config) validate() error {
	if _, ok := encoders[c.format]; !ok {
		return fmt.Errorf("unknown format %q", c.format)
	}
	if c.scale < 1 || c.scale > 16 {
		return fmt.Errorf("scale %d out of range 1..16", c.scale)
	}
	if c.opts.PS2Width <= 0 {
		return fmt.Errorf("PS2 width %d must be positive", c.opts.PS2Width)
	}
	if c.opts.PSPWidth <= 0 || c.opts.PSPWidth%rgo.TileWidth != 0 {
		return fmt.Errorf("PSP width %d must be a positive multiple of %d", c.opts.PSPWidth, rgo.TileWidth)
	}
	if c.jobs < 1 {
		return fmt.Errorf("-j %d must be at least 1", c.jobs)
	}
	return nil
}

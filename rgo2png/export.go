package main

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/bmp"

	"rgotools/rgo"
)

var encoders = map[string]imgio.Encoder{
	"png": imgio.PNGEncoder(),
	// paletted BMP, for tools that can't read PNG
	"bmp": bmp.Encode,
}

// writeRaster saves img as a paletted raster. Scaling goes through bild and
// produces truecolor output.
func writeRaster(img *rgo.Image, path string, cfg config) error {
	enc, ok := encoders[cfg.format]
	if !ok {
		return fmt.Errorf("unknown format %q", cfg.format)
	}
	var m image.Image = img.ToImage()
	if cfg.scale > 1 {
		m = transform.Resize(m, img.Width*cfg.scale, img.Height*cfg.scale, transform.NearestNeighbor)
	}
	if err := imgio.Save(path, m, enc); err != nil {
		return fmt.Errorf("saving %s: %v", path, err)
	}
	return nil
}

package rgo

import "image"

// ToImage builds a paletted raster from img. The palette is widened to
// cover every index used, so a 16-color palette with stray indices still
// encodes.
func (img *Image) ToImage() *image.Paletted {
	maxIdx := 0
	for _, c := range img.Pix {
		if int(c) > maxIdx {
			maxIdx = int(c)
		}
	}
	out := image.NewPaletted(image.Rect(0, 0, img.Width, img.Height), img.Palette.ColorPalette(maxIdx+1))
	copy(out.Pix, img.Pix)
	return out
}

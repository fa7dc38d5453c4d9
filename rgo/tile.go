package rgo

import "fmt"

const (
	TileWidth  = 16
	TileHeight = 8
	tileBytes  = TileWidth * TileHeight
)

// Retile converts PSP pixel data stored as 16x8 tiles (left to right, then
// top to bottom) into row-major order for a raster of the given width.
// Bytes after the last complete row of tiles are copied as they are.
func Retile(src []byte, width int) ([]byte, error) {
	if width <= 0 || width%TileWidth != 0 {
		return nil, fmt.Errorf("%w: tiled width %d is not a multiple of %d", ErrMalformedArchive, width, TileWidth)
	}
	out := make([]byte, len(src))
	tilesPerRow := width / TileWidth
	band := width * TileHeight

	n := len(src) / band * band
	for base := 0; base < n; base += band {
		dp := base
		for y := 0; y < TileHeight; y++ {
			sp := base + y*TileWidth
			for t := 0; t < tilesPerRow; t++ {
				copy(out[dp:dp+TileWidth], src[sp:sp+TileWidth])
				dp += TileWidth
				sp += tileBytes
			}
		}
	}
	copy(out[n:], src[n:])
	return out, nil
}

package rgo

import (
	"encoding/binary"
	"image/color"
)

// Palette is an owned copy of palette bytes, 4 bytes per color in RGBA
// order (little-endian 0xAABBGGRR).
type Palette []byte

func (p Palette) Colors() int { return len(p) / 4 }

func (p Palette) at(i int) uint32 { return binary.LittleEndian.Uint32(p[i*4:]) }

func (p Palette) set(i int, c uint32) { binary.LittleEndian.PutUint32(p[i*4:], c) }

// SwapColorBlocks undoes the PS2 CLUT storage order: in every block of 32
// colors the runs [8,16) and [16,24) trade places. A trailing partial block
// is only touched when it reaches 24 colors. Applying it twice is a no-op.
func SwapColorBlocks(p Palette) {
	n := p.Colors()
	for base := 0; base+24 <= n; base += 32 {
		a := p[(base+8)*4 : (base+16)*4]
		b := p[(base+16)*4 : (base+24)*4]
		var tmp [8 * 4]byte
		copy(tmp[:], a)
		copy(a, b)
		copy(b, tmp[:])
	}
}

// RescaleAlpha maps PS2 alpha (0..0x80) to 0..0xFF. Anything with the top
// alpha bit set becomes opaque; the rest are doubled in place, no clamp.
func RescaleAlpha(p Palette) {
	for i := 0; i < p.Colors(); i++ {
		c := p.at(i)
		if c&0x80000000 != 0 {
			c |= 0xFF000000
		} else {
			c += c & 0xFF000000
		}
		p.set(i, c)
	}
}

// CorrectPalette applies both PS2 fixups in place.
func CorrectPalette(p Palette) {
	SwapColorBlocks(p)
	RescaleAlpha(p)
}

// ColorPalette converts p to a color.Palette of at least n entries, padding
// with transparent black.
func (p Palette) ColorPalette(n int) color.Palette {
	if p.Colors() > n {
		n = p.Colors()
	}
	pal := make(color.Palette, n)
	for i := range pal {
		if i >= p.Colors() {
			pal[i] = color.NRGBA{}
			continue
		}
		c := p[i*4 : i*4+4]
		pal[i] = color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	return pal
}

package rgo

import (
	"bytes"
	"fmt"
)

const (
	PaletteBytes = 1024 // 256 colors, 4 bytes each

	// DefaultHeaderOffset is where the header chain starts when the first
	// palette is followed by zero padding.
	DefaultHeaderOffset = 0x1800

	// "MAP\0" read as a little-endian word.
	mapSignature = 0x0050414D

	paletteStep = 16 // palettes grow 4 colors at a time
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

type LayoutKind int

const (
	LayoutImages LayoutKind = iota
	LayoutMapData
)

func (k LayoutKind) String() string {
	if k == LayoutMapData {
		return "map"
	}
	return "images"
}

// Layout is what ScanArchive recovers about an archive. There is no
// directory in the file; all of it comes from looking at palette words.
type Layout struct {
	Kind LayoutKind
	// Images is the number of palettes, which is also the number of images.
	Images int
	// LastPaletteSize is the byte size of the final palette. Every other
	// palette is PaletteBytes long.
	LastPaletteSize int
	// HeaderStart is the offset of the first image header. Unused for
	// LayoutMapData.
	HeaderStart int
}

type scanState int

const (
	stateScanning scanState = iota
	stateAmbiguousZero
	stateFoundHeader
	stateMapData
)

// isHeaderWord reports whether w looks like a subfile count. Palette words
// are either zero or carry alpha in the high byte, so they never land here.
func isHeaderWord(w uint32) bool {
	return w > 0 && w < 256
}

// ScanArchive determines how many palettes (and so images) the archive
// holds and where the image header chain begins.
func ScanArchive(data []byte) (Layout, error) {
	if bytes.HasPrefix(data, pngMagic) {
		return Layout{}, fmt.Errorf("%w: file is a PNG", ErrNotArchive)
	}
	if len(data) < PaletteBytes+8 {
		return Layout{}, fmt.Errorf("%w: %d bytes is too short for a palette", ErrMalformedArchive, len(data))
	}

	layout := Layout{Kind: LayoutImages, Images: 1, LastPaletteSize: PaletteBytes}
	cur := PaletteBytes
	state := stateScanning

	first, _ := u32At(data, cur)
	switch {
	case first == mapSignature:
		state = stateMapData
	case first == 0:
		state = stateAmbiguousZero
	case isHeaderWord(first):
		// header straight after the only palette, no padding
		layout.HeaderStart = cur
		return layout, nil
	}

	switch state {
	case stateMapData:
		layout.Kind = LayoutMapData
		return layout, nil
	case stateAmbiguousZero:
		second, _ := u32At(data, cur+4)
		if second == 0 {
			layout.HeaderStart = DefaultHeaderOffset
			return layout, nil
		}
		// first color of the second palette is just transparent
		state = stateScanning
	}

	for state == stateScanning {
		w, err := u32At(data, cur)
		if err != nil {
			return Layout{}, fmt.Errorf("no image header after %d palettes: %w", layout.Images, err)
		}
		if isHeaderWord(w) {
			state = stateFoundHeader
			break
		}
		cur += paletteStep
		if cur%PaletteBytes == 0 {
			layout.Images++
		}
	}

	if rem := cur % PaletteBytes; rem != 0 {
		layout.Images++
		layout.LastPaletteSize = rem
	}
	layout.HeaderStart = cur
	return layout, nil
}

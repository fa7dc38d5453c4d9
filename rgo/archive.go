package rgo

import "fmt"

// Archive is one loaded image archive. The byte slice is only read, so an
// Archive can be decoded from several goroutines at once.
type Archive struct {
	data   []byte
	Layout Layout
}

// Image is a decoded image: one palette index per pixel plus the palette
// that goes with it, both already corrected for the platform.
type Image struct {
	Index    int
	Offset   int
	Platform Platform
	Width    int
	Height   int
	Pix      []byte
	Palette  Palette
}

// Result pairs an image index with its decode outcome.
type Result struct {
	Index int
	Image *Image
	Err   error
}

func Open(data []byte) (*Archive, error) {
	layout, err := ScanArchive(data)
	if err != nil {
		return nil, err
	}
	return &Archive{data: data, Layout: layout}, nil
}

func (a *Archive) Len() int { return a.Layout.Images }

// Palette returns a copy of palette i. Palettes are packed back to back
// from offset 0; only the last one may be short.
func (a *Archive) Palette(i int) (Palette, error) {
	if i < 0 || i >= a.Layout.Images {
		return nil, fmt.Errorf("%w: palette %d of %d", ErrIndexOutOfRange, i, a.Layout.Images)
	}
	size := PaletteBytes
	if i == a.Layout.Images-1 {
		size = a.Layout.LastPaletteSize
	}
	b, err := span(a.data, i*PaletteBytes, size)
	if err != nil {
		return nil, err
	}
	return append(Palette(nil), b...), nil
}

func (a *Archive) Header(i int) (*ImageHeader, error) {
	return GetImageHeader(a.data, a.Layout, i)
}

// Decode runs the whole pipeline for image i.
func (a *Archive) Decode(i int, opts Options) (*Image, error) {
	h, err := a.Header(i)
	if err != nil {
		return nil, err
	}
	return a.decodeHeader(i, h, opts)
}

func (a *Archive) decodeHeader(i int, h *ImageHeader, opts Options) (*Image, error) {
	opts = opts.withDefaults()
	pal, err := a.Palette(i)
	if err != nil {
		return nil, err
	}
	p, err := DetectPlatform(h)
	if err != nil {
		return nil, err
	}
	pix, err := Decompress(h, p, opts)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", i, err)
	}

	switch p {
	case PlatformPSP:
		if pix, err = Retile(pix, opts.PSPWidth); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
	case PlatformPS2:
		CorrectPalette(pal)
	}

	img := &Image{Index: i, Offset: h.Offset, Platform: p, Pix: pix, Palette: pal}
	img.Width = opts.Width(p)
	img.Height = (len(pix) + img.Width - 1) / img.Width
	return img, nil
}

// DecodeAll decodes every image in order. A failed image doesn't stop the
// rest unless the header chain itself can't be followed past it.
func (a *Archive) DecodeAll(opts Options) []Result {
	res := make([]Result, 0, a.Layout.Images)
	if a.Layout.Kind == LayoutMapData {
		return res
	}
	h, err := ReadImageHeader(a.data, a.Layout.HeaderStart)
	for i := 0; i < a.Layout.Images; i++ {
		if err != nil {
			res = append(res, Result{Index: i, Err: err})
			continue
		}
		img, derr := a.decodeHeader(i, h, opts)
		res = append(res, Result{Index: i, Image: img, Err: derr})
		if i+1 < a.Layout.Images {
			h, err = NextHeader(h)
		}
	}
	return res
}

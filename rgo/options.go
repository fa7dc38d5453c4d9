package rgo

// Options carries the values that vary per platform but are not part of the
// archive itself.
type Options struct {
	// PS2Width is the raster width used for PS2 images. The game draws most
	// backgrounds at 640 but some sprite sheets need a different value.
	PS2Width int
	// PSPWidth is the raster width of PSP images. Tiles are laid out across
	// this width, so it must be a multiple of 16.
	PSPWidth int
	// MaxImageBytes bounds the decompressed size of one image. Headers
	// declaring more are treated as corrupt rather than allocated.
	MaxImageBytes int
}

const (
	DefaultPS2Width      = 640
	DefaultPSPWidth      = 512
	DefaultMaxImageBytes = 64 * 1024 * 1024
)

func DefaultOptions() Options {
	return Options{
		PS2Width:      DefaultPS2Width,
		PSPWidth:      DefaultPSPWidth,
		MaxImageBytes: DefaultMaxImageBytes,
	}
}

// withDefaults fills zero fields so a partially set Options still works.
func (o Options) withDefaults() Options {
	if o.PS2Width <= 0 {
		o.PS2Width = DefaultPS2Width
	}
	if o.PSPWidth <= 0 {
		o.PSPWidth = DefaultPSPWidth
	}
	if o.MaxImageBytes <= 0 {
		o.MaxImageBytes = DefaultMaxImageBytes
	}
	return o
}

// Width returns the raster width for p.
func (o Options) Width(p Platform) int {
	o = o.withDefaults()
	if p == PlatformPSP {
		return o.PSPWidth
	}
	return o.PS2Width
}

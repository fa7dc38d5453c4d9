package rgo

import "fmt"

const (
	regionAlign   = 1024
	checksumBytes = 16
)

// ImageHeader is one image's header: a subfile count followed by Count+1
// offsets, all relative to the header start. Subfile i occupies
// [Offsets[i], Offsets[i+1]).
type ImageHeader struct {
	data    []byte
	Offset  int
	Count   int
	Offsets []uint32
}

// ReadImageHeader parses the header at off and checks every offset lands
// inside the archive.
func ReadImageHeader(data []byte, off int) (*ImageHeader, error) {
	n, err := u32At(data, off)
	if err != nil {
		return nil, fmt.Errorf("header at 0x%X: %w", off, err)
	}
	// the table has to fit the remaining buffer, check before allocating it
	if uint64(n)+1 > uint64(len(data)-off-4)/4 {
		return nil, fmt.Errorf("%w: header at 0x%X declares %d subfiles", ErrMalformedArchive, off, n)
	}
	h := &ImageHeader{data: data, Offset: off, Count: int(n), Offsets: make([]uint32, n+1)}
	for i := range h.Offsets {
		v, _ := u32At(data, off+4+i*4)
		if i > 0 && v < h.Offsets[i-1] {
			return nil, fmt.Errorf("%w: header at 0x%X: offset %d (0x%X) before offset %d (0x%X)",
				ErrMalformedArchive, off, i, v, i-1, h.Offsets[i-1])
		}
		if uint64(off)+uint64(v) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: header at 0x%X: offset %d (0x%X) past end of archive", ErrMalformedArchive, off, i, v)
		}
		h.Offsets[i] = v
	}
	return h, nil
}

// Subfile returns the raw data region of subfile i, including its leading
// size field.
func (h *ImageHeader) Subfile(i int) ([]byte, error) {
	if i < 0 || i >= h.Count {
		return nil, fmt.Errorf("%w: subfile %d of %d", ErrIndexOutOfRange, i, h.Count)
	}
	start := h.Offset + int(h.Offsets[i])
	end := h.Offset + int(h.Offsets[i+1])
	return span(h.data, start, end-start)
}

// SubfileSize returns the uncompressed size subfile i declares.
func (h *ImageHeader) SubfileSize(i int) (int, error) {
	sub, err := h.Subfile(i)
	if err != nil {
		return 0, err
	}
	v, err := u32At(sub, 0)
	if err != nil {
		return 0, fmt.Errorf("subfile %d size field: %w", i, err)
	}
	return int(v), nil
}

// SizeOfImageRegion returns the byte length of the header and data of the
// image whose header is at off. It is also the distance to the next
// header.
func SizeOfImageRegion(data []byte, off int) (int, error) {
	n, err := u32At(data, off)
	if err != nil {
		return 0, err
	}
	last, err := u32At(data, off+(int(n)+1)*4)
	if err != nil {
		return 0, fmt.Errorf("header at 0x%X, last offset: %w", off, err)
	}

	size := int(last)
	size += size%checksumBytes + checksumBytes
	size = alignUp(size, regionAlign)

	for {
		probe := off + size
		if probe == len(data) {
			// last image in the archive
			return size, nil
		}
		w, err := u32At(data, probe)
		if err != nil {
			return 0, fmt.Errorf("image region at 0x%X: %w", off, err)
		}
		if w != 0 {
			return size, nil
		}
		// zero can be padding or a header with no subfiles; a real checksum
		// right before it means the latter
		sum, err := span(data, probe-checksumBytes, checksumBytes)
		if err != nil {
			return 0, err
		}
		if !allZero(sum) {
			return size, nil
		}
		size += regionAlign
	}
}

// NextHeader returns the header that follows h in the chain.
func NextHeader(h *ImageHeader) (*ImageHeader, error) {
	size, err := SizeOfImageRegion(h.data, h.Offset)
	if err != nil {
		return nil, err
	}
	next := h.Offset + size
	if next >= len(h.data) {
		return nil, fmt.Errorf("%w: no header after image at 0x%X", ErrMalformedArchive, h.Offset)
	}
	return ReadImageHeader(h.data, next)
}

// GetImageHeader walks the chain from the start recorded in layout to the
// header of image index.
func GetImageHeader(data []byte, layout Layout, index int) (*ImageHeader, error) {
	if layout.Kind == LayoutMapData {
		return nil, ErrNoHeaderChain
	}
	if index < 0 || index >= layout.Images {
		return nil, fmt.Errorf("%w: image %d of %d", ErrIndexOutOfRange, index, layout.Images)
	}
	h, err := ReadImageHeader(data, layout.HeaderStart)
	if err != nil {
		return nil, err
	}
	for i := 0; i < index; i++ {
		if h, err = NextHeader(h); err != nil {
			return nil, fmt.Errorf("walking to image %d: %w", index, err)
		}
	}
	return h, nil
}

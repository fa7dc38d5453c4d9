package rgo

import "fmt"

// DecompressedSize sums the uncompressed sizes the subfiles of h declare.
// It doesn't depend on the platform.
func DecompressedSize(h *ImageHeader) (int, error) {
	total := 0
	for i := 0; i < h.Count; i++ {
		n, err := h.SubfileSize(i)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Decompress decodes every subfile of h with the codec of platform p and
// returns them concatenated. A header without subfiles gives an empty,
// non-nil buffer.
func Decompress(h *ImageHeader, p Platform, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if h.Count == 0 {
		return []byte{}, nil
	}
	if p != PlatformPS2 && p != PlatformPSP {
		return nil, fmt.Errorf("image at 0x%X: no codec for platform %v", h.Offset, p)
	}

	total, err := DecompressedSize(h)
	if err != nil {
		return nil, err
	}
	if total > opts.MaxImageBytes {
		return nil, fmt.Errorf("%w: image at 0x%X declares %d bytes, limit is %d",
			ErrMalformedArchive, h.Offset, total, opts.MaxImageBytes)
	}

	out := make([]byte, total)
	pos := 0
	for i := 0; i < h.Count; i++ {
		sub, err := h.Subfile(i)
		if err != nil {
			return nil, err
		}
		size, err := h.SubfileSize(i)
		if err != nil {
			return nil, err
		}
		skip := p.payloadSkip()
		if len(sub) < skip {
			return nil, fmt.Errorf("%w: image at 0x%X subfile %d is %d bytes, %s needs %d before the stream",
				ErrMalformedArchive, h.Offset, i, len(sub), p, skip)
		}
		dst := out[pos : pos+size]
		switch p {
		case PlatformPS2:
			err = newLZSSDecoder().decode(dst, sub[skip:])
		case PlatformPSP:
			err = inflateInto(dst, sub[skip:])
		}
		if err != nil {
			return nil, fmt.Errorf("image at 0x%X subfile %d: %w", h.Offset, i, err)
		}
		pos += size
	}
	return out, nil
}

package rgo

import "errors"

var (
	// ErrMalformedArchive covers inconsistent offsets, out-of-bounds reads and
	// sizes no real archive produces.
	ErrMalformedArchive = errors.New("rgo: malformed archive")

	// ErrCodecFailure is returned when a subfile stream can't be decoded to
	// its declared size.
	ErrCodecFailure = errors.New("rgo: codec failure")

	// ErrNoHeaderChain marks archives that hold MAP data after the palette.
	ErrNoHeaderChain = errors.New("rgo: no image headers (MAP data)")

	// ErrNotArchive is returned for files that are some other format entirely.
	ErrNotArchive = errors.New("rgo: not an image archive")

	// ErrIndexOutOfRange is returned for image, palette or subfile indices
	// the archive doesn't have.
	ErrIndexOutOfRange = errors.New("rgo: image index out of range")
)

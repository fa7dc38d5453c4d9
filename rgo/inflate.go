package rgo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// PSP subfiles are gzip streams. zlib and raw DEFLATE are accepted as well
// since the container only says "compressed bytes follow".
func newInflater(src []byte) (io.ReadCloser, error) {
	r := bytes.NewReader(src)
	switch {
	case len(src) >= 2 && src[0] == 0x1F && src[1] == 0x8B:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		// trailing alignment bytes are not another member
		zr.Multistream(false)
		return zr, nil
	case len(src) >= 2 && src[0]&0x0F == 8 && (uint16(src[0])<<8|uint16(src[1]))%31 == 0:
		return zlib.NewReader(r)
	}
	return flate.NewReader(r), nil
}

// Inflate decodes a PSP subfile stream into exactly size bytes.
func Inflate(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	if err := inflateInto(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func inflateInto(dst, src []byte) error {
	zr, err := newInflater(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCodecFailure, err)
	}
	defer zr.Close()

	if n, err := io.ReadFull(zr, dst); err != nil {
		return fmt.Errorf("%w: inflated %d of %d bytes: %v", ErrCodecFailure, n, len(dst), err)
	}
	return nil
}

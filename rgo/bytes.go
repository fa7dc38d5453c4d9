package rgo

import (
	"encoding/binary"
	"fmt"
)

// u32At reads a little-endian word at off. Any read that doesn't fit the
// buffer is reported instead of panicking.
func u32At(data []byte, off int) (uint32, error) {
	if off < 0 || off > len(data)-4 {
		return 0, fmt.Errorf("%w: read of 4 bytes at 0x%X, archive is 0x%X bytes", ErrMalformedArchive, off, len(data))
	}
	return binary.LittleEndian.Uint32(data[off : off+4]), nil
}

// span returns data[off:off+n] after checking it is inside the buffer.
func span(data []byte, off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > len(data) || n > len(data)-off {
		return nil, fmt.Errorf("%w: range 0x%X+0x%X outside archive of 0x%X bytes", ErrMalformedArchive, off, n, len(data))
	}
	return data[off : off+n], nil
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

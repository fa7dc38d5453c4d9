package rgo

import "fmt"

const (
	ringSize  = 4096
	ringMask  = ringSize - 1
	ringStart = 0xFEE
	minMatch  = 3
)

// lzssDecoder holds the sliding window of the PS2 codec. Each decode gets
// its own, so images can be decoded concurrently.
type lzssDecoder struct {
	ring [ringSize]byte
	pos  int
}

func newLZSSDecoder() *lzssDecoder {
	return &lzssDecoder{pos: ringStart}
}

func (d *lzssDecoder) put(b byte) {
	d.ring[d.pos] = b
	d.pos = (d.pos + 1) & ringMask
}

// decode fills dst from src. One flag byte covers the next 8 items, LSB
// first: 1 is a literal, 0 a 2-byte reference into the window (12-bit
// offset, 4-bit length + 3). There is no end marker, the stream ends when
// dst is full.
func (d *lzssDecoder) decode(dst, src []byte) error {
	sp, dp := 0, 0
	var flags uint32
	for dp < len(dst) {
		flags >>= 1
		if flags&0x100 == 0 {
			if sp >= len(src) {
				return fmt.Errorf("%w: lzss input ended at %d of %d bytes", ErrCodecFailure, dp, len(dst))
			}
			flags = uint32(src[sp]) | 0xFF00
			sp++
		}

		if flags&1 != 0 {
			if sp >= len(src) {
				return fmt.Errorf("%w: lzss input ended reading a literal at %d of %d bytes", ErrCodecFailure, dp, len(dst))
			}
			b := src[sp]
			sp++
			dst[dp] = b
			dp++
			d.put(b)
			continue
		}

		if sp+1 >= len(src) {
			return fmt.Errorf("%w: lzss input ended reading a reference at %d of %d bytes", ErrCodecFailure, dp, len(dst))
		}
		b0, b1 := int(src[sp]), int(src[sp+1])
		sp += 2
		off := (b0 | (b1&0xF0)<<4) & ringMask
		n := b1&0x0F + minMatch
		for j := 0; j < n && dp < len(dst); j++ {
			b := d.ring[(off+j)&ringMask]
			dst[dp] = b
			dp++
			d.put(b)
		}
	}
	return nil
}

// DecompressLZSS decodes a PS2 subfile stream into exactly size bytes.
func DecompressLZSS(src []byte, size int) ([]byte, error) {
	dst := make([]byte, size)
	if err := newLZSSDecoder().decode(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

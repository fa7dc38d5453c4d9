package rgo

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// literalLZSS encodes src using literals only.
func literalLZSS(src []byte) []byte {
	var out []byte
	for i := 0; i < len(src); i += 8 {
		out = append(out, 0xFF)
		end := min(i+8, len(src))
		out = append(out, src[i:end]...)
	}
	return out
}

func ps2Subfile(pix []byte) []byte {
	return append(le32(uint32(len(pix))), literalLZSS(pix)...)
}

func pspSubfile(t *testing.T, pix []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(pix); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	sub := append(le32(uint32(len(pix))), make([]byte, 12)...)
	return append(sub, buf.Bytes()...)
}

// imageRegion lays out a header and its subfiles and pads the result the
// way the chain expects, with a nonzero checksum in the last 16 bytes.
func imageRegion(subs ...[]byte) []byte {
	n := len(subs)
	off := 4 + (n+1)*4
	region := le32(uint32(n))
	offsets := []uint32{uint32(off)}
	for _, s := range subs {
		off += len(s)
		offsets = append(offsets, uint32(off))
	}
	for _, o := range offsets {
		region = append(region, le32(o)...)
	}
	for _, s := range subs {
		region = append(region, s...)
	}
	size := len(region)
	size += size%16 + 16
	size = alignUp(size, 1024)
	region = append(region, make([]byte, size-len(region))...)
	copy(region[size-16:], bytes.Repeat([]byte{0xA5}, 16))
	return region
}

// opaquePalette returns n colors with PS2 alpha 0x80 and no zero words.
func opaquePalette(n int) []byte {
	p := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		p = append(p, byte(i), byte(i>>8)|0x10, 0x20, 0x80)
	}
	return p
}

// archive concatenates parts, zero padding up to start before the first
// image region when start is nonzero.
func archive(palettes []byte, start int, regions ...[]byte) []byte {
	data := append([]byte(nil), palettes...)
	if start > len(data) {
		data = append(data, make([]byte, start-len(data))...)
	}
	for _, r := range regions {
		data = append(data, r...)
	}
	return data
}

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)*7 + seed
	}
	return b
}

package rgo

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestDecompressLZSS(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int
		want []byte
	}{
		{
			name: "literals",
			src:  literalLZSS([]byte("hello, world")),
			size: 12,
			want: []byte("hello, world"),
		},
		{
			name: "overlapping reference",
			// ABC at 0xFEE, then 6 bytes from 0xFEE
			src:  []byte{0x07, 'A', 'B', 'C', 0xEE, 0xF3},
			size: 9,
			want: []byte("ABCABCABC"),
		},
		{
			name: "reference into the zeroed window",
			src:  []byte{0x00, 0x00, 0x02},
			size: 5,
			want: make([]byte, 5),
		},
		{
			name: "reference wraps the window",
			// literal X lands at 0xFEE; reference 0xFFF..0x001 reads zeros
			src:  []byte{0x01, 'X', 0xFF, 0xF0},
			size: 4,
			want: []byte{'X', 0, 0, 0},
		},
		{
			name: "stops mid reference",
			src:  []byte{0x07, 'A', 'B', 'C', 0xEE, 0xFF},
			size: 5,
			want: []byte("ABCAB"),
		},
		{
			name: "zero length",
			src:  nil,
			size: 0,
			want: []byte{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecompressLZSS(tt.src, tt.size)
			if err != nil {
				t.Fatalf("DecompressLZSS: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecompressLZSSTruncated(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int
	}{
		{"no flag byte", nil, 1},
		{"missing literal", []byte{0xFF, 'A'}, 4},
		{"half a reference", []byte{0x00, 0x12}, 3},
		{"out of flags", []byte{0xFF, 1, 2, 3, 4, 5, 6, 7, 8}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecompressLZSS(tt.src, tt.size)
			if !errors.Is(err, ErrCodecFailure) {
				t.Fatalf("got %v, want ErrCodecFailure", err)
			}
		})
	}
}

func TestDecompressLZSSDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		src := make([]byte, rng.Intn(512))
		rng.Read(src)
		size := rng.Intn(2048)

		a, errA := DecompressLZSS(src, size)
		b, errB := DecompressLZSS(src, size)
		if (errA == nil) != (errB == nil) || !bytes.Equal(a, b) {
			t.Fatalf("run %d: decodes differ", i)
		}
		if errA != nil && !errors.Is(errA, ErrCodecFailure) {
			t.Fatalf("run %d: unexpected error %v", i, errA)
		}
		if errA == nil && len(a) != size {
			t.Fatalf("run %d: got %d bytes, want %d", i, len(a), size)
		}
	}
}

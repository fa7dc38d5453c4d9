package rgo

import (
	"bytes"
	"errors"
	"testing"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name   string
		region []byte
		want   Platform
	}{
		{"ps2", imageRegion(ps2Subfile(pattern(32, 1))), PlatformPS2},
		{"psp", imageRegion(pspSubfile(t, pattern(32, 1))), PlatformPSP},
		{"empty", imageRegion(), PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ReadImageHeader(tt.region, 0)
			if err != nil {
				t.Fatal(err)
			}
			got, err := DetectPlatform(h)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecompress(t *testing.T) {
	a, b := pattern(700, 1), pattern(1300, 2)
	tests := []struct {
		name     string
		region   []byte
		platform Platform
	}{
		{"ps2", imageRegion(ps2Subfile(a), ps2Subfile(b)), PlatformPS2},
		{"psp", imageRegion(pspSubfile(t, a), pspSubfile(t, b)), PlatformPSP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ReadImageHeader(tt.region, 0)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Decompress(h, tt.platform, DefaultOptions())
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			total, err := DecompressedSize(h)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != total {
				t.Fatalf("len %d, declared %d", len(got), total)
			}
			if !bytes.Equal(got, append(append([]byte(nil), a...), b...)) {
				t.Fatal("output is not the concatenated subfiles")
			}
		})
	}
}

// Two 8-byte subfiles with the 20 and 16 byte regions the format allows.
func TestDecompressTwoSmallSubfiles(t *testing.T) {
	pix := []byte("ABCDEFGH")
	s0 := append(ps2Subfile(pix), make([]byte, 20-13)...)
	s1 := append(le32(8), literalLZSS([]byte("IJKLMNOP"))[:9]...)
	s1 = append(s1, make([]byte, 16-13)...)
	region := imageRegion(s0, s1)

	h, err := ReadImageHeader(region, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := []uint32{h.Offsets[1] - h.Offsets[0], h.Offsets[2] - h.Offsets[1]}; got[0] != 20 || got[1] != 16 {
		t.Fatalf("subfile lengths %v", got)
	}
	total, err := DecompressedSize(h)
	if err != nil {
		t.Fatal(err)
	}
	if total != 16 {
		t.Fatalf("declared %d bytes, want 16", total)
	}
	got, err := Decompress(h, PlatformPS2, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ABCDEFGHIJKLMNOP" {
		t.Fatalf("got %q", got)
	}
}

func TestDecompressEmpty(t *testing.T) {
	h, err := ReadImageHeader(imageRegion(), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []Platform{PlatformUnknown, PlatformPS2, PlatformPSP} {
		got, err := Decompress(h, p, DefaultOptions())
		if err != nil {
			t.Fatalf("%v: %v", p, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("%v: got %v, want empty buffer", p, got)
		}
	}
}

func TestDecompressFailures(t *testing.T) {
	truncated := ps2Subfile(pattern(64, 1))
	truncated = truncated[:len(truncated)-10]

	tests := []struct {
		name     string
		region   []byte
		platform Platform
		opts     Options
		want     error
	}{
		{"truncated lzss", imageRegion(truncated), PlatformPS2, DefaultOptions(), ErrCodecFailure},
		{"ps2 data read as psp", imageRegion(ps2Subfile(pattern(64, 1))), PlatformPSP, DefaultOptions(), ErrCodecFailure},
		{"over the size limit", imageRegion(ps2Subfile(pattern(64, 1))), PlatformPS2, Options{MaxImageBytes: 63}, ErrMalformedArchive},
		{"subfile without a size field", imageRegion(ps2Subfile(pattern(8, 1)), []byte{1, 2}), PlatformPS2, DefaultOptions(), ErrMalformedArchive},
		{"subfile shorter than its prefix", imageRegion(append(le32(4), 1, 2, 3, 4)), PlatformPSP, DefaultOptions(), ErrMalformedArchive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ReadImageHeader(tt.region, 0)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Decompress(h, tt.platform, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Fatal("partial output returned with error")
			}
		})
	}

	h, _ := ReadImageHeader(imageRegion(ps2Subfile(pattern(8, 1))), 0)
	if _, err := Decompress(h, PlatformUnknown, DefaultOptions()); err == nil {
		t.Fatal("unknown platform decoded")
	}
}

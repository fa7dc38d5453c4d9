package rgo

import "fmt"

type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformPS2
	PlatformPSP
)

func (p Platform) String() string {
	switch p {
	case PlatformPS2:
		return "ps2"
	case PlatformPSP:
		return "psp"
	}
	return "unknown"
}

// payloadSkip is how far into a subfile region the compressed stream
// starts. PSP subfiles are 16-byte aligned, so the size field is followed by
// 12 bytes of padding.
func (p Platform) payloadSkip() int {
	if p == PlatformPSP {
		return 16
	}
	return 4
}

// DetectPlatform looks at the word after the first subfile's size field:
// PS2 streams start right there, PSP has alignment padding. A header with
// no subfiles has nothing to look at and reports PlatformUnknown.
func DetectPlatform(h *ImageHeader) (Platform, error) {
	if h.Count == 0 {
		return PlatformUnknown, nil
	}
	w, err := u32At(h.data, h.Offset+int(h.Offsets[0])+4)
	if err != nil {
		return PlatformUnknown, fmt.Errorf("detecting platform of image at 0x%X: %w", h.Offset, err)
	}
	if w != 0 {
		return PlatformPS2, nil
	}
	return PlatformPSP, nil
}

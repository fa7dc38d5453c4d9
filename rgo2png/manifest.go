package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"

	"rgotools/rgo"
)

type imageEntry struct {
	Index       int    `json:"index"`
	File        string `json:"file,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Offset      string `json:"offset,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Colors      int    `json:"colors,omitempty"`
	Hash        string `json:"xxhash,omitempty"`
	DuplicateOf string `json:"duplicateOf,omitempty"`
	Error       string `json:"error,omitempty"`
}

type archiveManifest struct {
	Archive  string       `json:"archive"`
	Layout   string       `json:"layout"`
	Images   int          `json:"images"`
	Palettes []int        `json:"paletteColors"`
	Entries  []imageEntry `json:"entries"`
}

// imageDigest hashes pixels and palette together, so the same pixels under
// a different palette count as different images.
func imageDigest(img *rgo.Image) uint64 {
	d := xxhash.New()
	d.Write(img.Pix)
	d.Write(img.Palette)
	return d.Sum64()
}

func writeManifest(path string, m *archiveManifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(b, '\n'), 0644); err != nil {
		return fmt.Errorf("writing manifest: %v", err)
	}
	return nil
}

// seenImages remembers exported digests and output name prefixes across
// every archive of a batch.
type seenImages struct {
	mu      sync.Mutex
	m       map[uint64]string
	outputs map[string]string
}

func newSeenImages() *seenImages {
	return &seenImages{m: make(map[uint64]string), outputs: make(map[string]string)}
}

// claimOutput reserves the output prefix for archive and returns "" if it
// was free, otherwise the archive that already writes there.
func (s *seenImages) claimOutput(prefix, archive string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.outputs[prefix]; ok && prev != archive {
		return prev
	}
	s.outputs[prefix] = archive
	return ""
}

// claim records file under digest and returns "" if it is the first one,
// otherwise the file already holding that image.
func (s *seenImages) claim(digest uint64, file string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.m[digest]; ok {
		return prev
	}
	s.m[digest] = file
	return ""
}

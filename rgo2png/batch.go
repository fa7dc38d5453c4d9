package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"rgotools/rgo"
)

type summary struct {
	archives int
	exported int
	skipped  int
	failed   int // images and whole archives that could not be converted
}

func (s *summary) add(o summary) {
	s.archives += o.archives
	s.exported += o.exported
	s.skipped += o.skipped
	s.failed += o.failed
}

// runBatch converts every archive. Archives are independent: a failure is
// logged and counted, the other workers keep going.
func runBatch(paths []string, cfg config) summary {
	var (
		mu  sync.Mutex
		sum summary
		g   errgroup.Group
	)
	seen := newSeenImages()
	if cfg.outDir != "" && cfg.root == "" {
		cfg.root = commonDir(paths)
	}
	g.SetLimit(cfg.jobs)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			st, err := convertArchive(path, cfg, seen)
			if err != nil {
				slog.Warn("archiveError", "path", path, "err", err)
				st.failed++
			}
			mu.Lock()
			sum.add(st)
			mu.Unlock()
			return nil
		})
	}
	// workers report through sum, never through the group
	_ = g.Wait()
	return sum
}

// archiveOutDir is <path>_out, or with -o the archive's directory relative
// to cfg.root mirrored under cfg.outDir.
func archiveOutDir(path string, cfg config) string {
	if cfg.outDir == "" {
		return path + "_out"
	}
	if cfg.root == "" {
		return cfg.outDir
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return cfg.outDir
	}
	rel, err := filepath.Rel(cfg.root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cfg.outDir
	}
	return filepath.Join(cfg.outDir, rel)
}

// commonDir returns the deepest absolute directory that contains every path.
func commonDir(paths []string) string {
	var root []string
	for i, p := range paths {
		dir, err := filepath.Abs(filepath.Dir(p))
		if err != nil {
			return ""
		}
		parts := strings.Split(dir, string(filepath.Separator))
		if i == 0 {
			root = parts
			continue
		}
		n := 0
		for n < len(root) && n < len(parts) && root[n] == parts[n] {
			n++
		}
		root = root[:n]
	}
	if len(root) == 0 {
		return ""
	}
	if dir := strings.Join(root, string(filepath.Separator)); dir != "" {
		return dir
	}
	return string(filepath.Separator)
}

func convertArchive(path string, cfg config, seen *seenImages) (summary, error) {
	st := summary{archives: 1}
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	a, err := rgo.Open(data)
	if errors.Is(err, rgo.ErrNotArchive) {
		slog.Info("notAnArchive", "path", path, "err", err)
		st.skipped++
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	if a.Layout.Kind == rgo.LayoutMapData {
		slog.Info("mapData", "path", path)
		st.skipped++
		return st, nil
	}

	outDir := archiveOutDir(path, cfg)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return st, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if prev := seen.claimOutput(filepath.Join(outDir, base), path); prev != "" {
		return st, fmt.Errorf("%s: output %s_* already used by %s", path, filepath.Join(outDir, base), prev)
	}
	m := &archiveManifest{Archive: filepath.Base(path), Layout: a.Layout.Kind.String(), Images: a.Len()}
	for i := 0; i < a.Len(); i++ {
		if p, err := a.Palette(i); err == nil {
			m.Palettes = append(m.Palettes, p.Colors())
		}
	}

	for _, r := range a.DecodeAll(cfg.opts) {
		e := imageEntry{Index: r.Index}
		if r.Err != nil {
			slog.Warn("imageError", "path", path, "image", r.Index, "err", r.Err)
			e.Error = r.Err.Error()
			m.Entries = append(m.Entries, e)
			st.failed++
			continue
		}
		img := r.Image
		e.Platform = img.Platform.String()
		e.Offset = fmt.Sprintf("0x%X", img.Offset)
		e.Width, e.Height = img.Width, img.Height
		e.Colors = img.Palette.Colors()
		if len(img.Pix) == 0 {
			slog.Debug("emptyImage", "path", path, "image", r.Index)
			m.Entries = append(m.Entries, e)
			st.skipped++
			continue
		}

		digest := imageDigest(img)
		e.Hash = fmt.Sprintf("%016x", digest)
		name := fmt.Sprintf("%s_%03d.%s", base, r.Index, cfg.format)
		file := filepath.Join(outDir, name)
		if cfg.dedup {
			if prev := seen.claim(digest, file); prev != "" {
				slog.Debug("duplicateImage", "path", path, "image", r.Index, "of", prev)
				e.DuplicateOf = prev
				m.Entries = append(m.Entries, e)
				st.skipped++
				continue
			}
		}
		if err := writeRaster(img, file, cfg); err != nil {
			slog.Warn("writeError", "path", file, "err", err)
			e.Error = err.Error()
			m.Entries = append(m.Entries, e)
			st.failed++
			continue
		}
		e.File = name
		m.Entries = append(m.Entries, e)
		st.exported++
		slog.Debug("exported", "file", file, "platform", e.Platform, "width", img.Width, "height", img.Height)
	}

	if cfg.manifest {
		if err := writeManifest(filepath.Join(outDir, base+".json"), m); err != nil {
			return st, err
		}
	}
	return st, nil
}

package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	"golang.org/x/sync/errgroup"
)

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// FormatSize 格式化文件大小: GB above 1 GiB, MB above 1 MiB, KB otherwise.
func FormatSize(size int64) string {
	switch {
	case size >= gib:
		return fmt.Sprintf("%.2f GB", float64(size)/gib)
	case size >= mib:
		return fmt.Sprintf("%.2f MB", float64(size)/mib)
	default:
		return fmt.Sprintf("%.2f KB", float64(size)/kib)
	}
}

// SizeReport lists the direct children of dir with their (recursive) sizes,
// largest first. Subdirectory sizes are computed concurrently.
func (s *Scanner) SizeReport(ctx context.Context, dir string) ([]model.SizedEntry, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	infos, err := readDir(s.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	entries := make([]model.SizedEntry, len(infos))
	workers := s.SizeWorkers
	if workers <= 0 {
		workers = DefaultSizeWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, info := range infos {
		path := filepath.Join(dir, info.Name())
		entries[i] = model.SizedEntry{
			FileEntry: model.FileEntry{
				Name:    info.Name(),
				Path:    path,
				IsDir:   info.IsDir(),
				IsVideo: !info.IsDir() && parser.IsVideoFile(info.Name()),
			},
			Size: info.Size(),
		}
		if !info.IsDir() {
			continue
		}
		g.Go(func() error {
			size, err := s.DirectorySize(gctx, path)
			if err != nil {
				return err
			}
			entries[i].Size = size
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancelled parent may have stopped Go from scheduling the remaining work
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Size > entries[j].Size })
	for i := range entries {
		entries[i].SizeHuman = FormatSize(entries[i].Size)
	}
	return entries, nil
}

// IsCancelled reports whether err is a cancellation outcome.
func IsCancelled(err error) bool {
	return errors.Is(err, model.ErrCancelled)
}

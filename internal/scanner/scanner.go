// Package scanner walks a media tree for video files and directory sizes.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const DefaultSizeWorkers = 4

// Scanner 递归扫描目录. Bus may be nil.
type Scanner struct {
	Fs          afero.Fs
	Bus         event.Bus
	SizeWorkers int
}

func New(fs afero.Fs, bus event.Bus) *Scanner {
	return &Scanner{Fs: fs, Bus: bus, SizeWorkers: DefaultSizeWorkers}
}

// ScanProgress is published after each directory of a media scan.
type ScanProgress struct {
	Root      string `json:"root"`
	Directory string `json:"directory"`
	Found     int    `json:"found"`
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrCancelled, err)
	}
	return nil
}

func readDir(afs afero.Fs, dir string) ([]os.FileInfo, error) {
	f, err := afs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdir(-1)
}

// Scan returns every video file below root. The context is checked before
// each directory entry and before descending; once it is done the partial
// result is dropped and an ErrCancelled error returned. An unreadable
// subdirectory is logged and skipped, an unreadable root is an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]model.VideoFile, error) {
	var files []model.VideoFile
	stack := []string{root}

	for len(stack) > 0 {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		infos, err := readDir(s.Fs, dir)
		if err != nil {
			if dir == root {
				return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
			}
			log.Warnf("Scanner: failed to read directory %s: %v", dir, err)
			continue
		}

		var subdirs []string
		for _, info := range infos {
			if err := cancelled(ctx); err != nil {
				return nil, err
			}
			path := filepath.Join(dir, info.Name())
			switch {
			case info.IsDir():
				subdirs = append(subdirs, path)
			case info.Mode().IsRegular() && parser.IsVideoFile(info.Name()):
				files = append(files, model.VideoFile{
					Path:      path,
					FileName:  info.Name(),
					Extension: parser.Extension(info.Name()),
					Size:      info.Size(),
				})
			}
		}
		// keep directory order: first subdirectory is visited next
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}

		event.Publish(s.Bus, event.EventScanProgress, ScanProgress{Root: root, Directory: dir, Found: len(files)})
	}

	log.Infof("Scanner: found %d video files under %s", len(files), root)
	return files, nil
}

// DirectorySize sums the sizes of the regular files below root. Unreadable
// directories, root included, count as empty; only cancellation aborts.
func (s *Scanner) DirectorySize(ctx context.Context, root string) (int64, error) {
	var total int64
	stack := []string{root}

	for len(stack) > 0 {
		if err := cancelled(ctx); err != nil {
			return 0, err
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		infos, err := readDir(s.Fs, dir)
		if err != nil {
			log.Warnf("Scanner: failed to read directory %s: %v", dir, err)
			continue
		}
		for _, info := range infos {
			if err := cancelled(ctx); err != nil {
				return 0, err
			}
			switch {
			case info.IsDir():
				stack = append(stack, filepath.Join(dir, info.Name()))
			case info.Mode().IsRegular():
				total += info.Size()
			}
		}
	}
	return total, nil
}

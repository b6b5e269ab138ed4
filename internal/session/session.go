// Package session owns the currently selected directory.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Session 保存当前目录. Every read and every rename batch goes through one
// exclusive lock, so two batches never interleave on the selected directory.
type Session struct {
	mu      sync.Mutex
	fs      afero.Fs
	bus     event.Bus
	current string

	// HomeDir resolves the user's home directory; replaceable in tests.
	HomeDir func() (string, error)
}

// New opens a session at start, or at the home directory when start is empty.
func New(fs afero.Fs, bus event.Bus, start string) (*Session, error) {
	s := &Session{fs: fs, bus: bus, HomeDir: os.UserHomeDir}
	if start == "" {
		home, err := s.HomeDir()
		if err != nil {
			return nil, model.InputError("no home directory: %v", err)
		}
		start = home
	}
	dir, err := s.checkDir(start)
	if err != nil {
		return nil, err
	}
	s.current = dir
	return s, nil
}

func (s *Session) checkDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", model.InputError("invalid path %q: %v", path, err)
	}
	info, err := s.fs.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", model.InputError("%s is not a directory", abs)
	}
	return abs, nil
}

// Current returns the selected directory.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) setLocked(dir string) {
	s.current = dir
	log.Debugf("Session: current directory is %s", dir)
	event.Publish(s.bus, event.EventDirectoryChanged, dir)
}

// ChangeDirectory selects path, which must be an existing directory.
func (s *Session) ChangeDirectory(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir, err := s.checkDir(path)
	if err != nil {
		return err
	}
	s.setLocked(dir)
	return nil
}

// Parent moves one level up. At the filesystem root it is an input error.
func (s *Session) Parent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	parent := filepath.Dir(s.current)
	if parent == s.current {
		return model.InputError("no parent directory found")
	}
	s.setLocked(parent)
	return nil
}

// Home selects the user's home directory.
func (s *Session) Home() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	home, err := s.HomeDir()
	if err != nil || home == "" {
		return model.InputError("failed to get home directory")
	}
	dir, err := s.checkDir(home)
	if err != nil {
		return err
	}
	s.setLocked(dir)
	return nil
}

// Hierarchy lists the current directory and its ancestors, innermost first.
// The root entry uses the root path as its name.
func (s *Session) Hierarchy() []model.DirectoryLevel {
	s.mu.Lock()
	path := s.current
	s.mu.Unlock()

	var levels []model.DirectoryLevel
	for {
		parent := filepath.Dir(path)
		if parent == path {
			levels = append(levels, model.DirectoryLevel{FullPath: path, DirName: path})
			return levels
		}
		levels = append(levels, model.DirectoryLevel{FullPath: path, DirName: filepath.Base(path)})
		path = parent
	}
}

// List returns the entries of the current directory in native order.
func (s *Session) List() ([]model.FileEntry, error) {
	var entries []model.FileEntry
	err := s.Do(func(dir string) error {
		f, err := s.fs.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		defer f.Close()
		infos, err := f.Readdir(-1)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, info := range infos {
			entries = append(entries, model.FileEntry{
				Name:    info.Name(),
				Path:    filepath.Join(dir, info.Name()),
				IsDir:   info.IsDir(),
				IsVideo: !info.IsDir() && parser.IsVideoFile(info.Name()),
			})
		}
		return nil
	})
	return entries, err
}

// Do runs fn with the current directory while holding the session lock.
func (s *Session) Do(fn func(dir string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.current)
}

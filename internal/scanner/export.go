package scanner

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	MediaFilesPrefix = "media_files"
	FileSizesPrefix  = "file_sizes"
)

// ExportName builds the default export name for dir, e.g. "media_files_Show".
func ExportName(prefix, dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return prefix
	}
	return prefix + "_" + base
}

// ExportList writes one line per name to path, replacing any existing file.
func ExportList(afs afero.Fs, path string, lines []string) error {
	f, err := afs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

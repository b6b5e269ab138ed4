package renamer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	"github.com/spf13/afero"
)

// taggedFile is a video file together with its parsed episode tag.
type taggedFile struct {
	model.VideoFile
	Tag parser.EpisodeTag
}

// ListVideoFiles returns the regular video files directly inside dir, in the
// order the filesystem yields them. The listing is not re-sorted.
func ListVideoFiles(afs afero.Fs, dir string) ([]model.VideoFile, error) {
	f, err := afs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []model.VideoFile
	for _, info := range infos {
		if !info.Mode().IsRegular() || !parser.IsVideoFile(info.Name()) {
			continue
		}
		files = append(files, model.VideoFile{
			Path:      filepath.Join(dir, info.Name()),
			FileName:  info.Name(),
			Extension: parser.Extension(info.Name()),
			Size:      info.Size(),
		})
	}
	return files, nil
}

func listTaggedFiles(afs afero.Fs, dir string) ([]taggedFile, error) {
	files, err := ListVideoFiles(afs, dir)
	if err != nil {
		return nil, err
	}
	var tagged []taggedFile
	for _, f := range files {
		if tag, ok := parser.ParseEpisodeTag(f.FileName); ok {
			tagged = append(tagged, taggedFile{VideoFile: f, Tag: tag})
		}
	}
	return tagged, nil
}

// renameNoClobber renames within dir and refuses to overwrite an existing
// entry, so two files mapping to one name fail on the second rename. The only
// existing target let through is the source itself, as on a case-insensitive
// filesystem renaming "x.mkv" to "X.mkv".
func renameNoClobber(afs afero.Fs, dir, oldName, newName string) error {
	oldPath := filepath.Join(dir, oldName)
	newPath := filepath.Join(dir, newName)
	newInfo, err := afs.Stat(newPath)
	switch {
	case err == nil:
		oldInfo, oerr := afs.Stat(oldPath)
		if oerr != nil {
			return oerr
		}
		// os.SameFile is false for non-OS FileInfo, so in-memory filesystems never alias
		if !os.SameFile(oldInfo, newInfo) {
			return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: os.ErrExist}
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	return afs.Rename(oldPath, newPath)
}

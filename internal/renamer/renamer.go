package renamer

import (
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultMinEpisode is the lowest episode number a renumber may produce.
const DefaultMinEpisode = 1

// Renamer 对单个目录中的视频文件执行批量重命名.
// Every call enumerates the directory afresh; nothing is cached between calls.
// Callers serialize batches against one directory (see session.Session).
type Renamer struct {
	Fs         afero.Fs
	MinEpisode int
}

// New returns a Renamer over fs with the default renumber floor.
func New(fs afero.Fs) *Renamer {
	return &Renamer{Fs: fs, MinEpisode: DefaultMinEpisode}
}

// apply performs the non-trivial pairs of plan in order and stops at the first failure.
// Pairs renamed before a failure stay renamed.
func (r *Renamer) apply(dir string, plan []model.RenamePair) (int, error) {
	renamed := 0
	for _, p := range plan {
		if p.NewName == p.OldName {
			continue
		}
		if err := renameNoClobber(r.Fs, dir, p.OldName, p.NewName); err != nil {
			log.WithFields(log.Fields{"dir": dir, "from": p.OldName, "to": p.NewName}).
				Errorf("Renamer: rename failed after %d files: %v", renamed, err)
			return renamed, err
		}
		log.WithField("dir", dir).Infof("Renamer: %s -> %s", p.OldName, p.NewName)
		renamed++
	}
	return renamed, nil
}

// CurrentTitles lists the title already appended after the tag of each tagged
// video file, in directory order. Files without a title yield "".
func (r *Renamer) CurrentTitles(dir string) ([]string, error) {
	files, err := listTaggedFiles(r.Fs, dir)
	if err != nil {
		return nil, err
	}
	return lo.Map(files, func(f taggedFile, _ int) string {
		return parser.TitleAfterTag(f.FileName)
	}), nil
}

package renamer

import (
	"math"
	"slices"
	"sort"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// checkRenumber loads the tagged files of dir and rejects delta when the
// smallest episode would fall below r.MinEpisode.
func (r *Renamer) checkRenumber(dir string, delta int) ([]taggedFile, error) {
	files, err := listTaggedFiles(r.Fs, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, model.InputError("no episodes found in %s", dir)
	}

	minEpisode := math.MaxInt
	for _, f := range files {
		minEpisode = min(minEpisode, f.Tag.Episode)
	}
	if delta < 0 && minEpisode+delta < r.MinEpisode {
		return nil, &model.PreconditionError{Minimum: minEpisode, Delta: delta, Floor: r.MinEpisode}
	}
	return files, nil
}

// shiftedName returns the renamed file name, or the old one when the shifted
// number would be negative.
func shiftedName(f taggedFile, delta int) string {
	name, ok := parser.ShiftEpisode(f.FileName, delta)
	if !ok {
		log.Warnf("Renamer: skipping %s, episode %d%+d would be negative", f.FileName, f.Tag.Episode, delta)
		return f.FileName
	}
	return name
}

// PreviewRenumber lists the name every tagged file would get, in directory
// order. It runs the same precondition check as ApplyRenumber.
func (r *Renamer) PreviewRenumber(dir string, delta int) ([]model.RenamePair, error) {
	files, err := r.checkRenumber(dir, delta)
	if err != nil {
		return nil, err
	}
	return lo.Map(files, func(f taggedFile, _ int) model.RenamePair {
		return model.RenamePair{OldName: f.FileName, NewName: shiftedName(f, delta)}
	}), nil
}

// ApplyRenumber shifts the episode counter of every tagged file by delta,
// keeping digit widths. The precondition is checked before any rename.
//
// Files are renamed in episode order so that no rename targets a name still
// held by a file that has not moved yet: highest episode first for positive
// deltas, lowest first for negative ones.
func (r *Renamer) ApplyRenumber(dir string, delta int) (int, error) {
	files, err := r.checkRenumber(dir, delta)
	if err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, nil
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Tag.Episode < files[j].Tag.Episode
	})
	if delta > 0 {
		slices.Reverse(files)
	}

	plan := lo.Map(files, func(f taggedFile, _ int) model.RenamePair {
		return model.RenamePair{OldName: f.FileName, NewName: shiftedName(f, delta)}
	})
	return r.apply(dir, plan)
}

package renamer

import (
	"strings"

	"github.com/pokerjest/animateRenamer/internal/model"
)

// replacePlan substitutes target with replacement over the whole file name,
// extension included. Every video file is listed, changed or not.
func (r *Renamer) replacePlan(dir, target, replacement string) ([]model.RenamePair, error) {
	if target == "" {
		return nil, model.InputError("target string cannot be empty")
	}
	files, err := ListVideoFiles(r.Fs, dir)
	if err != nil {
		return nil, err
	}
	plan := make([]model.RenamePair, 0, len(files))
	for _, f := range files {
		plan = append(plan, model.RenamePair{
			OldName: f.FileName,
			NewName: strings.ReplaceAll(f.FileName, target, replacement),
		})
	}
	return plan, nil
}

// PreviewReplace shows the result of a case-sensitive literal replacement.
func (r *Renamer) PreviewReplace(dir, target, replacement string) ([]model.RenamePair, error) {
	return r.replacePlan(dir, target, replacement)
}

// ApplyReplace renames every video file whose name contains target. Two files
// mapping to the same name are not detected up front; the second rename fails
// with an "already exists" error.
func (r *Renamer) ApplyReplace(dir, target, replacement string) (int, error) {
	plan, err := r.replacePlan(dir, target, replacement)
	if err != nil {
		return 0, err
	}
	return r.apply(dir, plan)
}

package renamer

import (
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
)

// titleBaseName computes the new base name (no extension) for the i-th tagged
// file. Missing titles, and titles left blank once sanitized, strip any
// existing title.
func titleBaseName(f taggedFile, i int, titles []string) string {
	base := parser.StripOldSuffix(f.FileName, f.Tag)
	if i >= len(titles) {
		return base
	}
	title := parser.SanitizeFileName(titles[i])
	if title == "" {
		return base
	}
	return base + " - " + title
}

// GenerateNewNames returns the new base names, without extension, for the
// tagged video files of dir. The i-th tagged file in directory order receives
// the i-th title; the caller is responsible for aligning titles with that order.
// Untagged files are skipped and do not consume a title.
func (r *Renamer) GenerateNewNames(dir string, titles []string) ([]string, error) {
	files, err := listTaggedFiles(r.Fs, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for i, f := range files {
		names = append(names, titleBaseName(f, i, titles))
	}
	return names, nil
}

func (r *Renamer) titlePlan(dir string, titles []string) ([]model.RenamePair, error) {
	files, err := listTaggedFiles(r.Fs, dir)
	if err != nil {
		return nil, err
	}
	plan := make([]model.RenamePair, 0, len(files))
	for i, f := range files {
		newName := parser.SanitizeFileName(titleBaseName(f, i, titles))
		if f.Extension != "" {
			newName += "." + f.Extension
		}
		plan = append(plan, model.RenamePair{OldName: f.FileName, NewName: newName})
	}
	return plan, nil
}

// PreviewTitles returns the final file names ApplyTitles would produce, without touching the filesystem.
func (r *Renamer) PreviewTitles(dir string, titles []string) ([]model.RenamePair, error) {
	return r.titlePlan(dir, titles)
}

// ApplyTitles injects titles into the tagged file names of dir. A title count
// different from the file count is not an error: trailing files lose their title.
// Re-running with the same titles is a no-op.
func (r *Renamer) ApplyTitles(dir string, titles []string) (int, error) {
	plan, err := r.titlePlan(dir, titles)
	if err != nil {
		return 0, err
	}
	return r.apply(dir, plan)
}

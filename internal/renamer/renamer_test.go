package renamer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showDir = "/library/Show"

// recordingFs logs every rename and fails the test if a rename would land on
// an existing file.
type recordingFs struct {
	afero.Fs
	t       *testing.T
	renames []string
}

func (r *recordingFs) Rename(oldname, newname string) error {
	if _, err := r.Fs.Stat(newname); err == nil {
		r.t.Errorf("transient collision: %s -> %s", oldname, newname)
	}
	r.renames = append(r.renames, filepath.Base(oldname)+" -> "+filepath.Base(newname))
	return r.Fs.Rename(oldname, newname)
}

func newFs(t *testing.T, names ...string) *recordingFs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(showDir, 0o755))
	for _, n := range names {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(showDir, n), []byte("x"), 0o644))
	}
	return &recordingFs{Fs: fs, t: t}
}

func dirNames(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, showDir)
	require.NoError(t, err)
	var names []string
	for _, i := range infos {
		names = append(names, i.Name())
	}
	sort.Strings(names)
	return names
}

func TestListVideoFiles_SkipsDirsAndOtherFiles(t *testing.T) {
	fs := newFs(t, "Show S01E01.mkv", "notes.txt", "Show S01E01.srt")
	require.NoError(t, fs.Mkdir(filepath.Join(showDir, "Extras.mkv"), 0o755))

	files, err := ListVideoFiles(fs, showDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Show S01E01.mkv", files[0].FileName)
	assert.Equal(t, "mkv", files[0].Extension)
	assert.Equal(t, filepath.Join(showDir, "Show S01E01.mkv"), files[0].Path)
}

func TestListVideoFiles_MissingDirectory(t *testing.T) {
	_, err := ListVideoFiles(afero.NewMemMapFs(), "/nope")
	assert.Error(t, err)
}

func TestTitles_ThreeFilesTwoTitles(t *testing.T) {
	fs := newFs(t, "Show S01E01.mkv", "Show S01E02 - Old.mkv", "Show S01E03 - Old.mp4", "readme.txt")
	r := New(fs)

	names, err := r.GenerateNewNames(showDir, []string{"Alpha", "  "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Show S01E01 - Alpha", "Show S01E02", "Show S01E03"}, names)

	n, err := r.ApplyTitles(showDir, []string{"Alpha", ""})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"Show S01E01 - Alpha.mkv", "Show S01E02.mkv", "Show S01E03.mp4", "readme.txt"}, dirNames(t, fs))
}

func TestTitles_UntaggedFilesDoNotConsumeTitles(t *testing.T) {
	fs := newFs(t, "A trailer.mkv", "Show S01E01.mkv", "Show S01E02.mkv")
	r := New(fs)

	plan, err := r.PreviewTitles(showDir, []string{"One", "Two"})
	require.NoError(t, err)
	assert.Equal(t, []model.RenamePair{
		{OldName: "Show S01E01.mkv", NewName: "Show S01E01 - One.mkv"},
		{OldName: "Show S01E02.mkv", NewName: "Show S01E02 - Two.mkv"},
	}, plan)
	// preview does not touch the directory
	assert.Empty(t, fs.renames)
}

func TestTitles_SanitizedAndIdempotent(t *testing.T) {
	fs := newFs(t, "Show S01E01.mkv")
	r := New(fs)

	_, err := r.ApplyTitles(showDir, []string{"Who? Part 1: Start"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Show S01E01 - Who Part 1- Start.mkv"}, dirNames(t, fs))

	n, err := r.ApplyTitles(showDir, []string{"Who? Part 1: Start"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTitles_ForbiddenOnlyTitleCountsAsBlank(t *testing.T) {
	fs := newFs(t, "Show S01E01 - Old.mkv", "Show S01E02.mkv")
	r := New(fs)

	plan, err := r.PreviewTitles(showDir, []string{"???", "<|>"})
	require.NoError(t, err)
	assert.Equal(t, []model.RenamePair{
		{OldName: "Show S01E01 - Old.mkv", NewName: "Show S01E01.mkv"},
		{OldName: "Show S01E02.mkv", NewName: "Show S01E02.mkv"},
	}, plan)

	_, err = r.ApplyTitles(showDir, []string{"???", "<|>"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Show S01E01.mkv", "Show S01E02.mkv"}, dirNames(t, fs))
}

func TestCurrentTitles(t *testing.T) {
	fs := newFs(t, "Show S01E01 - Pilot.mkv", "Show S01E02.mkv", "cover.mkv")
	titles, err := New(fs).CurrentTitles(showDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pilot", ""}, titles)
}

func TestReplace_CaseSensitive(t *testing.T) {
	fs := newFs(t, "aXbx.mp4")
	r := New(fs)

	plan, err := r.PreviewReplace(showDir, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, []model.RenamePair{{OldName: "aXbx.mp4", NewName: "aXby.mp4"}}, plan)

	n, err := r.ApplyReplace(showDir, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"aXby.mp4"}, dirNames(t, fs))
}

func TestReplace_EmptyTargetRejected(t *testing.T) {
	// the directory does not exist: rejection happens before any I/O
	r := New(afero.NewMemMapFs())
	_, err := r.ApplyReplace("/missing", "", "y")
	assert.ErrorIs(t, err, model.ErrInput)
	_, err = r.PreviewReplace("/missing", "", "y")
	assert.ErrorIs(t, err, model.ErrInput)
}

func TestReplace_CanReachIntoExtension(t *testing.T) {
	fs := newFs(t, "Show.mkv")
	_, err := New(fs).ApplyReplace(showDir, ".mkv", ".mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{"Show.mp4"}, dirNames(t, fs))
}

func TestReplace_CollisionFailsSecondRename(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, n := range []string{"X S01E01.mkv", "XX S01E01.mkv"} {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(showDir, n), []byte("x"), 0o644))
	}

	n, err := New(fs).ApplyReplace(showDir, "X", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrExist))
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{" S01E01.mkv", "XX S01E01.mkv"}, dirNames(t, fs))
}

func TestReplace_CaseOnlyCollisionKeepsOtherFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(showDir, "x S01E01.mkv"), []byte("lower"), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(showDir, "X S01E01.mkv"), []byte("UPPER"), 0o644))

	n, err := New(fs).ApplyReplace(showDir, "x", "X")
	assert.ErrorIs(t, err, os.ErrExist)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"X S01E01.mkv", "x S01E01.mkv"}, dirNames(t, fs))

	data, err := afero.ReadFile(fs, filepath.Join(showDir, "X S01E01.mkv"))
	require.NoError(t, err)
	assert.Equal(t, "UPPER", string(data))
}

func TestReplace_CaseOnlyRenameOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x S01E01.mkv"), []byte("lower"), 0o644))

	n, err := New(afero.NewOsFs()).ApplyReplace(dir, "x", "X")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(dir, "X S01E01.mkv"))
	require.NoError(t, err)
	assert.Equal(t, "lower", string(data))
}

func tenEpisodes() []string {
	var names []string
	for i := 1; i <= 10; i++ {
		names = append(names, fmt.Sprintf("Show S01E%02d - T%d.mkv", i, i))
	}
	return names
}

func TestRenumber_PositiveShiftHasNoTransientCollision(t *testing.T) {
	fs := newFs(t, tenEpisodes()...)
	r := New(fs)

	n, err := r.ApplyRenumber(showDir, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "Show S01E10 - T10.mkv -> Show S01E11 - T10.mkv", fs.renames[0])
	assert.Equal(t, "Show S01E01 - T1.mkv -> Show S01E02 - T1.mkv", fs.renames[9])

	names := dirNames(t, fs)
	assert.Contains(t, names, "Show S01E02 - T1.mkv")
	assert.Contains(t, names, "Show S01E11 - T10.mkv")
	assert.NotContains(t, names, "Show S01E01 - T1.mkv")
}

func TestRenumber_CollidesWhenTitlesMatch(t *testing.T) {
	// identical suffixes make every shifted name collide unless order is right
	fs := newFs(t, "Show S01E01.mkv", "Show S01E02.mkv", "Show S01E03.mkv")
	r := New(fs)

	_, err := r.ApplyRenumber(showDir, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Show S01E03.mkv", "Show S01E04.mkv", "Show S01E05.mkv"}, dirNames(t, fs))

	_, err = r.ApplyRenumber(showDir, -2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Show S01E01.mkv", "Show S01E02.mkv", "Show S01E03.mkv"}, dirNames(t, fs))
	assert.Equal(t, "Show S01E03.mkv -> Show S01E01.mkv", fs.renames[3])
}

func TestRenumber_RejectsBelowFloorBeforeRenaming(t *testing.T) {
	fs := newFs(t, tenEpisodes()...)
	r := New(fs)

	_, err := r.ApplyRenumber(showDir, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPrecondition)
	var pe *model.PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Minimum)
	assert.Contains(t, err.Error(), "E01")
	assert.Empty(t, fs.renames)

	_, err = r.PreviewRenumber(showDir, -1)
	assert.ErrorIs(t, err, model.ErrPrecondition)
}

func TestRenumber_ZeroFloorAllowsEpisodeZero(t *testing.T) {
	fs := newFs(t, "Show S01E01.mkv")
	r := New(fs)
	r.MinEpisode = 0

	_, err := r.ApplyRenumber(showDir, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Show S01E00.mkv"}, dirNames(t, fs))
}

func TestRenumber_KeepsWidthAndSeason(t *testing.T) {
	fs := newFs(t, "Show S002E009.mkv", "Show S002E010.mkv", "Other.mkv")
	r := New(fs)

	plan, err := r.PreviewRenumber(showDir, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.RenamePair{
		{OldName: "Show S002E009.mkv", NewName: "Show S002E014.mkv"},
		{OldName: "Show S002E010.mkv", NewName: "Show S002E015.mkv"},
	}, plan)
}

func TestRenumber_NoEpisodes(t *testing.T) {
	fs := newFs(t, "Other.mkv")
	_, err := New(fs).ApplyRenumber(showDir, 1)
	assert.ErrorIs(t, err, model.ErrInput)
}

func TestRenumber_ZeroDeltaIsNoop(t *testing.T) {
	fs := newFs(t, "Show S01E01.mkv")
	n, err := New(fs).ApplyRenumber(showDir, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, fs.renames)
}

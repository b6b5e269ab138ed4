package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, bus event.Bus) *Session {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/user/Shows/Frieren", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/home/user/Shows/Frieren/Frieren S01E01.mkv", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/home/user/Shows/Frieren/notes.txt", nil, 0o644))

	s, err := New(fs, bus, "/home/user/Shows")
	require.NoError(t, err)
	s.HomeDir = func() (string, error) { return "/home/user", nil }
	return s
}

func TestSession_Navigation(t *testing.T) {
	s := newSession(t, nil)
	assert.Equal(t, "/home/user/Shows", s.Current())

	require.NoError(t, s.ChangeDirectory("/home/user/Shows/Frieren"))
	assert.Equal(t, "/home/user/Shows/Frieren", s.Current())

	require.NoError(t, s.Parent())
	assert.Equal(t, "/home/user/Shows", s.Current())

	require.NoError(t, s.Home())
	assert.Equal(t, "/home/user", s.Current())
}

func TestSession_ChangeDirectoryRejectsFiles(t *testing.T) {
	s := newSession(t, nil)
	err := s.ChangeDirectory("/home/user/Shows/Frieren/notes.txt")
	assert.ErrorIs(t, err, model.ErrInput)
	assert.Equal(t, "/home/user/Shows", s.Current())

	assert.Error(t, s.ChangeDirectory("/missing"))
}

func TestSession_ParentAtRoot(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.ChangeDirectory("/"))
	assert.ErrorIs(t, s.Parent(), model.ErrInput)
}

func TestSession_HomeUnavailable(t *testing.T) {
	s := newSession(t, nil)
	s.HomeDir = func() (string, error) { return "", errors.New("unset") }
	assert.ErrorIs(t, s.Home(), model.ErrInput)
}

func TestSession_Hierarchy(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.ChangeDirectory("/home/user/Shows/Frieren"))

	assert.Equal(t, []model.DirectoryLevel{
		{FullPath: "/home/user/Shows/Frieren", DirName: "Frieren"},
		{FullPath: "/home/user/Shows", DirName: "Shows"},
		{FullPath: "/home/user", DirName: "user"},
		{FullPath: "/home", DirName: "home"},
		{FullPath: "/", DirName: "/"},
	}, s.Hierarchy())
}

func TestSession_List(t *testing.T) {
	s := newSession(t, nil)
	require.NoError(t, s.ChangeDirectory("/home/user/Shows/Frieren"))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Frieren S01E01.mkv", entries[0].Name)
	assert.True(t, entries[0].IsVideo)
	assert.False(t, entries[1].IsVideo)
}

func TestSession_PublishesDirectoryChanged(t *testing.T) {
	bus := event.NewInMemoryBus()
	got := make(chan string, 1)
	bus.Subscribe(event.EventDirectoryChanged, func(e event.Event) { got <- e.Payload.(string) })

	s := newSession(t, bus)
	require.NoError(t, s.ChangeDirectory("/home/user/Shows/Frieren"))

	select {
	case dir := <-got:
		assert.Equal(t, "/home/user/Shows/Frieren", dir)
	case <-time.After(time.Second):
		t.Fatal("no directory_changed event")
	}
}

func TestSession_DoSerializesBatches(t *testing.T) {
	s := newSession(t, nil)
	var (
		mu      sync.Mutex
		active  int
		overlap bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(string) error {
				mu.Lock()
				active++
				overlap = overlap || active > 1
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.False(t, overlap)
}

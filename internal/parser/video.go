package parser

import (
	"path/filepath"
	"strings"
	"sync"
)

// DefaultVideoExtensions is used until SetVideoExtensions is called.
var DefaultVideoExtensions = []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v"}

var (
	videoMu   sync.RWMutex
	videoExts = toSet(DefaultVideoExtensions)
)

func toSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// SetVideoExtensions replaces the extension set (with or without leading dots).
// An empty list restores the defaults.
func SetVideoExtensions(exts []string) {
	if len(exts) == 0 {
		exts = DefaultVideoExtensions
	}
	set := toSet(exts)
	videoMu.Lock()
	videoExts = set
	videoMu.Unlock()
}

// IsVideoFile checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := Extension(path)
	if ext == "" {
		return false
	}
	videoMu.RLock()
	_, ok := videoExts[strings.ToLower(ext)]
	videoMu.RUnlock()
	return ok
}

// Extension returns the extension of path without the dot, as written.
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// TitleAfterTag 提取标记之后的标题部分: "Show S01E02 - Pilot.mkv" -> "Pilot".
// Returns "" when there is no tag or no title.
func TitleAfterTag(filename string) string {
	tag, ok := ParseEpisodeTag(filename)
	if !ok {
		return ""
	}
	rest := strings.TrimSuffix(filename[tag.End:], filepath.Ext(filename))
	rest = strings.TrimPrefix(strings.TrimSpace(rest), "- ")
	return strings.TrimSpace(rest)
}

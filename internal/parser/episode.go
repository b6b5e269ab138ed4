package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

// episodeTagRegex matches SxxExx / SxxxExxx, first occurrence only, case-sensitive.
var episodeTagRegex = regexp.MustCompile(`S(\d{2,3})E(\d{2,3})`)

// EpisodeTag 是文件名中的 S##E## 标记以及它在文件名中的位置
type EpisodeTag struct {
	Season       int
	Episode      int
	SeasonWidth  int
	EpisodeWidth int
	Start        int // byte offset of 'S'
	End          int // byte offset just past the last episode digit
}

// ParseEpisodeTag finds the first S##E## token in filename. ok is false when
// the name is not a tagged episode.
func ParseEpisodeTag(filename string) (EpisodeTag, bool) {
	loc := episodeTagRegex.FindStringSubmatchIndex(filename)
	if loc == nil {
		return EpisodeTag{}, false
	}
	seasonStr := filename[loc[2]:loc[3]]
	episodeStr := filename[loc[4]:loc[5]]
	// at most three digits, Atoi cannot fail
	season, _ := strconv.Atoi(seasonStr)
	episode, _ := strconv.Atoi(episodeStr)
	return EpisodeTag{
		Season:       season,
		Episode:      episode,
		SeasonWidth:  len(seasonStr),
		EpisodeWidth: len(episodeStr),
		Start:        loc[0],
		End:          loc[1],
	}, true
}

// String renders the tag with the digit widths it was written with.
// A number that outgrows its width is written in full.
func (t EpisodeTag) String() string {
	return fmt.Sprintf("S%0*dE%0*d", t.SeasonWidth, t.Season, t.EpisodeWidth, t.Episode)
}

// RewriteEpisodeTag replaces only the first tag span of filename. Names
// without a tag are returned unchanged.
func RewriteEpisodeTag(filename string, season, episode int) string {
	tag, ok := ParseEpisodeTag(filename)
	if !ok {
		return filename
	}
	tag.Season = season
	tag.Episode = episode
	return filename[:tag.Start] + tag.String() + filename[tag.End:]
}

// ShiftEpisode moves the episode counter of filename by delta, keeping the
// season and both widths. ok is false for untagged names and for results
// below zero.
func ShiftEpisode(filename string, delta int) (string, bool) {
	tag, ok := ParseEpisodeTag(filename)
	if !ok {
		return filename, false
	}
	next := tag.Episode + delta
	if next < 0 {
		return filename, false
	}
	return RewriteEpisodeTag(filename, tag.Season, next), true
}

// StripOldSuffix keeps everything up to and including the tag, dropping any
// title that was appended after it (and the extension).
func StripOldSuffix(filename string, tag EpisodeTag) string {
	return filename[:tag.End]
}

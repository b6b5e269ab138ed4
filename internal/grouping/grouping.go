// Package grouping splits a flat episode list into seasons.
package grouping

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/samber/lo"
)

// DefaultChunkSize is the number of episodes per season when the source has no season field.
const DefaultChunkSize = 12

// UnknownTitle replaces missing episode titles.
const UnknownTitle = "Unknown Title"

// Strategy selects how a flat episode list is split into seasons.
type Strategy string

const (
	StrategyAuto     Strategy = "auto"
	StrategyChunk    Strategy = "chunk"
	StrategyBoundary Strategy = "boundary"
	StrategyYear     Strategy = "year"
)

// ParseStrategy accepts "", auto, chunk, boundary or year (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyChunk, StrategyBoundary, StrategyYear:
		return st, nil
	default:
		return "", model.InputError("unknown grouping strategy %q", s)
	}
}

// Group dispatches to the grouper for strategy. StrategyAuto must be resolved
// by the caller beforehand.
func Group(strategy Strategy, episodes []model.EpisodeMeta, chunkSize int) ([]model.SeasonedEpisodes, error) {
	switch strategy {
	case StrategyChunk:
		return ChunkBySize(Titles(episodes), chunkSize), nil
	case StrategyBoundary:
		return GroupByBoundary(episodes), nil
	case StrategyYear:
		return GroupByYear(episodes), nil
	default:
		return nil, fmt.Errorf("grouping strategy %q cannot be applied directly", strategy)
	}
}

// Titles returns the episode titles, with blanks replaced by UnknownTitle.
func Titles(episodes []model.EpisodeMeta) []string {
	return lo.Map(episodes, func(ep model.EpisodeMeta, _ int) string {
		return titleOf(ep)
	})
}

func titleOf(ep model.EpisodeMeta) string {
	if t := strings.TrimSpace(ep.Title); t != "" {
		return t
	}
	return UnknownTitle
}

// ChunkBySize 按固定长度切分季: season k owns episodes [size*(k-1)+1, size*k],
// the last season may be shorter. A non-positive size falls back to DefaultChunkSize.
func ChunkBySize(titles []string, size int) []model.SeasonedEpisodes {
	if size <= 0 {
		size = DefaultChunkSize
	}
	seasons := make([]model.SeasonedEpisodes, 0, (len(titles)+size-1)/size)
	for i, chunk := range lo.Chunk(titles, size) {
		start := i*size + 1
		seasons = append(seasons, model.SeasonedEpisodes{
			Season:       i + 1,
			StartEpisode: start,
			EndEpisode:   start + len(chunk) - 1,
			Titles:       chunk,
		})
	}
	return seasons
}

// GroupByBoundary opens a new season whenever the season number changes from
// the previous episode. Episodes without a season number count as season 0.
// Start and end are 1-based positions in the flat list.
func GroupByBoundary(episodes []model.EpisodeMeta) []model.SeasonedEpisodes {
	var seasons []model.SeasonedEpisodes
	for i, ep := range episodes {
		season := 0
		if ep.Season != nil {
			season = *ep.Season
		}
		n := len(seasons)
		if n == 0 || seasons[n-1].Season != season {
			if n > 0 {
				seasons[n-1].EndEpisode = i
			}
			seasons = append(seasons, model.SeasonedEpisodes{Season: season, StartEpisode: i + 1})
			n++
		}
		seasons[n-1].Titles = append(seasons[n-1].Titles, titleOf(ep))
	}
	if n := len(seasons); n > 0 {
		seasons[n-1].EndEpisode = len(episodes)
	}
	return seasons
}

// GroupByYear buckets episodes by the year of their aired date and returns the
// buckets sorted by year. Start is the position of the first episode of the
// year, end the position of the last; titles keep encounter order.
func GroupByYear(episodes []model.EpisodeMeta) []model.SeasonedEpisodes {
	buckets := make(map[int]*model.SeasonedEpisodes)
	for i, ep := range episodes {
		year := AiredYear(ep.AiredDate)
		b, ok := buckets[year]
		if !ok {
			b = &model.SeasonedEpisodes{Season: year, StartEpisode: i + 1}
			buckets[year] = b
		}
		b.EndEpisode = i + 1
		b.Titles = append(b.Titles, titleOf(ep))
	}

	seasons := make([]model.SeasonedEpisodes, 0, len(buckets))
	for _, b := range buckets {
		seasons = append(seasons, *b)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i].Season < seasons[j].Season })
	return seasons
}

// AiredYear 解析日期的年份部分 ("2020-01-05", "2020-01-05T00:00:00+00:00").
// Missing or unparseable dates yield 0.
func AiredYear(date string) int {
	part, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	year, err := strconv.Atoi(part)
	if err != nil {
		return 0
	}
	return year
}

package grouping

import (
	"fmt"
	"testing"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Ep %d", i+1)
	}
	return out
}

func TestChunkBySize(t *testing.T) {
	seasons := ChunkBySize(titlesN(25), 12)
	require.Len(t, seasons, 3)

	got := lo.Map(seasons, func(s model.SeasonedEpisodes, _ int) [3]int {
		return [3]int{s.Season, s.StartEpisode, s.EndEpisode}
	})
	assert.Equal(t, [][3]int{{1, 1, 12}, {2, 13, 24}, {3, 25, 25}}, got)
	assert.Equal(t, []string{"Ep 25"}, seasons[2].Titles)
	for _, s := range seasons {
		assert.Len(t, s.Titles, s.EndEpisode-s.StartEpisode+1)
	}
}

func TestChunkBySize_EdgeCases(t *testing.T) {
	assert.Empty(t, ChunkBySize(nil, 12))

	seasons := ChunkBySize(titlesN(12), 0)
	require.Len(t, seasons, 1)
	assert.Equal(t, 12, seasons[0].EndEpisode)
}

func ep(title string, season int) model.EpisodeMeta {
	return model.EpisodeMeta{Title: title, Season: &season}
}

func TestGroupByBoundary(t *testing.T) {
	episodes := []model.EpisodeMeta{
		ep("a", 1), ep("b", 1), ep("c", 2), ep("", 2), ep("e", 2), ep("f", 3),
	}
	seasons := GroupByBoundary(episodes)
	require.Len(t, seasons, 3)

	assert.Equal(t, model.SeasonedEpisodes{Season: 1, StartEpisode: 1, EndEpisode: 2, Titles: []string{"a", "b"}}, seasons[0])
	assert.Equal(t, model.SeasonedEpisodes{Season: 2, StartEpisode: 3, EndEpisode: 5, Titles: []string{"c", UnknownTitle, "e"}}, seasons[1])
	assert.Equal(t, model.SeasonedEpisodes{Season: 3, StartEpisode: 6, EndEpisode: 6, Titles: []string{"f"}}, seasons[2])
}

func TestGroupByBoundary_KeepsEncounterOrder(t *testing.T) {
	seasons := GroupByBoundary([]model.EpisodeMeta{ep("x", 2), ep("y", 1), ep("z", 2)})
	assert.Equal(t, []int{2, 1, 2}, lo.Map(seasons, func(s model.SeasonedEpisodes, _ int) int { return s.Season }))
	assert.Empty(t, GroupByBoundary(nil))
}

func TestGroupByYear(t *testing.T) {
	episodes := []model.EpisodeMeta{
		{Title: "a", AiredDate: "2021-04-01"},
		{Title: "b", AiredDate: "2020-01-05T00:00:00+00:00"},
		{Title: "c", AiredDate: "2020-01-12"},
		{Title: "d"},
	}
	seasons := GroupByYear(episodes)
	require.Len(t, seasons, 3)

	assert.Equal(t, []int{0, 2020, 2021}, lo.Map(seasons, func(s model.SeasonedEpisodes, _ int) int { return s.Season }))
	assert.Equal(t, []string{"b", "c"}, seasons[1].Titles)
	assert.Equal(t, 2, seasons[1].StartEpisode)
	assert.Equal(t, 3, seasons[1].EndEpisode)
	assert.Equal(t, []string{"d"}, seasons[0].Titles)
}

func TestGroupByYear_TwoYears(t *testing.T) {
	seasons := GroupByYear([]model.EpisodeMeta{
		{Title: "one", AiredDate: "2020-01-01"},
		{Title: "two", AiredDate: "2020-02-01"},
		{Title: "three", AiredDate: "2021-01-01"},
	})
	require.Len(t, seasons, 2)
	assert.Equal(t, model.SeasonedEpisodes{Season: 2020, StartEpisode: 1, EndEpisode: 2, Titles: []string{"one", "two"}}, seasons[0])
	assert.Equal(t, model.SeasonedEpisodes{Season: 2021, StartEpisode: 3, EndEpisode: 3, Titles: []string{"three"}}, seasons[1])
}

func TestAiredYear(t *testing.T) {
	assert.Equal(t, 1999, AiredYear("1999-12-31"))
	assert.Equal(t, 2004, AiredYear("2004"))
	assert.Equal(t, 0, AiredYear(""))
	assert.Equal(t, 0, AiredYear("unknown"))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyAuto, s)

	s, err = ParseStrategy(" Year ")
	require.NoError(t, err)
	assert.Equal(t, StrategyYear, s)

	_, err = ParseStrategy("weekly")
	assert.ErrorIs(t, err, model.ErrInput)
}

func TestGroup_Dispatch(t *testing.T) {
	episodes := []model.EpisodeMeta{ep("a", 1), ep("b", 2)}

	seasons, err := Group(StrategyChunk, episodes, 1)
	require.NoError(t, err)
	assert.Len(t, seasons, 2)

	seasons, err = Group(StrategyBoundary, episodes, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, seasons[1].Season)

	_, err = Group(StrategyAuto, episodes, 12)
	assert.Error(t, err)
}

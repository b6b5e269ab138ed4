package metadata

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
)

const TMDBBaseURL = "https://api.themoviedb.org/3"

// TMDB 通过 Bearer Token 访问. Seasons are fetched one by one, specials skipped.
type TMDB struct {
	BaseURL  string
	Language string
	client   *resty.Client
	token    string
}

func NewTMDB(opts Options) *TMDB {
	c := newClient(opts)
	if opts.TMDBToken != "" {
		c.SetAuthToken(opts.TMDBToken)
	}
	return &TMDB{BaseURL: TMDBBaseURL, Language: "en-US", client: c, token: opts.TMDBToken}
}

func (t *TMDB) Name() string { return "tmdb" }

func (t *TMDB) DefaultStrategy() grouping.Strategy { return grouping.StrategyBoundary }

type tmdbShow struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	FirstAirDate string `json:"first_air_date"`
	Seasons      []struct {
		SeasonNumber int `json:"season_number"`
	} `json:"seasons"`
}

func (t *TMDB) req() *resty.Request {
	return t.client.R().SetQueryParam("language", t.Language)
}

func (t *TMDB) FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error) {
	if t.token == "" {
		return model.ShowMeta{}, nil, model.InputError("TMDB token is not configured")
	}

	id := q.ID
	if id <= 0 {
		var err error
		if id, err = t.search(ctx, q); err != nil {
			return model.ShowMeta{}, nil, err
		}
	}

	var show tmdbShow
	if err := getJSON(ctx, t.req(), fmt.Sprintf("%s/tv/%d", t.BaseURL, id), &show); err != nil {
		return model.ShowMeta{}, nil, err
	}

	var episodes []model.EpisodeMeta
	for _, s := range show.Seasons {
		if s.SeasonNumber <= 0 {
			continue
		}
		var season struct {
			Episodes []struct {
				Name          string `json:"name"`
				SeasonNumber  int    `json:"season_number"`
				EpisodeNumber int    `json:"episode_number"`
				AirDate       string `json:"air_date"`
			} `json:"episodes"`
		}
		url := fmt.Sprintf("%s/tv/%d/season/%d", t.BaseURL, id, s.SeasonNumber)
		if err := getJSON(ctx, t.req(), url, &season); err != nil {
			return model.ShowMeta{}, nil, err
		}
		for _, ep := range season.Episodes {
			episodes = append(episodes, model.EpisodeMeta{
				Title:     ep.Name,
				Season:    intPtr(s.SeasonNumber),
				Episode:   intPtr(ep.EpisodeNumber),
				AiredDate: ep.AirDate,
			})
		}
	}

	return model.ShowMeta{ID: show.ID, Name: show.Name, PremieredYear: yearOf(show.FirstAirDate)}, episodes, nil
}

func (t *TMDB) search(ctx context.Context, q Query) (int, error) {
	req := t.req().SetQueryParam("query", q.Name)
	if q.Year > 0 {
		req.SetQueryParam("first_air_date_year", strconv.Itoa(q.Year))
	}
	var result struct {
		Results []tmdbShow `json:"results"`
	}
	if err := getJSON(ctx, req, t.BaseURL+"/search/tv", &result); err != nil {
		return 0, err
	}
	if len(result.Results) == 0 {
		return 0, notFound("no matching show found for %q", q.Name)
	}
	return result.Results[0].ID, nil
}

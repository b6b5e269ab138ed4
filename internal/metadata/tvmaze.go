package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
)

const TVMazeBaseURL = "https://api.tvmaze.com"

// TVMaze needs no credentials; every episode carries its season number.
type TVMaze struct {
	BaseURL string
	client  *resty.Client
}

func NewTVMaze(opts Options) *TVMaze {
	return &TVMaze{BaseURL: TVMazeBaseURL, client: newClient(opts)}
}

func (t *TVMaze) Name() string { return "tvmaze" }

func (t *TVMaze) DefaultStrategy() grouping.Strategy { return grouping.StrategyBoundary }

type tvmazeShow struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Premiered string `json:"premiered"`
}

type tvmazeEpisode struct {
	Season  int    `json:"season"`
	Number  *int   `json:"number"`
	Name    string `json:"name"`
	Airdate string `json:"airdate"`
}

func (t *TVMaze) FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error) {
	var show tvmazeShow
	if q.ID > 0 {
		if err := getJSON(ctx, t.client.R(), fmt.Sprintf("%s/shows/%d", t.BaseURL, q.ID), &show); err != nil {
			return model.ShowMeta{}, nil, err
		}
	} else {
		var err error
		if show, err = t.search(ctx, q); err != nil {
			return model.ShowMeta{}, nil, err
		}
	}

	var raw []tvmazeEpisode
	if err := getJSON(ctx, t.client.R(), fmt.Sprintf("%s/shows/%d/episodes", t.BaseURL, show.ID), &raw); err != nil {
		return model.ShowMeta{}, nil, err
	}
	episodes := make([]model.EpisodeMeta, 0, len(raw))
	for _, ep := range raw {
		episodes = append(episodes, model.EpisodeMeta{
			Title:     ep.Name,
			Season:    intPtr(ep.Season),
			Episode:   ep.Number,
			AiredDate: ep.Airdate,
		})
	}

	return model.ShowMeta{ID: show.ID, Name: show.Name, PremieredYear: yearOf(show.Premiered)}, episodes, nil
}

// search returns the first result, or the first premiered in q.Year when set.
func (t *TVMaze) search(ctx context.Context, q Query) (tvmazeShow, error) {
	var results []struct {
		Show tvmazeShow `json:"show"`
	}
	req := t.client.R().SetQueryParam("q", q.Name)
	if err := getJSON(ctx, req, t.BaseURL+"/search/shows", &results); err != nil {
		return tvmazeShow{}, err
	}
	for _, r := range results {
		if q.Year <= 0 || strings.HasPrefix(r.Show.Premiered, strconv.Itoa(q.Year)) {
			return r.Show, nil
		}
	}
	return tvmazeShow{}, notFound("no matching show found for %q", q.Name)
}

package metadata

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
)

const JikanBaseURL = "https://api.jikan.moe/v4"

// Jikan 使用 MyAnimeList 的非官方 API. Episodes carry no season, only an aired date.
type Jikan struct {
	BaseURL string
	client  *resty.Client
}

func NewJikan(opts Options) *Jikan {
	return &Jikan{BaseURL: JikanBaseURL, client: newClient(opts)}
}

func (j *Jikan) Name() string { return "jikan" }

func (j *Jikan) DefaultStrategy() grouping.Strategy { return grouping.StrategyYear }

type jikanAnime struct {
	MalID int    `json:"mal_id"`
	Title string `json:"title"`
	Aired struct {
		From string `json:"from"`
	} `json:"aired"`
}

type jikanEpisode struct {
	MalID int    `json:"mal_id"`
	Title string `json:"title"`
	Aired string `json:"aired"`
}

func (j *Jikan) FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error) {
	id := q.ID
	if id <= 0 {
		var err error
		if id, err = j.search(ctx, q); err != nil {
			return model.ShowMeta{}, nil, err
		}
	}

	var details struct {
		Data jikanAnime `json:"data"`
	}
	if err := getJSON(ctx, j.client.R(), fmt.Sprintf("%s/anime/%d", j.BaseURL, id), &details); err != nil {
		return model.ShowMeta{}, nil, err
	}
	show := model.ShowMeta{
		ID:            details.Data.MalID,
		Name:          details.Data.Title,
		PremieredYear: yearOf(details.Data.Aired.From),
	}

	episodes, err := j.episodes(ctx, show.ID)
	if err != nil {
		return model.ShowMeta{}, nil, err
	}
	return show, episodes, nil
}

func (j *Jikan) search(ctx context.Context, q Query) (int, error) {
	req := j.client.R().SetQueryParam("q", q.Name)
	if q.Year > 0 {
		req.SetQueryParam("start_date", strconv.Itoa(q.Year))
	}
	var result struct {
		Data []jikanAnime `json:"data"`
	}
	if err := getJSON(ctx, req, j.BaseURL+"/anime", &result); err != nil {
		return 0, err
	}
	if len(result.Data) == 0 {
		return 0, notFound("no matching anime found for %q", q.Name)
	}
	return result.Data[0].MalID, nil
}

// episodes follows has_next_page until the list is complete.
func (j *Jikan) episodes(ctx context.Context, id int) ([]model.EpisodeMeta, error) {
	var episodes []model.EpisodeMeta
	for page := 1; ; page++ {
		var result struct {
			Data       []jikanEpisode `json:"data"`
			Pagination struct {
				HasNextPage bool `json:"has_next_page"`
			} `json:"pagination"`
		}
		req := j.client.R().SetQueryParam("page", strconv.Itoa(page))
		if err := getJSON(ctx, req, fmt.Sprintf("%s/anime/%d/episodes", j.BaseURL, id), &result); err != nil {
			return nil, err
		}
		for _, ep := range result.Data {
			meta := model.EpisodeMeta{Title: ep.Title, AiredDate: ep.Aired}
			if ep.MalID > 0 {
				meta.Episode = intPtr(ep.MalID)
			}
			episodes = append(episodes, meta)
		}
		if !result.Pagination.HasNextPage || len(result.Data) == 0 {
			return episodes, nil
		}
	}
}

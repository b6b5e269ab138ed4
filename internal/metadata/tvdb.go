package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
)

const TVDBBaseURL = "https://api4.thetvdb.com/v4"

// TVDB 使用 TheTVDB v4 API: the API key is exchanged for a bearer token once.
type TVDB struct {
	BaseURL string
	APIKey  string
	client  *resty.Client

	mu    sync.Mutex
	token string
}

func NewTVDB(opts Options) *TVDB {
	return &TVDB{BaseURL: TVDBBaseURL, APIKey: opts.TVDBAPIKey, client: newClient(opts)}
}

func (t *TVDB) Name() string { return "tvdb" }

func (t *TVDB) DefaultStrategy() grouping.Strategy { return grouping.StrategyBoundary }

type tvdbEpisode struct {
	Name         string `json:"name"`
	SeasonNumber int    `json:"seasonNumber"`
	Number       int    `json:"number"`
	Aired        string `json:"aired"`
}

func (t *TVDB) login(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token != "" {
		return t.token, nil
	}
	if t.APIKey == "" {
		return "", model.InputError("TVDB API key is not configured")
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"apikey": t.APIKey}).
		Post(t.BaseURL + "/login")
	if err != nil {
		return "", fmt.Errorf("TVDB login failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("TVDB login failed: %s", resp.Status())
	}
	var result struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse TVDB login response: %w", err)
	}
	if result.Data.Token == "" {
		return "", fmt.Errorf("TVDB login returned no token")
	}
	t.token = result.Data.Token
	return t.token, nil
}

func (t *TVDB) FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error) {
	token, err := t.login(ctx)
	if err != nil {
		return model.ShowMeta{}, nil, err
	}
	req := func() *resty.Request { return t.client.R().SetAuthToken(token) }

	id := q.ID
	if id <= 0 {
		if id, err = t.search(ctx, req(), q); err != nil {
			return model.ShowMeta{}, nil, err
		}
	}

	var series struct {
		Data struct {
			ID         int    `json:"id"`
			Name       string `json:"name"`
			FirstAired string `json:"firstAired"`
		} `json:"data"`
	}
	if err := getJSON(ctx, req(), fmt.Sprintf("%s/series/%d", t.BaseURL, id), &series); err != nil {
		return model.ShowMeta{}, nil, err
	}
	show := model.ShowMeta{ID: series.Data.ID, Name: series.Data.Name, PremieredYear: yearOf(series.Data.FirstAired)}

	var episodes []model.EpisodeMeta
	for page := 0; ; page++ {
		var result struct {
			Data struct {
				Episodes []tvdbEpisode `json:"episodes"`
			} `json:"data"`
			Links struct {
				Next *string `json:"next"`
			} `json:"links"`
		}
		url := fmt.Sprintf("%s/series/%d/episodes/default", t.BaseURL, id)
		if err := getJSON(ctx, req().SetQueryParam("page", strconv.Itoa(page)), url, &result); err != nil {
			return model.ShowMeta{}, nil, err
		}
		for _, ep := range result.Data.Episodes {
			// season 0 holds specials
			if ep.SeasonNumber == 0 {
				continue
			}
			episodes = append(episodes, model.EpisodeMeta{
				Title:     ep.Name,
				Season:    intPtr(ep.SeasonNumber),
				Episode:   intPtr(ep.Number),
				AiredDate: ep.Aired,
			})
		}
		if result.Links.Next == nil || *result.Links.Next == "" || len(result.Data.Episodes) == 0 {
			break
		}
	}
	return show, episodes, nil
}

func (t *TVDB) search(ctx context.Context, req *resty.Request, q Query) (int, error) {
	req.SetQueryParam("query", q.Name).SetQueryParam("type", "series")
	if q.Year > 0 {
		req.SetQueryParam("year", strconv.Itoa(q.Year))
	}
	var result struct {
		Data []struct {
			TVDBID string `json:"tvdb_id"`
			Name   string `json:"name"`
		} `json:"data"`
	}
	if err := getJSON(ctx, req, t.BaseURL+"/search", &result); err != nil {
		return 0, err
	}
	if len(result.Data) == 0 {
		return 0, notFound("no matching show found for %q", q.Name)
	}
	id, err := strconv.Atoi(result.Data[0].TVDBID)
	if err != nil {
		return 0, fmt.Errorf("unexpected TVDB id %q: %w", result.Data[0].TVDBID, err)
	}
	return id, nil
}

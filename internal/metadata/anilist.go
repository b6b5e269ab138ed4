package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
	log "github.com/sirupsen/logrus"
)

const AniListGraphQLEndpoint = "https://graphql.anilist.co"

// AniList 只有流媒体分集标题, no season or air date, so it chunks.
type AniList struct {
	Endpoint string
	client   *resty.Client
}

func NewAniList(opts Options) *AniList {
	c := newClient(opts)
	c.SetHeader("Content-Type", "application/json")
	return &AniList{Endpoint: AniListGraphQLEndpoint, client: c}
}

func (a *AniList) Name() string { return "anilist" }

func (a *AniList) DefaultStrategy() grouping.Strategy { return grouping.StrategyChunk }

const anilistMediaFields = `
      id
      title { romaji english native }
      startDate { year }
      streamingEpisodes { title }`

const anilistByIDQuery = `
query ($id: Int) {
  Media(id: $id, type: ANIME) {` + anilistMediaFields + `
  }
}`

const anilistSearchQuery = `
query ($search: String, $year: Int) {
  Page(page: 1, perPage: 10) {
    media(search: $search, seasonYear: $year, type: ANIME, sort: SEARCH_MATCH) {` + anilistMediaFields + `
    }
  }
}`

type anilistMedia struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	StartDate struct {
		Year *int `json:"year"`
	} `json:"startDate"`
	StreamingEpisodes []struct {
		Title string `json:"title"`
	} `json:"streamingEpisodes"`
}

func (m anilistMedia) name() string {
	switch {
	case m.Title.English != "":
		return m.Title.English
	case m.Title.Romaji != "":
		return m.Title.Romaji
	default:
		return m.Title.Native
	}
}

type anilistResponse struct {
	Data struct {
		Media *anilistMedia `json:"Media"`
		Page  struct {
			Media []anilistMedia `json:"media"`
		} `json:"Page"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"errors"`
}

// "Episode 3 - Killing Magic" -> episode 3, "Killing Magic"
var streamingTitleRe = regexp.MustCompile(`^(?i:episode)\s+(\d+)\s*-\s*(.*)$`)

func (a *AniList) FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error) {
	var media anilistMedia
	if q.ID > 0 {
		var resp anilistResponse
		if err := a.post(ctx, anilistByIDQuery, map[string]any{"id": q.ID}, &resp); err != nil {
			return model.ShowMeta{}, nil, err
		}
		if resp.Data.Media == nil {
			return model.ShowMeta{}, nil, notFound("anilist media %d", q.ID)
		}
		media = *resp.Data.Media
	} else {
		vars := map[string]any{"search": q.Name}
		if q.Year > 0 {
			vars["year"] = q.Year
		}
		var resp anilistResponse
		if err := a.post(ctx, anilistSearchQuery, vars, &resp); err != nil {
			return model.ShowMeta{}, nil, err
		}
		if len(resp.Data.Page.Media) == 0 {
			return model.ShowMeta{}, nil, notFound("no matching show found for %q", q.Name)
		}
		media = resp.Data.Page.Media[0]
	}

	episodes := make([]model.EpisodeMeta, 0, len(media.StreamingEpisodes))
	for _, se := range media.StreamingEpisodes {
		ep := model.EpisodeMeta{Title: se.Title}
		if m := streamingTitleRe.FindStringSubmatch(se.Title); m != nil {
			n, _ := strconv.Atoi(m[1])
			ep.Episode = intPtr(n)
			ep.Title = m[2]
		}
		episodes = append(episodes, ep)
	}
	// 流媒体列表不保证顺序
	sortByEpisode(episodes)

	show := model.ShowMeta{ID: media.ID, Name: media.name()}
	if media.StartDate.Year != nil {
		show.PremieredYear = strconv.Itoa(*media.StartDate.Year)
	}
	return show, episodes, nil
}

// sortByEpisode orders numbered episodes ascending; unnumbered ones keep their place after them.
func sortByEpisode(episodes []model.EpisodeMeta) {
	key := func(ep model.EpisodeMeta) int {
		if ep.Episode == nil {
			return math.MaxInt
		}
		return *ep.Episode
	}
	sort.SliceStable(episodes, func(i, j int) bool { return key(episodes[i]) < key(episodes[j]) })
}

// post sends one GraphQL request. A GraphQL 404 error maps to ErrNotFound.
func (a *AniList) post(ctx context.Context, query string, vars map[string]any, out *anilistResponse) error {
	log.Debugf("Metadata: POST %s", a.Endpoint)
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"query": query, "variables": vars}).
		Post(a.Endpoint)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", a.Endpoint, err)
	}
	// AniList 对未找到的 id 也返回 JSON 错误体
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		if resp.IsError() {
			return fmt.Errorf("request %s failed: %s", a.Endpoint, resp.Status())
		}
		return fmt.Errorf("failed to parse response of %s: %w", a.Endpoint, err)
	}
	if len(out.Errors) > 0 {
		if out.Errors[0].Status == 404 {
			return notFound("anilist: %s", out.Errors[0].Message)
		}
		return fmt.Errorf("anilist GraphQL error: %s", out.Errors[0].Message)
	}
	if resp.IsError() {
		return fmt.Errorf("request %s failed: %s", a.Endpoint, resp.Status())
	}
	return nil
}

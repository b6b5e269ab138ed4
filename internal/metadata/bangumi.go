package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
)

const (
	BangumiBaseURL     = "https://api.bgm.tv"
	bangumiPageSize    = 100
	bangumiSubjectAnim = 2
	bangumiMainEpisode = 0
)

// Bangumi 番组计划. Episodes carry an air date but no season; 中文名优先.
type Bangumi struct {
	BaseURL string
	client  *resty.Client
}

func NewBangumi(opts Options) *Bangumi {
	return &Bangumi{BaseURL: BangumiBaseURL, client: newClient(opts)}
}

func (b *Bangumi) Name() string { return "bangumi" }

func (b *Bangumi) DefaultStrategy() grouping.Strategy { return grouping.StrategyYear }

type bangumiSubject struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	NameCN  string `json:"name_cn"`
	Date    string `json:"date"`
	AirDate string `json:"air_date"`
}

func preferCN(cn, name string) string {
	if strings.TrimSpace(cn) != "" {
		return cn
	}
	return name
}

func (b *Bangumi) FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error) {
	id := q.ID
	if id <= 0 {
		var err error
		if id, err = b.search(ctx, q); err != nil {
			return model.ShowMeta{}, nil, err
		}
	}

	var subject bangumiSubject
	if err := getJSON(ctx, b.client.R(), fmt.Sprintf("%s/v0/subjects/%d", b.BaseURL, id), &subject); err != nil {
		return model.ShowMeta{}, nil, err
	}
	show := model.ShowMeta{ID: subject.ID, Name: preferCN(subject.NameCN, subject.Name), PremieredYear: yearOf(subject.Date)}

	var episodes []model.EpisodeMeta
	for offset := 0; ; offset += bangumiPageSize {
		var page struct {
			Data []struct {
				Name    string  `json:"name"`
				NameCN  string  `json:"name_cn"`
				Airdate string  `json:"airdate"`
				Ep      float64 `json:"ep"`
			} `json:"data"`
			Total int `json:"total"`
		}
		req := b.client.R().SetQueryParams(map[string]string{
			"subject_id": strconv.Itoa(id),
			"type":       strconv.Itoa(bangumiMainEpisode),
			"limit":      strconv.Itoa(bangumiPageSize),
			"offset":     strconv.Itoa(offset),
		})
		if err := getJSON(ctx, req, b.BaseURL+"/v0/episodes", &page); err != nil {
			return model.ShowMeta{}, nil, err
		}
		for _, ep := range page.Data {
			meta := model.EpisodeMeta{Title: preferCN(ep.NameCN, ep.Name), AiredDate: ep.Airdate}
			if ep.Ep > 0 {
				meta.Episode = intPtr(int(ep.Ep))
			}
			episodes = append(episodes, meta)
		}
		if len(page.Data) == 0 || offset+len(page.Data) >= page.Total {
			break
		}
	}
	return show, episodes, nil
}

// search uses the legacy search endpoint; the year filter matches the air date prefix.
func (b *Bangumi) search(ctx context.Context, q Query) (int, error) {
	var result struct {
		List []bangumiSubject `json:"list"`
	}
	u := fmt.Sprintf("%s/search/subject/%s", b.BaseURL, url.PathEscape(q.Name))
	req := b.client.R().SetQueryParams(map[string]string{
		"type":          strconv.Itoa(bangumiSubjectAnim),
		"responseGroup": "small",
	})
	if err := getJSON(ctx, req, u, &result); err != nil {
		return 0, err
	}
	for _, s := range result.List {
		if q.Year <= 0 || strings.HasPrefix(s.AirDate, strconv.Itoa(q.Year)) {
			return s.ID, nil
		}
	}
	return 0, notFound("no matching subject found for %q", q.Name)
}

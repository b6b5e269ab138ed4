// Package metadata fetches episode lists from online databases.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/model"
	log "github.com/sirupsen/logrus"
)

const userAgent = "pokerjest/animateRenamer/1.0 (https://github.com/pokerjest/animateRenamer)"

// Query selects a show by id, or by name with an optional premiere year.
type Query struct {
	ID   int
	Name string
	Year int
}

func (q Query) Validate() error {
	if q.ID <= 0 && strings.TrimSpace(q.Name) == "" {
		return model.InputError("either a show id or a show name is required")
	}
	return nil
}

// Provider 统一的元数据源接口. Episodes come back in the source's order.
type Provider interface {
	Name() string
	DefaultStrategy() grouping.Strategy
	FetchEpisodeTitles(ctx context.Context, q Query) (model.ShowMeta, []model.EpisodeMeta, error)
}

// Options configures the HTTP clients of every provider.
type Options struct {
	Proxy      string
	Timeout    time.Duration
	TVDBAPIKey string
	TMDBToken  string
}

func newClient(opts Options) *resty.Client {
	c := resty.New()
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c.SetTimeout(timeout)
	if opts.Proxy != "" {
		c.SetProxy(opts.Proxy)
	}
	c.SetHeader("User-Agent", userAgent)
	c.SetHeader("Accept", "application/json")
	return c
}

// getJSON performs one GET and decodes the body into out. 404 maps to ErrNotFound.
func getJSON(ctx context.Context, req *resty.Request, url string, out any) error {
	log.Debugf("Metadata: GET %s", url)
	resp, err := req.SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", url, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", model.ErrNotFound, url)
	}
	if resp.IsError() {
		return fmt.Errorf("request %s failed: %s", url, resp.Status())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse response of %s: %w", url, err)
	}
	return nil
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrNotFound, fmt.Sprintf(format, args...))
}

// yearOf returns the year prefix of a date such as "2019-10-05".
func yearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}

func intPtr(v int) *int { return &v }

// Registry maps provider names to providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers every built-in provider configured with opts.
func NewRegistry(opts Options) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	r.Register(NewJikan(opts))
	r.Register(NewTVMaze(opts))
	r.Register(NewTVDB(opts))
	r.Register(NewTMDB(opts))
	r.Register(NewBangumi(opts))
	r.Register(NewAniList(opts))
	return r
}

func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get looks a provider up by name, case-insensitively.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, model.InputError("unknown metadata provider %q", name)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FetchShowDetails fetches the episode list of one show and groups it into
// seasons. StrategyAuto uses the provider's default.
func FetchShowDetails(ctx context.Context, p Provider, q Query, strategy grouping.Strategy, chunkSize int) (model.ShowDetails, error) {
	if err := q.Validate(); err != nil {
		return model.ShowDetails{}, err
	}
	show, episodes, err := p.FetchEpisodeTitles(ctx, q)
	if err != nil {
		return model.ShowDetails{}, err
	}
	if strategy == "" || strategy == grouping.StrategyAuto {
		strategy = p.DefaultStrategy()
	}
	seasons, err := grouping.Group(strategy, episodes, chunkSize)
	if err != nil {
		return model.ShowDetails{}, err
	}
	log.Infof("Metadata: %s returned %d episodes for %q in %d seasons", p.Name(), len(episodes), show.Name, len(seasons))

	details := model.ShowDetails{
		ID:               show.ID,
		Name:             show.Name,
		EpisodesBySeason: seasons,
	}
	if show.PremieredYear != "" {
		year := show.PremieredYear
		details.PremieredYear = &year
	}
	return details, nil
}

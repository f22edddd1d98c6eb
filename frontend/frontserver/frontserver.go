package frontserver

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/duration"
	"github.com/diamondburned/eggboard/client"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/feed"
	"github.com/diamondburned/eggboard/eggboard/relay"
	"github.com/diamondburned/eggboard/eggboard/search"
	"github.com/diamondburned/eggboard/eggboard/validate"
	"github.com/diamondburned/eggboard/frontend/frontserver/internal/limit"
	"github.com/diamondburned/eggboard/frontend/frontserver/internal/limread"
	"github.com/diamondburned/eggboard/frontend/frontserver/internal/middleware"
	"github.com/diamondburned/eggboard/frontend/frontserver/pages/archive"
	"github.com/diamondburned/eggboard/frontend/frontserver/pages/errorpage"
	"github.com/diamondburned/eggboard/frontend/frontserver/pages/home"
	"github.com/diamondburned/eggboard/frontend/frontserver/pages/searchpage"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
)

// VariantPlaceholder is replaced with the variant name in feed and relay URLs.
const VariantPlaceholder = "{variant}"

type FeedConfig struct {
	// URL is the approved-submissions.json URL. It may contain {variant}.
	URL string `toml:"url"`
	// Dir is read as <dir>/<variant>/approved-submissions.json if URL is
	// empty.
	Dir string `toml:"dir"`
}

type RelayConfig struct {
	// URL is the form relay endpoint. It may contain {variant}. An empty URL
	// closes submissions.
	URL string `toml:"url"`
	// Variants overrides URL per variant name.
	Variants map[string]string `toml:"variants"`
}

func (c RelayConfig) For(v eggboard.Variant) string {
	if u, ok := c.Variants[v.Name]; ok {
		return u
	}
	return strings.ReplaceAll(c.URL, VariantPlaceholder, v.Name)
}

type RecaptchaConfig struct {
	SiteKey string `toml:"siteKey"`

	// Secret makes the server verify responses itself. Verified responses
	// are single-use, so they are not relayed.
	Secret string `toml:"secret"`
}

type FrontConfig struct {
	render.Config

	MaxBodySize   datasize.ByteSize `toml:"maxBodySize"`
	ClientTimeout string            `toml:"clientTimeout"`
	// RateLimit is the number of submissions per second per IP.
	RateLimit float64 `toml:"rateLimit"`
	// TrustProxy takes the client IP from X-Forwarded-For or X-Real-IP. Only
	// set it behind a reverse proxy that overwrites those headers.
	TrustProxy bool `toml:"trustProxy"`

	Feed      FeedConfig      `toml:"feed"`
	Relay     RelayConfig     `toml:"relay"`
	Recaptcha RecaptchaConfig `toml:"recaptcha"`

	// Pages replaces the default search table if not empty.
	Pages []eggboard.Page `toml:"pages"`

	clientTimeout time.Duration
}

func NewConfig() FrontConfig {
	return FrontConfig{
		Config:        render.NewConfig(),
		MaxBodySize:   64 * datasize.KB,
		ClientTimeout: "10s",
		RateLimit:     1,
	}
}

func (c *FrontConfig) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}

	d, err := duration.ParseDuration(c.ClientTimeout)
	if err != nil {
		return errors.Wrap(err, "invalid client timeout")
	}
	c.clientTimeout = time.Duration(d)

	if c.RateLimit <= 0 {
		return errors.New("`rateLimit' must be positive")
	}

	if c.MaxBodySize == 0 {
		return errors.New("missing `maxBodySize' value")
	}

	for _, page := range c.Pages {
		if page.Title == "" || page.URL == "" {
			return errors.New("every page needs a title and a URL")
		}
	}

	return nil
}

// NewClient creates the outgoing HTTP client. Validate must be called first.
// Requests carry the site name as their user agent.
func (c FrontConfig) NewClient() *client.Client {
	cl := client.NewClient(c.clientTimeout)
	cl.SetUserAgent(c.SiteName)
	return cl
}

// FeedSource returns the feed source for the variant, or nil if no feed is
// configured.
func (c FrontConfig) FeedSource(cl *client.Client, v eggboard.Variant) feed.Source {
	switch {
	case c.Feed.URL != "":
		return &feed.HTTPSource{
			Client: cl,
			URL:    strings.ReplaceAll(c.Feed.URL, VariantPlaceholder, v.Name),
		}
	case c.Feed.Dir != "":
		return feed.NewDiskSource(filepath.Join(c.Feed.Dir, v.Name), "")
	default:
		return nil
	}
}

// SearchIndex builds the search index over the configured pages.
func (c FrontConfig) SearchIndex() *search.Index {
	if len(c.Pages) > 0 {
		return search.NewIndex(c.Pages)
	}
	return search.NewIndex(search.DefaultPages)
}

func (c FrontConfig) newArchive(
	cl *client.Client, v eggboard.Variant, node int64, lim middleware.F) (*archive.Archive, error) {
	var rl relay.Relay
	if u := c.Relay.For(v); u != "" {
		r, err := relay.NewHTTPRelay(cl, u, node)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to create %s relay", v.Name)
		}
		rl = r
	}

	var challenge relay.Challenge
	if c.Recaptcha.SiteKey != "" {
		challenge = &relay.Recaptcha{
			SiteKey: c.Recaptcha.SiteKey,
			Secret:  c.Recaptcha.Secret,
			Client:  cl,
		}
	}

	return &archive.Archive{
		Variant: v,
		Loader:  feed.NewLoader(c.FeedSource(cl, v), v),
		Flow:    relay.NewFlow(rl, challenge),
		Schema:  validate.SchemaFor(v),
		SiteKey: c.Recaptcha.SiteKey,

		SubmitLimit: lim,
	}, nil
}

func New(cfg FrontConfig) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cl := cfg.NewClient()
	idx := cfg.SearchIndex()

	r := render.NewMux(cfg.Config, eggboard.Variants)
	r.SetErrorRenderer(errorpage.RenderError)
	r.NotFound(r.M(errorpage.NotFound))
	r.Get("/", home.Renderer(idx))
	r.Mount("/search", searchpage.Mount(idx))

	// One limiter for all archives, so a client can't spread submissions
	// across them.
	lim := limit.RateLimit(cfg.RateLimit)

	for i, v := range eggboard.Variants {
		a, err := cfg.newArchive(cl, v, int64(i), lim)
		if err != nil {
			return nil, err
		}
		r.Mount("/"+v.Name, a.Mount)
	}

	mux := chi.NewMux()
	if cfg.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(
		chimw.Recoverer,
		limread.LimitBody(cfg.MaxBodySize),
	)
	mux.Mount("/", r)

	return mux, nil
}

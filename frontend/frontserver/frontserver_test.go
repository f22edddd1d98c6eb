package frontserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/feed"
	"github.com/go-test/deep"
)

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal("Default config is invalid:", err)
	}
	if cfg.clientTimeout != 10*time.Second {
		t.Fatal("Unexpected client timeout:", cfg.clientTimeout)
	}

	cfg.ClientTimeout = "1d"
	if err := cfg.Validate(); err != nil {
		t.Fatal("Day durations should parse:", err)
	}
	if cfg.clientTimeout != 24*time.Hour {
		t.Fatal("Unexpected client timeout:", cfg.clientTimeout)
	}

	var invalid = map[string]func(c *FrontConfig){
		"Timeout":   func(c *FrontConfig) { c.ClientTimeout = "soon" },
		"RateLimit": func(c *FrontConfig) { c.RateLimit = 0 },
		"BodySize":  func(c *FrontConfig) { c.MaxBodySize = 0 },
		"Page":      func(c *FrontConfig) { c.Pages = []eggboard.Page{{Title: "No URL"}} },
	}

	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			cfg := NewConfig()
			mutate(&cfg)

			if err := cfg.Validate(); err == nil {
				t.Fatal("Expected an error")
			}
		})
	}
}

func TestRelayFor(t *testing.T) {
	cfg := RelayConfig{
		URL:      "https://relay.example/f/{variant}",
		Variants: map[string]string{"locations": ""},
	}

	var got = map[string]string{}
	for _, v := range eggboard.Variants {
		got[v.Name] = cfg.For(v)
	}

	expect := map[string]string{
		"eastereggs":  "https://relay.example/f/eastereggs",
		"locations":   "",
		"connections": "https://relay.example/f/connections",
	}

	if diff := deep.Equal(got, expect); diff != nil {
		t.Fatal("Unexpected relay URLs:", diff)
	}
}

func TestFeedSource(t *testing.T) {
	cfg := NewConfig()
	cl := cfg.NewClient()

	if src := cfg.FeedSource(cl, eggboard.Locations); src != nil {
		t.Fatal("Unexpected source without a feed config:", src)
	}

	cfg.Feed.URL = "https://example.com/{variant}/approved-submissions.json"
	src, ok := cfg.FeedSource(cl, eggboard.Locations).(*feed.HTTPSource)
	if !ok {
		t.Fatal("Expected an HTTP source")
	}
	if src.URL != "https://example.com/locations/approved-submissions.json" {
		t.Fatal("Unexpected URL:", src.URL)
	}

	cfg.Feed = FeedConfig{Dir: t.TempDir()}
	if _, ok := cfg.FeedSource(cl, eggboard.Locations).(*feed.DiskSource); !ok {
		t.Fatal("Expected a disk source")
	}
}

type relayRecorder struct {
	mu     sync.Mutex
	values []url.Values
}

func (rec *relayRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	rec.mu.Lock()
	rec.values = append(rec.values, r.MultipartForm.Value)
	rec.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true}`))
}

func newSite(t *testing.T) (*httptest.Server, *relayRecorder) {
	t.Helper()

	feeds := http.NewServeMux()
	feeds.HandleFunc("/eastereggs.json", func(w http.ResponseWriter, r *http.Request) {
		if ua := r.UserAgent(); ua != "Test Board" {
			t.Errorf("Feed fetched with user agent %q", ua)
		}
		w.Write([]byte(`[{"title": "Arc reactor", "source": "Iron Man", "analysis": "Scrap."}]`))
	})
	feedSrv := httptest.NewServer(feeds)
	t.Cleanup(feedSrv.Close)

	rec := &relayRecorder{}
	relaySrv := httptest.NewServer(rec)
	t.Cleanup(relaySrv.Close)

	cfg := NewConfig()
	cfg.SiteName = "Test Board"
	cfg.Feed.URL = feedSrv.URL + "/{variant}.json"
	cfg.Relay.URL = relaySrv.URL + "/{variant}"
	cfg.Relay.Variants = map[string]string{"connections": ""}

	h, err := New(cfg)
	if err != nil {
		t.Fatal("Failed to create frontserver:", err)
	}

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv, rec
}

func getDoc(t *testing.T, url string) (*goquery.Document, int) {
	t.Helper()

	r, err := http.Get(url)
	if err != nil {
		t.Fatal("Failed to get:", err)
	}
	defer r.Body.Close()

	doc, err := goquery.NewDocumentFromReader(r.Body)
	if err != nil {
		t.Fatal("Failed to parse HTML:", err)
	}

	return doc, r.StatusCode
}

func TestSite(t *testing.T) {
	srv, rec := newSite(t)

	t.Run("Home", func(t *testing.T) {
		doc, code := getDoc(t, srv.URL)
		if code != 200 {
			t.Fatal("Unexpected status:", code)
		}

		var links []string
		doc.Find(".home-archives a").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			links = append(links, href)
		})

		expect := []string{"/eastereggs", "/locations", "/connections"}
		if diff := deep.Equal(links, expect); diff != nil {
			t.Fatal("Unexpected archive links:", diff)
		}

		if title := doc.Find("title").Text(); title != "Test Board" {
			t.Fatalf("Unexpected title: %q", title)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, code := getDoc(t, srv.URL+"/nope")
		if code != 404 {
			t.Fatal("Unexpected status:", code)
		}
	})

	t.Run("Archive", func(t *testing.T) {
		doc, _ := getDoc(t, srv.URL+"/eastereggs")
		if n := doc.Find("#submission-list li").Length(); n != 1 {
			t.Fatal("Unexpected number of items:", n)
		}

		// The locations feed 404s, which is a soft failure.
		doc, code := getDoc(t, srv.URL+"/locations")
		if code != 200 {
			t.Fatal("Unexpected status:", code)
		}
		if n := doc.Find("#submission-list li").Length(); n != 0 {
			t.Fatal("Unexpected number of items:", n)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		doc, _ := getDoc(t, srv.URL+"/connections")
		if doc.Find("#egg-form").Length() != 0 {
			t.Fatal("Connections should be closed")
		}
	})

	t.Run("Search", func(t *testing.T) {
		doc, _ := getDoc(t, srv.URL+"/search?q=loki")
		if n := doc.Find("#results-list a").Length(); n == 0 {
			t.Fatal("No results for loki")
		}
	})

	t.Run("SubmitAndLimit", func(t *testing.T) {
		form := url.Values{
			"submissionType": {"Theory"},
			"title":          {"Arc reactor"},
			"source":         {"Iron Man"},
			"analysis":       {"The reactor is built from scrap in a cave."},
		}

		r, err := http.PostForm(srv.URL+"/eastereggs", form)
		if err != nil {
			t.Fatal("Failed to post:", err)
		}
		r.Body.Close()

		if r.StatusCode != 200 {
			t.Fatal("Unexpected status:", r.StatusCode)
		}

		rec.mu.Lock()
		got := rec.values
		rec.mu.Unlock()

		if len(got) != 1 {
			t.Fatal("Expected one relayed submission, got", len(got))
		}
		if title := got[0].Get("title"); title != "Arc reactor" {
			t.Fatalf("Unexpected relayed title: %q", title)
		}

		// A forged forwarding header doesn't make a new client.
		req, err := http.NewRequest("POST", srv.URL+"/eastereggs", strings.NewReader(form.Encode()))
		if err != nil {
			t.Fatal("Failed to create request:", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", "198.51.100.7")

		r, err = http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal("Failed to post:", err)
		}
		r.Body.Close()

		if r.StatusCode != http.StatusTooManyRequests {
			t.Fatal("Second submission was not limited:", r.StatusCode)
		}
	})
}

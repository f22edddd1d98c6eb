package errorpage

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/httperr"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
	"github.com/pkg/errors"
)

func TestRenderError(t *testing.T) {
	mux := render.NewMux(render.NewConfig(), eggboard.Variants)
	mux.SetErrorRenderer(RenderError)
	mux.NotFound(mux.M(NotFound))
	mux.Get("/teapot", func(r *render.Request) (render.Render, error) {
		return render.Empty, httperr.New(http.StatusTeapot, "no coffee: pot is empty")
	})
	mux.Get("/internal", func(r *render.Request) (render.Render, error) {
		return render.Empty, errors.Wrap(errors.New("secret dsn"), "Failed to connect")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	var tests = []struct {
		path   string
		status int
		alert  string
	}{
		{"/nope", 404, "Page not found."},
		{"/teapot", 418, "Pot is empty."},
		{"/internal", 500, "Internal Server Error."},
	}

	for _, test := range tests {
		r, err := http.Get(srv.URL + test.path)
		if err != nil {
			t.Fatal("Failed to get:", err)
		}

		doc, err := goquery.NewDocumentFromReader(r.Body)
		r.Body.Close()
		if err != nil {
			t.Fatal("Failed to parse HTML:", err)
		}

		if r.StatusCode != test.status {
			t.Errorf("%s: unexpected status %d", test.path, r.StatusCode)
		}

		if alert := doc.Find(".errbox").Text(); alert != test.alert {
			t.Errorf("%s: unexpected alert %q", test.path, alert)
		}

		if strings.Contains(doc.Text(), "secret dsn") {
			t.Errorf("%s: internal error leaked", test.path)
		}
	}
}

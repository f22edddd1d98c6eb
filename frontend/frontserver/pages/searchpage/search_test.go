package searchpage

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/search"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
	"github.com/go-test/deep"
)

func searchDoc(t *testing.T, srv *httptest.Server, q string) *goquery.Document {
	t.Helper()

	r, err := http.Get(srv.URL + "/search?q=" + url.QueryEscape(q))
	if err != nil {
		t.Fatal("Failed to get:", err)
	}
	defer r.Body.Close()

	doc, err := goquery.NewDocumentFromReader(r.Body)
	if err != nil {
		t.Fatal("Failed to parse HTML:", err)
	}
	return doc
}

func TestSearchPage(t *testing.T) {
	mux := render.NewMux(render.NewConfig(), eggboard.Variants)
	mux.Mount("/search", Mount(search.NewIndex(search.DefaultPages)))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("Matches", func(t *testing.T) {
		doc := searchDoc(t, srv, "iron man")

		var got []string
		doc.Find("#results-list a").Each(func(_ int, s *goquery.Selection) {
			got = append(got, s.Text())
		})

		expect := []string{"Iron Man (2008)", "The Avengers (2012)", "Tony Stark / Iron Man"}
		if diff := deep.Equal(got, expect); diff != nil {
			t.Fatal("Unexpected links:", diff)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		doc := searchDoc(t, srv, "  ")

		if n := doc.Find("#results-list a").Length(); n != 0 {
			t.Fatal("Unexpected links:", n)
		}
		if text := doc.Find("#results-list li").Text(); text != "Please enter a search term." {
			t.Fatalf("Unexpected prompt: %q", text)
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		const q = `<script>alert("x")</script> Thanos`

		doc := searchDoc(t, srv, q)
		list := doc.Find("#results-list")

		if n := list.Find("script").Length(); n != 0 {
			t.Fatal("Query rendered as markup")
		}
		if strong := list.Find("strong").Text(); strong != q {
			t.Fatalf("Raw query not shown as text: %q", strong)
		}
		if !strings.HasPrefix(list.Find("li").Text(), "No results found for") {
			t.Fatalf("Unexpected message: %q", list.Find("li").Text())
		}
	})
}

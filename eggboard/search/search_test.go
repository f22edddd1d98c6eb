package search

import (
	"strings"
	"testing"

	"github.com/diamondburned/eggboard/eggboard"
	"github.com/go-test/deep"
)

func titles(pages []eggboard.Page) []string {
	var t = make([]string, len(pages))
	for i, p := range pages {
		t[i] = p.Title
	}
	return t
}

func TestSearch(t *testing.T) {
	idx := NewIndex(DefaultPages)

	t.Run("Conjunctive", func(t *testing.T) {
		r := idx.Search("iron man")
		if r.Prompt || r.NoResults() {
			t.Fatalf("Unexpected empty results: %#v", r)
		}

		for _, p := range r.Pages {
			h := strings.ToLower(p.Title + " " + p.Keywords)
			if !strings.Contains(h, "iron") || !strings.Contains(h, "man") {
				t.Fatalf("Page %q does not contain both terms", p.Title)
			}
		}

		expect := []string{
			"Iron Man (2008)",
			"The Avengers (2012)",
			"Tony Stark / Iron Man",
		}

		if diff := deep.Equal(titles(r.Pages), expect); diff != nil {
			t.Fatal("Unexpected pages:", diff)
		}
	})

	t.Run("CaseAndWhitespace", func(t *testing.T) {
		a := idx.Search("  IRON \t  Man ")
		b := idx.Search("iron man")

		if diff := deep.Equal(a.Pages, b.Pages); diff != nil {
			t.Fatal("Case or whitespace changed results:", diff)
		}
		if a.Query != "  IRON \t  Man " {
			t.Fatalf("Raw query not kept: %q", a.Query)
		}
	})

	t.Run("NoOR", func(t *testing.T) {
		if r := idx.Search("loki hawkeye"); len(r.Pages) != 1 || r.Pages[0].Title != "The Avengers (2012)" {
			t.Fatalf("Unexpected results for AND query: %v", titles(r.Pages))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		for _, q := range []string{"", "   ", "\n\t"} {
			r := idx.Search(q)
			if !r.Prompt || len(r.Pages) != 0 || r.NoResults() {
				t.Fatalf("Query %q: expected prompt, got %#v", q, r)
			}
		}
	})

	t.Run("NoResults", func(t *testing.T) {
		r := idx.Search("<b>thanos</b>")
		if !r.NoResults() {
			t.Fatalf("Expected no results, got %v", titles(r.Pages))
		}
		if r.Query != "<b>thanos</b>" {
			t.Fatalf("Unexpected query: %q", r.Query)
		}
	})
}

func TestTokenize(t *testing.T) {
	if diff := deep.Equal(Tokenize("  Spider-Man   SEASON\t2 "), []string{"spider-man", "season", "2"}); diff != nil {
		t.Fatal(diff)
	}
	if tokens := Tokenize("   "); len(tokens) != 0 {
		t.Fatal("Expected no tokens, got", tokens)
	}
}

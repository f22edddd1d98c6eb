package searchpage

import (
	_ "embed"
	"net/http"

	"github.com/diamondburned/eggboard/eggboard/search"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/footer"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/nav"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
	"github.com/go-chi/chi"
)

//go:embed search.html
var html string

var tmpl = render.BuildPage("search", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav":    nav.Component,
		"footer": footer.Component,
	},
})

type renderCtx struct {
	render.CommonCtx
	Results search.Results
}

// Mount returns the mounter of the search page over the given index.
func Mount(idx *search.Index) func(render.Muxer) http.Handler {
	return func(muxer render.Muxer) http.Handler {
		mux := chi.NewMux()
		mux.Get("/", muxer.M(func(r *render.Request) (render.Render, error) {
			return pageRender(r, idx)
		}))
		return mux
	}
}

func pageRender(r *render.Request, idx *search.Index) (render.Render, error) {
	// Only q is read from the query string.
	results := idx.Search(r.URL.Query().Get("q"))

	body, err := tmpl.Render(renderCtx{
		CommonCtx: r.CommonCtx,
		Results:   results,
	})
	if err != nil {
		return render.Empty, err
	}

	return render.Render{
		Title: "Search",
		Body:  body,
	}, nil
}

package home

import (
	_ "embed"

	"github.com/diamondburned/eggboard/eggboard/search"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"

	// Components
	"github.com/diamondburned/eggboard/frontend/frontserver/components/footer"
	searchbox "github.com/diamondburned/eggboard/frontend/frontserver/components/search"
)

//go:embed home.html
var html string

//go:embed home.css
var css string

func init() {
	render.RegisterCSS(css)
}

var tmpl = render.BuildPage("home", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"search": searchbox.Component,
		"footer": footer.Component,
	},
})

type renderCtx struct {
	render.CommonCtx
	Indexed int
}

// Renderer returns the home page renderer. The index is only used for its
// page count.
func Renderer(idx *search.Index) render.Renderer {
	return func(r *render.Request) (render.Render, error) {
		body, err := tmpl.Render(renderCtx{
			CommonCtx: r.CommonCtx,
			Indexed:   idx.Len(),
		})
		if err != nil {
			return render.Empty, err
		}

		return render.Render{
			Description: "Community archive of easter eggs, filming locations and connections.",
			Body:        body,
		}, nil
	}
}

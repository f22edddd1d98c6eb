package search

import (
	_ "embed"

	"github.com/diamondburned/eggboard/frontend/frontserver/render"
)

//go:embed search.html
var html string

//go:embed search.css
var css string

func init() {
	render.RegisterCSS(css)
}

// Component is the search box. It expects a render.CommonCtx.
var Component = render.Component{
	Template: html,
}

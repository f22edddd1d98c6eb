package nav

import (
	_ "embed"

	"github.com/diamondburned/eggboard/frontend/frontserver/components/search"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
)

//go:embed nav.html
var html string

//go:embed nav.css
var css string

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
	Components: map[string]render.Component{
		"search": search.Component,
	},
}

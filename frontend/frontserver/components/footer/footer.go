package footer

import (
	_ "embed"

	"github.com/diamondburned/eggboard/frontend/frontserver/render"
)

//go:embed footer.html
var html string

//go:embed footer.css
var css string

func init() {
	render.RegisterCSS(css)
}

var Component = render.Component{
	Template: html,
}

package feedback

import (
	_ "embed"

	"github.com/diamondburned/eggboard/frontend/frontserver/components/errbox"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
)

//go:embed feedback.html
var html string

//go:embed feedback.css
var css string

func init() {
	render.RegisterCSS(css)
}

// Component is the status box above a form. It expects a relay.Result and
// renders nothing unless the submission succeeded or failed.
var Component = render.Component{
	Template: html,
	Components: map[string]render.Component{
		"errbox": errbox.Component,
	},
}

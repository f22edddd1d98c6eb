package errbox

import (
	_ "embed"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/diamondburned/eggboard/frontend/frontserver/render"
)

//go:embed errbox.html
var html string

//go:embed errbox.css
var css string

func init() {
	render.RegisterCSS(css)
}

// Component renders the given message string as an alert. Empty messages
// render nothing.
var Component = render.Component{
	Template: html,
}

// MinifyError turns a wrapped error chain into its last, capitalized part.
func MinifyError(err error) string {
	var errmsg = err.Error()
	var parts = strings.Split(errmsg, ": ")

	var part = parts[len(parts)-1]
	// Capitalize the first letter.
	f, sz := utf8.DecodeRuneInString(part)
	if sz > 0 {
		f = unicode.ToUpper(f)
		part = string(f) + part[sz:]
	}

	if !strings.HasSuffix(part, ".") {
		part += "."
	}

	return part
}

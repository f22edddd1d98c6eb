package errorpage

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/diamondburned/eggboard/eggboard/httperr"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/errbox"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/footer"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/nav"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
)

//go:embed errorpage.html
var html string

//go:embed errorpage.css
var css string

func init() {
	render.RegisterCSS(css)
}

var tmpl = render.BuildPage("errorpage", render.Page{
	Template: html,
	Components: map[string]render.Component{
		"nav":    nav.Component,
		"footer": footer.Component,
		"errbox": errbox.Component,
	},
})

type renderCtx struct {
	render.CommonCtx
	Status  int
	Summary string
	Errors  [][]string
}

// StatusText returns the status line, such as "404 Not Found".
func (r renderCtx) StatusText() string {
	return strconv.Itoa(r.Status) + " " + http.StatusText(r.Status)
}

func RenderError(r *render.Request, err error) (render.Render, error) {
	var code = httperr.ErrCode(err)

	// Internal errors are logged by the mux; don't show them to the visitor.
	if code >= 500 {
		err = httperr.New(code, http.StatusText(code))
	}

	var msg = err.Error()

	var lines = strings.Split(msg, "\n")
	var errors = make([][]string, len(lines))

	for i, line := range lines {
		var parts = strings.SplitAfter(line, ": ")

		// Capitalize every single error's first letter.
		for i, err := range parts {
			f, sze := utf8.DecodeRuneInString(err)
			if sze > 0 {
				f = unicode.ToUpper(f)
				parts[i] = string(f) + err[sze:]
			}

			// Append a period at the end for formality.
			if i == len(parts)-1 && !strings.HasSuffix(parts[i], ".") {
				parts[i] += "."
			}
		}

		errors[i] = parts
	}

	body, rerr := tmpl.Render(renderCtx{
		CommonCtx: r.CommonCtx,
		Status:    code,
		Summary:   errbox.MinifyError(err),
		Errors:    errors,
	})
	if rerr != nil {
		return render.Empty, rerr
	}

	return render.Render{
		Title:  http.StatusText(code),
		Status: code,
		Body:   body,
	}, nil
}

// NotFound renders the error page for unknown routes.
func NotFound(r *render.Request) (render.Render, error) {
	return RenderError(r, httperr.New(http.StatusNotFound, "page not found"))
}

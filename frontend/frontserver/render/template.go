package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/html"
)

// runtime minifier
var minifier = func() (minifier *minify.M) {
	minifier = minify.New()
	minifier.AddFunc("text/css", css.Minify)
	minifier.AddFunc("text/html", html.Minify)
	return
}()

var globalFns = template.FuncMap{
	"humanizeNumber": func(number int) string {
		return humanize.Comma(int64(number))
	},
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
	// present returns true if the value has any non-space characters.
	"present": func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
}

// Component is a named sub-template. Template is the template source.
type Component struct {
	Template   string
	Components map[string]Component
	Functions  template.FuncMap
}

type Page struct {
	Template   string
	Components map[string]Component
	Functions  template.FuncMap
}

// prepareList is the list of templates to call prepare on.
var prepareList []*Template

func prepareAllTemplates() {
	for _, tmpl := range prepareList {
		tmpl.prepare()
	}
}

func BuildPage(n string, p Page) *Template {
	tmpl := &Template{
		name: n,
		page: p,
	}

	prepareList = append(prepareList, tmpl)

	return tmpl
}

type Template struct {
	*template.Template
	name string
	page Page
	once sync.Once
}

func (t *Template) prepare() {
	t.once.Do(t.do)
}

// flatten collects the components and their nested components into one map.
func flatten(dst map[string]Component, components map[string]Component) {
	for n, component := range components {
		dst[n] = component
		if component.Components != nil {
			flatten(dst, component.Components)
		}
	}
}

func (t *Template) do() {
	var components = map[string]Component{}
	flatten(components, t.page.Components)

	var functions = template.FuncMap{}
	for n, fn := range t.page.Functions {
		functions[n] = fn
	}

	// Combine all function duplicates.
	for _, component := range components {
		for n, fn := range component.Functions {
			// Only set into the map if we don't already have the function.
			if _, ok := functions[n]; !ok {
				functions[n] = fn
			}
		}
	}

	tmpl := template.New(t.name)
	tmpl = tmpl.Funcs(globalFns)
	tmpl = tmpl.Funcs(functions)
	tmpl = template.Must(tmpl.Parse(t.page.Template))

	// Parse all components' HTMLs.
	for n, component := range components {
		tmpl = template.Must(tmpl.Parse(
			fmt.Sprintf("{{ define %q }}%s{{ end }}", n, component.Template),
		))
	}

	t.Template = tmpl
}

// Render renders the template with the given argument into HTML.
func (t *Template) Render(v interface{}) (template.HTML, error) {
	t.prepare()

	var b bytes.Buffer

	if err := t.Execute(&b, v); err != nil {
		return "", errors.Wrapf(err, "Failed to render %s", t.name)
	}

	return template.HTML(b.String()), nil
}

// RenderComponent renders a single named component of the template.
func (t *Template) RenderComponent(name string, v interface{}) (template.HTML, error) {
	t.prepare()

	var b bytes.Buffer

	if err := t.ExecuteTemplate(&b, name, v); err != nil {
		return "", errors.Wrapf(err, "Failed to render %s/%s", t.name, name)
	}

	return template.HTML(b.String()), nil
}

//go:embed style.css
var baseCSS string

var (
	componentsCSSSrc = []string{baseCSS}
	componentsCSS    = bytes.Buffer{}
	componentModTime = time.Now()
)

// RegisterCSS adds the CSS source to the global CSS file, which can be
// located in /static/components.css. It must be called in init.
func RegisterCSS(src string) {
	componentsCSSSrc = append(componentsCSSSrc, src)
}

func initializeCSS() {
	for _, src := range componentsCSSSrc {
		if err := minifier.Minify("text/css", &componentsCSS, strings.NewReader(src)); err != nil {
			log.Panicln("Failed to minify CSS:", err)
		}
	}
}

func componentsCSSHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	http.ServeContent(
		w, r, "components.css", componentModTime,
		bytes.NewReader(componentsCSS.Bytes()),
	)
}

func minifyHTML(b []byte) []byte {
	var out bytes.Buffer
	if err := minifier.Minify("text/html", &out, bytes.NewReader(b)); err != nil {
		return b
	}
	return out.Bytes()
}

//go:embed index.html
var indexHTML string

var initOnce sync.Once
var index *template.Template

func ensureInit() {
	initOnce.Do(func() {
		index = template.Must(
			template.New("index").Funcs(globalFns).Parse(indexHTML),
		)

		initializeCSS()
		prepareAllTemplates()
	})
}

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/httperr"
	"github.com/go-chi/chi"
)

// Renderer represents a renderable page.
type Renderer = func(r *Request) (Render, error)

// ErrorRenderer represents a renderable page for errors.
type ErrorRenderer = func(r *Request, err error) (Render, error)

type Render struct {
	Title       string // og:title, <title>
	Description string // og:description

	// Status is the response status code. Zero means 200.
	Status int
	// Fragment skips the page layout and writes Body as-is.
	Fragment bool

	Body template.HTML
}

// IsEmpty returns true if the render has nothing to write.
func (r Render) IsEmpty() bool {
	return r.Body == "" && !r.Fragment
}

// Empty is a blank page.
var Empty = Render{}

type Config struct {
	SiteName string `toml:"siteName"`
}

func NewConfig() Config {
	return Config{
		SiteName: "eggboard",
	}
}

func (c *Config) Validate() error {
	if c.SiteName == "" {
		c.SiteName = "eggboard"
	}
	return nil
}

type renderCtx struct {
	Theme  Theme
	Render Render
	Config Config
}

func (r renderCtx) FormatTitle() string {
	if r.Render.Title == "" {
		return r.Config.SiteName
	}
	return fmt.Sprintf("%s - %s", r.Render.Title, r.Config.SiteName)
}

// CommonCtx is embedded into every page's render context.
type CommonCtx struct {
	Config   Config
	Request  *http.Request
	Archives []eggboard.Variant
}

// Query returns the search query of the current request, if any.
func (c CommonCtx) Query() string {
	return c.Request.URL.Query().Get("q")
}

type Request struct {
	*http.Request
	Writer http.ResponseWriter
	CommonCtx
}

func (r *Request) Param(name string) string {
	return chi.URLParam(r.Request, name)
}

type Mux struct {
	*chi.Mux
	cfg      Config
	archives []eggboard.Variant
	errR     ErrorRenderer
}

func NewMux(cfg Config, archives []eggboard.Variant) *Mux {
	ensureInit()

	r := chi.NewMux()
	r.Use(ThemeM)
	r.Post("/theme", handleSetTheme)
	r.Get("/static/components.css", componentsCSSHandler)

	return &Mux{Mux: r, cfg: cfg, archives: archives}
}

func (m *Mux) SetErrorRenderer(r ErrorRenderer) {
	m.errR = r
}

func (m *Mux) NewRequest(w http.ResponseWriter, r *http.Request) *Request {
	return &Request{
		Request: r,
		Writer:  w,
		CommonCtx: CommonCtx{
			Config:   m.cfg,
			Request:  r,
			Archives: m.archives,
		},
	}
}

// M is the middleware wrapper.
func (m *Mux) M(render Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Write the proper headers.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		var request = m.NewRequest(w, r)

		page, err := render(request)
		if err != nil {
			code := httperr.ErrCode(err)
			if code >= 500 {
				log.Printf("Error rendering %s: %v", r.URL.Path, err)
			}

			// If there is no error renderer, then we just write the error down
			// in plain text.
			if m.errR == nil {
				w.WriteHeader(code)
				fmt.Fprintf(w, "Error: %v", err)
				return
			}

			// Render the error page.
			page, err = m.errR(request, err)
			if err != nil {
				// This shouldn't error out, so we should log it.
				log.Println("Error rendering error page:", err)
				w.WriteHeader(code)
				return
			}

			if page.Status == 0 {
				page.Status = code
			}
		}

		// Don't render anything if an empty page is returned and there is no
		// error.
		if page.IsEmpty() {
			return
		}

		if page.Fragment {
			writePage(w, page.Status, []byte(page.Body))
			return
		}

		var renderCtx = renderCtx{
			Theme:  GetTheme(r.Context()),
			Render: page,
			Config: m.cfg,
		}

		var b bytes.Buffer
		if err := index.Execute(&b, renderCtx); err != nil {
			log.Println("Error executing index:", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writePage(w, page.Status, minifyHTML(b.Bytes()))
	}
}

func writePage(w http.ResponseWriter, status int, body []byte) {
	if status != 0 {
		w.WriteHeader(status)
	}
	w.Write(body)
}

func (m *Mux) Get(route string, r Renderer) {
	m.Mux.Get(route, m.M(r))
}

func (m *Mux) Post(route string, r Renderer) {
	m.Mux.Post(route, m.M(r))
}

// Muxer implements the interface that's passable to pages' mount functions.
type Muxer interface {
	M(Renderer) http.HandlerFunc
}

func (m *Mux) Mount(route string, mounter func(Muxer) http.Handler) {
	m.Mux.Mount(route, mounter(m))
}

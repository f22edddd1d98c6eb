package archive

import (
	_ "embed"
	"net/http"

	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/feed"
	"github.com/diamondburned/eggboard/eggboard/relay"
	"github.com/diamondburned/eggboard/eggboard/validate"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/errbox"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/feedback"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/footer"
	"github.com/diamondburned/eggboard/frontend/frontserver/components/nav"
	"github.com/diamondburned/eggboard/frontend/frontserver/internal/form"
	"github.com/diamondburned/eggboard/frontend/frontserver/internal/middleware"
	"github.com/diamondburned/eggboard/frontend/frontserver/render"
	"github.com/go-chi/chi"
)

//go:embed archive.html
var archiveHTML string

//go:embed item.html
var itemHTML string

//go:embed field.html
var fieldHTML string

//go:embed archive.css
var archiveCSS string

func init() {
	render.RegisterCSS(archiveCSS)
}

var tmpl = render.BuildPage("archive", render.Page{
	Template: archiveHTML,
	Components: map[string]render.Component{
		"nav":        nav.Component,
		"footer":     footer.Component,
		"errbox":     errbox.Component,
		"feedback":   feedback.Component,
		"item":       {Template: itemHTML},
		"fielderror": {Template: fieldHTML},
	},
})

// Archive is one archive page: the approved submissions of a variant and the
// form to send a new one.
type Archive struct {
	Variant eggboard.Variant
	Loader  *feed.Loader
	Flow    *relay.Flow
	Schema  validate.Schema
	// SiteKey is the reCAPTCHA site key. The widget is drawn if it's set and
	// the flow has a challenge.
	SiteKey string
	// SubmitLimit, if not nil, wraps the submit route.
	SubmitLimit middleware.F
}

type renderCtx struct {
	render.CommonCtx
	Variant     eggboard.Variant
	Submissions []eggboard.Submission
	Form        *validate.Form
	Result      relay.Result
	SiteKey     string
	Challenge   bool
	Closed      bool
}

type itemCtx struct {
	eggboard.Submission
	Variant eggboard.Variant
}

// Items pairs every submission with the variant's labels.
func (r renderCtx) Items() []itemCtx {
	var items = make([]itemCtx, len(r.Submissions))
	for i, sub := range r.Submissions {
		items[i] = itemCtx{sub, r.Variant}
	}
	return items
}

// Autofocus returns true if the field with the given key should take focus.
func (r renderCtx) Autofocus(key string) bool {
	return r.Result.Focus == key
}

// Mount mounts the archive's routes.
func (a *Archive) Mount(muxer render.Muxer) http.Handler {
	mux := chi.NewMux()
	mux.Get("/", muxer.M(a.pageRender))

	mux.Group(func(mux chi.Router) {
		if a.SubmitLimit != nil {
			mux.Use(a.SubmitLimit)
		}
		mux.Post("/", muxer.M(a.handlePOST))
	})

	mux.Post("/validate/{field}", muxer.M(a.handleValidate))
	return mux
}

func (a *Archive) newCtx(r *render.Request, f *validate.Form, res relay.Result) renderCtx {
	return renderCtx{
		CommonCtx:   r.CommonCtx,
		Variant:     a.Variant,
		Submissions: a.Loader.Load(r.Context()),
		Form:        f,
		Result:      res,
		SiteKey:     a.SiteKey,
		Challenge:   a.SiteKey != "" && a.Flow.HasChallenge(),
		Closed:      a.Flow.Inert(),
	}
}

func (a *Archive) renderPage(ctx renderCtx, status int) (render.Render, error) {
	body, err := tmpl.Render(ctx)
	if err != nil {
		return render.Empty, err
	}

	return render.Render{
		Title:       a.Variant.Heading,
		Description: "Community " + a.Variant.Heading + " archive.",
		Status:      status,
		Body:        body,
	}, nil
}

func (a *Archive) pageRender(r *render.Request) (render.Render, error) {
	f := validate.NewForm(a.Schema, nil)
	return a.renderPage(a.newCtx(r, f, relay.Result{}), 0)
}

func (a *Archive) handlePOST(r *render.Request) (render.Render, error) {
	var entry form.Entry
	if err := form.Unmarshal(r.Request, &entry); err != nil {
		return render.Empty, err
	}

	f := validate.NewForm(a.Schema, entry.Values(a.Variant))

	res := a.Flow.Submit(r.Context(), f, relay.Extras{
		Honeypot:          entry.Honeypot,
		ChallengeResponse: entry.Challenge,
		UserAgent:         r.UserAgent(),
	})

	var status int
	switch res.State {
	case relay.Blocked:
		// The honeypot case renders exactly what the page would have shown
		// before the submit.
		if res.Reason != relay.ReasonHoneypot {
			status = http.StatusUnprocessableEntity
		}
	case relay.Failure:
		status = http.StatusBadGateway
	}

	return a.renderPage(a.newCtx(r, f, res), status)
}

// handleValidate revalidates a single field and returns its error slot. It's
// the per-field input/blur hook.
func (a *Archive) handleValidate(r *render.Request) (render.Render, error) {
	var entry form.Entry
	if err := form.Unmarshal(r.Request, &entry); err != nil {
		return render.Empty, err
	}

	f := validate.NewForm(a.Schema, entry.Values(a.Variant))

	key := r.Param("field")
	if f.Field(key) == nil {
		return render.Empty, eggboard.ErrUnknownField
	}

	f.ValidateField(key)

	body, err := tmpl.RenderComponent("fielderror", f.Field(key))
	if err != nil {
		return render.Empty, err
	}

	return render.Render{Fragment: true, Body: body}, nil
}

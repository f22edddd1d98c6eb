package render

import (
	"context"
	"math"
	"net/http"
	"time"
)

type Theme uint8

const (
	LightTheme Theme = iota
	DarkTheme

	// reserved for internal use
	themeLen
)

const DefaultTheme = DarkTheme

// Themes returns all themes in menu order.
func Themes() []Theme {
	var themes = make([]Theme, themeLen)
	for i := range themes {
		themes[i] = Theme(i)
	}
	return themes
}

func ParseTheme(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "dark":
		return DarkTheme
	}

	return DefaultTheme
}

func (t Theme) String() string {
	switch t {
	case LightTheme:
		return "light"
	case DarkTheme:
		fallthrough
	default:
		return "dark"
	}
}

type _renderctx struct{}

var renderctxkey = _renderctx{}

// ThemeM reads the theme cookie into the request context.
func ThemeM(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var theme = DefaultTheme

		if c, err := r.Cookie("theme"); err == nil {
			theme = ParseTheme(c.Value)
		}

		next.ServeHTTP(
			w,
			r.WithContext(context.WithValue(r.Context(), renderctxkey, theme)),
		)
	})
}

func GetTheme(ctx context.Context) Theme {
	if v, ok := ctx.Value(renderctxkey).(Theme); ok {
		return v
	}
	return DefaultTheme
}

func SetThemeCookie(w http.ResponseWriter, theme Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     "theme",
		Value:    theme.String(),
		Path:     "/",
		Expires:  time.Unix(math.MaxInt32, 0),
		SameSite: http.SameSiteLaxMode,
	})
}

func handleSetTheme(w http.ResponseWriter, r *http.Request) {
	SetThemeCookie(w, ParseTheme(r.FormValue("theme")))

	var back = r.Referer()
	if back == "" {
		back = "/"
	}

	// https://developer.mozilla.org/en-US/docs/Web/HTTP/Redirections
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// All returns all themes; it's used by the theme menu.
func (t Theme) All() []Theme {
	return Themes()
}

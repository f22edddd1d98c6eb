package form

import (
	"net/http"
	"net/url"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/diamondburned/eggboard/eggboard/httperr"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
)

const MaxMemory = int64(2 * datasize.MB)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Entry is a submitted form. It carries every field name any archive uses;
// Values picks the ones of a given variant.
type Entry struct {
	SubmissionType string `schema:"submissionType"`
	Title          string `schema:"title"`
	Timestamp      string `schema:"timestamp"`
	CreditName     string `schema:"creditName"`

	Source    string `schema:"source"`
	Where     string `schema:"where"`
	RelatedTo string `schema:"relatedTo"`

	Analysis string `schema:"analysis"`
	Details  string `schema:"details"`

	Honeypot  string `schema:"_gotcha"`
	Challenge string `schema:"g-recaptcha-response"`
}

func (e Entry) byKey(key string) string {
	switch key {
	case eggboard.KeyType:
		return e.SubmissionType
	case eggboard.KeyTitle:
		return e.Title
	case eggboard.KeyTimestamp:
		return e.Timestamp
	case eggboard.KeyCredit:
		return e.CreditName
	case "source":
		return e.Source
	case "where":
		return e.Where
	case "relatedTo":
		return e.RelatedTo
	case "analysis":
		return e.Analysis
	case "details":
		return e.Details
	default:
		return ""
	}
}

// Values returns the form values of the given variant.
func (e Entry) Values(v eggboard.Variant) url.Values {
	var values = url.Values{}
	for _, key := range v.Keys() {
		values.Set(key, e.byKey(key))
	}
	return values
}

// Unmarshal decodes the form in the given request into the interface.
func Unmarshal(r *http.Request, v interface{}) error {
	// Prioritize multipart.
	switch err := r.ParseMultipartForm(MaxMemory); {
	case err == nil:
		return decode(v, r.MultipartForm.Value)
	case !errors.Is(err, http.ErrNotMultipart):
		return httperr.Wrap(err, http.StatusBadRequest, "Failed to parse multipart form")
	}

	if err := r.ParseForm(); err != nil {
		return httperr.Wrap(err, http.StatusBadRequest, "Failed to parse form")
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPost, http.MethodPut:
		return decode(v, r.PostForm)
	default:
		return decode(v, r.Form)
	}
}

func decode(v interface{}, values map[string][]string) error {
	if err := decoder.Decode(v, values); err != nil {
		return httperr.Wrap(err, http.StatusBadRequest, "Failed to decode form")
	}
	return nil
}

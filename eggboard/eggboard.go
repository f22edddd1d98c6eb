package eggboard

import (
	"net/http"

	"github.com/diamondburned/eggboard/eggboard/httperr"
)

// DefaultType is the submission type shown when a record carries none.
const DefaultType = "Theory"

// Submission is one moderator-approved entry. Which JSON keys fill Source
// and Analysis depends on the Variant the record was decoded with.
type Submission struct {
	Type       string `json:"submissionType"`
	Title      string `json:"title"`
	Source     string `json:"source"`
	Timestamp  string `json:"timestamp,omitempty"`
	Analysis   string `json:"analysis"`
	CreditName string `json:"creditName,omitempty"`
}

// DisplayType returns the submission type or DefaultType if it's empty.
func (s Submission) DisplayType() string {
	if s.Type == "" {
		return DefaultType
	}
	return s.Type
}

// Page is a single record of the search table.
type Page struct {
	Title    string `toml:"title"    json:"title"`
	URL      string `toml:"url"      json:"url"`
	Keywords string `toml:"keywords" json:"keywords"`
}

// ErrResponse is the JSON body of an error response.
type ErrResponse struct {
	Error string `json:"error"`
}

var (
	ErrUnknownVariant = httperr.New(http.StatusNotFound, "unknown archive")
	ErrUnknownField   = httperr.New(http.StatusNotFound, "unknown field")
)

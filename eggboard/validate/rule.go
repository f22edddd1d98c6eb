// Package validate implements the per-field validation rules of the
// submission form and the form controller that tracks their error state.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/diamondburned/eggboard/eggboard"
)

// Messages are the error strings a Rule reports.
type Messages struct {
	Required string
	TooShort string
	TooLong  string
	Pattern  string
}

// Rule is a declarative field rule. Bounds are inclusive and counted in
// runes; a zero bound is unbounded. An empty trimmed value is valid unless
// Required is set, in which case no other check runs.
type Rule struct {
	Required bool
	Min, Max int
	Pattern  *regexp.Regexp
	Messages Messages
}

// Check returns the error message for the given value, or an empty string if
// the value passes.
func (r Rule) Check(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		if r.Required {
			return r.Messages.Required
		}
		return ""
	}

	if r.Pattern != nil && !r.Pattern.MatchString(v) {
		return r.Messages.Pattern
	}

	n := utf8.RuneCountInString(v)
	if r.Min > 0 && n < r.Min {
		return r.Messages.TooShort
	}
	if r.Max > 0 && n > r.Max {
		return r.Messages.TooLong
	}

	return ""
}

// Spec binds a Rule to a form key.
type Spec struct {
	Key  string
	Rule Rule
}

// Schema is the ordered rule table of a form.
type Schema []Spec

// TimestampPattern matches mm:ss or hh:mm:ss with one or two digit hours and
// minutes.
var TimestampPattern = regexp.MustCompile(`^(\d{1,2}:)?\d{1,2}:\d{2}$`)

const (
	TitleMin  = 3
	TitleMax  = 80
	SourceMin = 2
	SourceMax = 60
	TextMin   = 15
	TextMax   = 800
)

// SchemaFor builds the rule table for the given archive variant.
func SchemaFor(v eggboard.Variant) Schema {
	text := strings.ToLower(v.TextLabel)

	return Schema{
		{
			Key: eggboard.KeyType,
			Rule: Rule{
				Required: true,
				Messages: Messages{Required: "Please choose a submission type."},
			},
		},
		{
			Key: eggboard.KeyTitle,
			Rule: Rule{
				Required: true,
				Min:      TitleMin,
				Max:      TitleMax,
				Messages: Messages{
					Required: "Title is required.",
					TooShort: fmt.Sprintf("Title must be at least %d characters.", TitleMin),
					TooLong:  fmt.Sprintf("Title must be %d characters or less.", TitleMax),
				},
			},
		},
		{
			Key: v.SourceKey,
			Rule: Rule{
				Required: true,
				Min:      SourceMin,
				Max:      SourceMax,
				Messages: Messages{
					Required: v.SourceHint,
					TooShort: fmt.Sprintf("This must be at least %d characters.", SourceMin),
					TooLong:  fmt.Sprintf("Please keep this to %d characters or less.", SourceMax),
				},
			},
		},
		{
			Key: eggboard.KeyTimestamp,
			Rule: Rule{
				Pattern:  TimestampPattern,
				Messages: Messages{Pattern: "Use mm:ss or hh:mm:ss (example: 00:42:10)."},
			},
		},
		{
			Key: v.TextKey,
			Rule: Rule{
				Required: true,
				Min:      TextMin,
				Max:      TextMax,
				Messages: Messages{
					Required: v.TextLabel + " is required.",
					TooShort: fmt.Sprintf("Please add more detail (%d+ characters).", TextMin),
					TooLong:  fmt.Sprintf("Please keep %s to %d characters or less.", text, TextMax),
				},
			},
		},
		// Credit is optional and unchecked, but it still travels with the form.
		{Key: eggboard.KeyCredit},
	}
}

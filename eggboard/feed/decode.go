package feed

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/diamondburned/eggboard/eggboard"
	"github.com/pkg/errors"
)

// ErrNotArray is returned by Decode if the payload isn't a JSON array.
var ErrNotArray = errors.New("feed is not a JSON array")

// ErrTrailingData is returned by Decode if anything follows the array.
var ErrTrailingData = errors.New("feed has trailing data")

// Decode reads a JSON array of submission records. Elements that aren't
// objects are skipped. Scalar values are coerced into strings.
func Decode(r io.Reader, v eggboard.Variant) ([]eggboard.Submission, error) {
	var raw json.RawMessage

	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "Failed to decode feed")
	}

	// The payload must be a single JSON value.
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, ErrTrailingData
	}

	if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '[' {
		return nil, ErrNotArray
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, errors.Wrap(err, "Failed to decode feed array")
	}

	var subs = make([]eggboard.Submission, 0, len(elems))

	for _, elem := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			continue
		}

		subs = append(subs, eggboard.Submission{
			Type:       coerce(obj[eggboard.KeyType]),
			Title:      coerce(obj[eggboard.KeyTitle]),
			Source:     coerce(obj[v.SourceKey]),
			Timestamp:  coerce(obj[eggboard.KeyTimestamp]),
			Analysis:   coerce(obj[v.TextKey]),
			CreditName: coerce(obj[eggboard.KeyCredit]),
		})
	}

	return subs, nil
}

// coerce turns a JSON scalar into its display string. Null, absent values and
// nested structures become empty.
func coerce(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}

	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

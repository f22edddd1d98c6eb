package httperr

import (
	"net/http"

	"github.com/pkg/errors"
)

type StatusCoder interface {
	StatusCode() int
}

// ErrCode returns the status code carried by err, or 500 if there is none.
func ErrCode(err error) int {
	return ErrCodeOr(err, http.StatusInternalServerError)
}

// ErrCodeOr is ErrCode with a custom fallback.
func ErrCodeOr(err error, or int) int {
	var sc StatusCoder

	if errors.As(err, &sc) {
		return sc.StatusCode()
	}

	return or
}

type basicError struct {
	code int
	msg  string
}

var (
	_ error       = (*basicError)(nil)
	_ StatusCoder = (*basicError)(nil)
)

func New(code int, msg string) error {
	return basicError{code, msg}
}

func (e basicError) Error() string {
	return e.msg
}

func (e basicError) StatusCode() int {
	return e.code
}

type wrapError struct {
	code int
	wrap error
}

var (
	_ error       = (*wrapError)(nil)
	_ StatusCoder = (*wrapError)(nil)
)

func Wrap(err error, code int, msg string) error {
	if err == nil {
		return nil
	}
	return wrapError{code, errors.Wrap(err, msg)}
}

func (e wrapError) Error() string {
	return e.wrap.Error()
}

func (e wrapError) Unwrap() error {
	return e.wrap
}

func (e wrapError) StatusCode() int {
	return e.code
}

package limread

import (
	"fmt"
	"io"
	"net/http"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/eggboard/frontend/frontserver/internal/middleware"
)

type ErrBodyTooLarge struct {
	Max int64
}

func (err ErrBodyTooLarge) StatusCode() int {
	return http.StatusRequestEntityTooLarge
}

func (err ErrBodyTooLarge) Error() string {
	return fmt.Sprintf(
		"request too large, maximum size allowed is %s",
		datasize.ByteSize(err.Max).HumanReadable(),
	)
}

// LimitBody caps every request body to size.
func LimitBody(size datasize.ByteSize) middleware.F {
	return middleware.P(func(w http.ResponseWriter, r *http.Request) bool {
		r.Body = newReadCloser(NewLimitedReader(r.Body, int64(size.Bytes())), r.Body)
		return true
	})
}

type readCloser struct {
	io.Reader
	io.Closer
}

func newReadCloser(r io.Reader, c io.Closer) readCloser {
	return readCloser{r, c}
}

// LimitedReader errors out with ErrBodyTooLarge once more than Bytes have been
// read.
type LimitedReader struct {
	reader io.LimitedReader
	Bytes  int64
}

func NewLimitedReader(r io.Reader, max int64) *LimitedReader {
	return &LimitedReader{
		reader: io.LimitedReader{R: r, N: max + 1},
		Bytes:  max,
	}
}

func (r *LimitedReader) Read(b []byte) (int, error) {
	n, err := r.reader.Read(b)

	if r.reader.N <= 0 {
		return n, ErrBodyTooLarge{Max: r.Bytes}
	}

	return n, err
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/diamondburned/eggboard/eggboard"
	"github.com/pkg/errors"
)

// DefaultTimeout is the timeout used when none is given.
const DefaultTimeout = 10 * time.Second

// StatusCoder is an interface that ErrUnexpectedStatusCode implements.
type StatusCoder interface {
	StatusCode() int
}

// ErrGetStatusCode gets the status code from error, or returns orCode if it
// can't get any.
func ErrGetStatusCode(err error, orCode int) int {
	var scode StatusCoder
	if errors.As(err, &scode) {
		return scode.StatusCode()
	}
	return orCode
}

type ErrUnexpectedStatusCode struct {
	Code   int
	Body   string
	ErrMsg string
}

func (err ErrUnexpectedStatusCode) StatusCode() int {
	return err.Code
}

func (err ErrUnexpectedStatusCode) Error() string {
	var errstr = fmt.Sprintf("Unexpected status code %d", err.Code)
	switch {
	case err.ErrMsg != "":
		errstr += ": " + err.ErrMsg
	case err.Body != "":
		errstr += ", body: " + err.Body
	}

	return errstr
}

// Client is a thin HTTP client that treats any non-2xx response as an error.
type Client struct {
	http.Client
	agent string
}

// NewClient makes a new client. A zero timeout uses DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		Client: http.Client{Timeout: timeout},
		agent:  "eggboard",
	}
}

func (c *Client) SetUserAgent(userAgent string) {
	c.agent = userAgent
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.agent != "" {
		req.Header.Set("User-Agent", c.agent)
	}

	r, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if r.StatusCode < 200 || r.StatusCode > 299 {
		// Start reading the body for the error.
		defer r.Body.Close()

		var unexp = ErrUnexpectedStatusCode{Code: r.StatusCode}

		b, err := ioutil.ReadAll(io.LimitReader(r.Body, 4096))
		if err == nil {
			var errResp eggboard.ErrResponse
			if json.Unmarshal(b, &errResp); errResp.Error != "" {
				unexp.ErrMsg = errResp.Error
			} else {
				if len(b) > 100 {
					unexp.Body = string(b[:97]) + "..."
				} else {
					unexp.Body = string(b)
				}
			}
		}

		return nil, unexp
	}

	return r, nil
}

// DoJSON does the request and decodes the JSON response into resp if it's
// not nil.
func (c *Client) DoJSON(req *http.Request, resp interface{}) error {
	req.Header.Set("Accept", "application/json")

	q, err := c.Do(req)
	if err != nil {
		return err
	}
	defer q.Body.Close()

	if resp != nil {
		return json.NewDecoder(q.Body).Decode(resp)
	}

	// Drain the body so the connection can be reused.
	io.Copy(ioutil.Discard, q.Body)
	return nil
}

// GetFresh sends a GET request that bypasses any intermediate cache. The
// caller must close the returned body.
func (c *Client) GetFresh(ctx context.Context, url string) (io.ReadCloser, error) {
	r, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create request")
	}

	r.Header.Set("Cache-Control", "no-cache")
	r.Header.Set("Pragma", "no-cache")

	q, err := c.Do(r)
	if err != nil {
		return nil, err
	}

	return q.Body, nil
}

// PostForm posts the values URL-encoded.
func (c *Client) PostForm(ctx context.Context, url string, v url.Values, resp interface{}) error {
	r, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(v.Encode()))
	if err != nil {
		return errors.Wrap(err, "Failed to create request")
	}
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.DoJSON(r, resp)
}

// PostMultipart posts the values as multipart/form-data. Keys are written in
// sorted order.
func (c *Client) PostMultipart(ctx context.Context, url string, v url.Values, resp interface{}) error {
	var body bytes.Buffer

	ctype, err := EncodeMultipart(&body, v)
	if err != nil {
		return err
	}

	r, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return errors.Wrap(err, "Failed to create request")
	}
	r.Header.Set("Content-Type", ctype)

	return c.DoJSON(r, resp)
}

// EncodeMultipart writes v into w as a multipart body and returns its content
// type.
func EncodeMultipart(w io.Writer, v url.Values) (string, error) {
	mw := multipart.NewWriter(w)

	var keys = make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, val := range v[k] {
			if err := mw.WriteField(k, val); err != nil {
				return "", errors.Wrapf(err, "Failed to write field %q", k)
			}
		}
	}

	if err := mw.Close(); err != nil {
		return "", errors.Wrap(err, "Failed to finish multipart body")
	}

	return mw.FormDataContentType(), nil
}

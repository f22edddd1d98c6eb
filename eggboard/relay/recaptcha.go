package relay

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/diamondburned/eggboard/client"
)

// SiteVerifyURL is the reCAPTCHA verification endpoint.
const SiteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Recaptcha is a reCAPTCHA v2 checkbox challenge. Without a secret, a
// non-empty response counts as completed and the relay endpoint is left to
// verify it.
type Recaptcha struct {
	SiteKey string
	Secret  string

	Client    *client.Client
	VerifyURL string // defaults to SiteVerifyURL
}

var _ Challenge = (*Recaptcha)(nil)

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (r *Recaptcha) Completed(ctx context.Context, response string) bool {
	response = strings.TrimSpace(response)
	if response == "" {
		return false
	}

	if r.Secret == "" || r.Client == nil {
		return true
	}

	verifyURL := r.VerifyURL
	if verifyURL == "" {
		verifyURL = SiteVerifyURL
	}

	var resp siteVerifyResponse

	err := r.Client.PostForm(ctx, verifyURL, url.Values{
		"secret":   {r.Secret},
		"response": {response},
	}, &resp)

	if err != nil {
		log.Println("Failed to verify reCAPTCHA:", err)
		return false
	}

	return resp.Success
}

// Forward returns true if the response is left for the relay to verify.
// Tokens are single-use, so one verified here is not relayed.
func (r *Recaptcha) Forward() bool {
	return r.Secret == "" || r.Client == nil
}

// Reset does nothing; every rendered page draws a fresh widget.
func (r *Recaptcha) Reset() {}

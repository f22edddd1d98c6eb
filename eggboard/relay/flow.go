// Package relay runs the submission flow: bot checks, validation, the human
// verification challenge and finally relaying the form to the external form
// endpoint.
package relay

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/diamondburned/eggboard/eggboard/validate"
	useragent "github.com/mileusna/useragent"
)

// Form keys that travel with the submission but are not validated.
const (
	HoneypotKey  = "_gotcha"
	ChallengeKey = "g-recaptcha-response"
)

// User-facing messages.
const (
	MsgSuccess   = "Thanks! Your submission was sent for review. If approved, it will appear on the site."
	MsgFailure   = "Sorry, something went wrong sending your submission. Please try again."
	MsgChallenge = "Please complete the reCAPTCHA verification."
)

type State uint8

const (
	Idle State = iota
	Validating
	Blocked
	Submitting
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Blocked:
		return "blocked"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "???"
	}
}

// Reason says why a submission was blocked.
type Reason uint8

const (
	NotBlocked Reason = iota
	ReasonHoneypot
	ReasonInvalid
	ReasonChallenge
)

// Relay sends a valid submission to the external endpoint.
type Relay interface {
	Send(ctx context.Context, env Envelope) error
}

// Challenge is the human verification step. Reset is called after a
// successful submission. Forward returns false if Completed already spent the
// response, in which case the response isn't relayed.
type Challenge interface {
	Completed(ctx context.Context, response string) bool
	Forward() bool
	Reset()
}

// Envelope is what gets relayed: the validated form values plus the
// unvalidated extras.
type Envelope struct {
	Values    url.Values
	Honeypot  string
	Challenge string
}

// Encode returns the full field set as the form would have posted it.
func (e Envelope) Encode() url.Values {
	v := make(url.Values, len(e.Values)+2)
	for k, vals := range e.Values {
		v[k] = append([]string(nil), vals...)
	}
	v.Set(HoneypotKey, e.Honeypot)
	if e.Challenge != "" {
		v.Set(ChallengeKey, e.Challenge)
	}
	return v
}

// Extras carries the request data that isn't part of the validated form.
type Extras struct {
	Honeypot          string
	ChallengeResponse string
	UserAgent         string
}

// Result is the outcome of one submit attempt. The flow is back in Idle once
// Submit returns; State is the last state before that.
type Result struct {
	State   State
	Reason  Reason
	Message string
	// ChallengeError is shown next to the verification widget.
	ChallengeError string
	// Focus is the key of the first invalid field.
	Focus string
}

// Succeeded returns true if the submission was relayed.
func (r Result) Succeeded() bool { return r.State == Success }

// Failed returns true if the relay rejected the submission.
func (r Result) Failed() bool { return r.State == Failure }

// Flow is the submission state machine. It holds no per-submission state and
// is safe to share.
type Flow struct {
	relay     Relay
	challenge Challenge
	hook      func(State)
}

// NewFlow creates a flow. A nil relay makes the flow inert; a nil challenge
// skips verification.
func NewFlow(relay Relay, challenge Challenge) *Flow {
	return &Flow{relay: relay, challenge: challenge}
}

// OnTransition sets a function called with every state the flow enters. It
// must be set before the flow is used.
func (f *Flow) OnTransition(fn func(State)) {
	f.hook = fn
}

func (f *Flow) enter(s State) {
	if f.hook != nil {
		f.hook(s)
	}
}

func (f *Flow) finish(r Result) Result {
	f.enter(r.State)
	f.enter(Idle)
	return r
}

// Inert returns true if the flow can't submit anything.
func (f *Flow) Inert() bool {
	return f == nil || f.relay == nil
}

// HasChallenge returns true if a verification challenge is configured.
func (f *Flow) HasChallenge() bool {
	return f != nil && f.challenge != nil
}

// Submit runs one submit attempt against the form. Each step may veto the
// submission; the form is only reset on success.
func (f *Flow) Submit(ctx context.Context, form *validate.Form, ex Extras) Result {
	if f.Inert() || form.Inert() {
		return Result{State: Idle}
	}

	f.enter(Validating)

	// Bots fill in the hidden field. Drop them without telling.
	if strings.TrimSpace(ex.Honeypot) != "" {
		ua := useragent.Parse(ex.UserAgent)
		log.Printf("Dropped honeypot submission from %q (%s, bot=%v)", ua.Name, ua.OS, ua.Bot)
		return f.finish(Result{State: Blocked, Reason: ReasonHoneypot})
	}

	if !form.ValidateAll() {
		var r = Result{State: Blocked, Reason: ReasonInvalid}
		if first := form.FirstInvalid(); first != nil {
			r.Focus = first.Key
		}
		return f.finish(r)
	}

	if f.challenge != nil && !f.challenge.Completed(ctx, ex.ChallengeResponse) {
		return f.finish(Result{
			State:          Blocked,
			Reason:         ReasonChallenge,
			ChallengeError: MsgChallenge,
		})
	}

	f.enter(Submitting)

	env := Envelope{
		Values:    form.Values(),
		Honeypot:  ex.Honeypot,
		Challenge: ex.ChallengeResponse,
	}
	if f.challenge != nil && !f.challenge.Forward() {
		env.Challenge = ""
	}

	err := f.relay.Send(ctx, env)
	if err != nil {
		return f.finish(Result{State: Failure, Message: MsgFailure})
	}

	form.Reset()
	if f.challenge != nil {
		f.challenge.Reset()
	}

	return f.finish(Result{State: Success, Message: MsgSuccess})
}

package limit

import (
	"net/http"
	"time"

	"github.com/diamondburned/eggboard/frontend/frontserver/internal/middleware"
	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
)

// Message is written when a client is over the limit.
const Message = "Too many submissions. Please wait a moment and try again."

// RateLimit limits each client IP to n requests per second.
func RateLimit(n float64) middleware.F {
	l := tollbooth.NewLimiter(n, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})
	// RemoteAddr is always set, so the headers are never consulted. A proxy's
	// forwarded address reaches RemoteAddr through the RealIP middleware.
	l.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})

	return middleware.P(func(w http.ResponseWriter, r *http.Request) bool {
		if err := tollbooth.LimitByRequest(l, w, r); err != nil {
			http.Error(w, Message, err.StatusCode)
			return false
		}
		return true
	})
}

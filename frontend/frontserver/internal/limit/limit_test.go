package limit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	h := RateLimit(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var codes []int
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2"} {
		r := httptest.NewRequest("POST", "/eastereggs", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		r.Header.Set("X-Forwarded-For", forwarded)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	if codes[0] != 200 {
		t.Fatal("First request limited:", codes[0])
	}
	if codes[1] != http.StatusTooManyRequests {
		t.Fatal("Spoofed X-Forwarded-For escaped the limit:", codes[1])
	}
}

package restyutil

import (
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Pace makes the client hold every outgoing request until at least
// `minInterval` has passed since the previous request was dispatched.
// the gate applies to request start times, not completions, and is
// owned by the client instance, so separate runs never share pacing
// state.
//
// a burst of 1 means there is no catching up after idle periods: the
// first request goes out immediately, every later one waits its turn.
func Pace(client *resty.Client, minInterval time.Duration) {
	if minInterval <= 0 {
		return
	}
	limiter := rate.NewLimiter(rate.Every(minInterval), 1)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})
}

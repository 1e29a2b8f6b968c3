package collyfetcher

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JakeFAU/urinfo/internal/metrics"
)

// instrumentedTransport counts every round trip, redirect hops included.
type instrumentedTransport struct {
	base http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, errors.New("instrumented transport received nil request")
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		metrics.ObserveUpstream(req.Method, "error")
		return nil, fmt.Errorf("upstream roundtrip: %w", err)
	}
	metrics.ObserveUpstream(req.Method, metrics.StatusClass(resp.StatusCode))
	return resp, nil
}

package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Transport is an http.RoundTripper for outgoing calls that:
//  1. Sets an X-Request-ID header when the request has none.
//  2. Logs the completed call with status and latency via the context logger.
type Transport struct {
	Base http.RoundTripper
	// Logger is used when the request context carries no logger.
	Logger *zerolog.Logger
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger zerolog.Logger) *Transport {
	return &Transport{Base: base, Logger: &logger}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := req.Header.Get(headerRequestID)
	if reqID == "" {
		reqID = uuid.New().String()
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set(headerRequestID, reqID)
	}

	l := t.logger(req)
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)

	evt := l.Debug()
	if err != nil {
		evt = l.Warn().Err(err)
	} else {
		evt = evt.Int(FieldStatus, resp.StatusCode)
	}
	evt.
		Str(FieldRequestID, reqID).
		Str(FieldMethod, req.Method).
		Str(FieldURL, req.URL.String()).
		Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
		Msg("outgoing request completed")

	return resp, err
}

func (t *Transport) logger(req *http.Request) zerolog.Logger {
	if _, ok := req.Context().Value(ctxKey{}).(zerolog.Logger); ok {
		return Ctx(req.Context())
	}
	if t.Logger != nil {
		return *t.Logger
	}
	return L()
}

package middleware

import (
	"net/http"
	"time"
)

// Options selects the optional layers of the middleware stack.
type Options struct {
	// CORSOrigin enables CORS for the given origin. Empty disables it.
	CORSOrigin string
	// MaxBodyBytes caps request bodies. Zero or negative disables the cap.
	MaxBodyBytes int64
	// RequestTimeout bounds each request. Zero disables the timeout.
	RequestTimeout time.Duration
}

const timeoutBody = `{"error":"request timeout"}`

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → MaxBytes → Timeout → mux
func Chain(handler http.Handler, opts Options) http.Handler {
	h := handler
	if opts.RequestTimeout > 0 {
		h = jsonTimeout(http.TimeoutHandler(h, opts.RequestTimeout, timeoutBody))
	}
	if opts.MaxBodyBytes > 0 {
		h = MaxBytes(opts.MaxBodyBytes)(h)
	}
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	if opts.CORSOrigin != "" {
		h = CORS(opts.CORSOrigin)(h)
	}
	return h
}

// jsonTimeout labels the TimeoutHandler's 503 body as JSON. A 503 from the
// wrapped handler keeps its own Content-Type.
func jsonTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&timeoutWriter{ResponseWriter: w}, r)
	})
}

type timeoutWriter struct {
	http.ResponseWriter
}

func (tw *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && tw.Header().Get("Content-Type") == "" {
		tw.Header().Set("Content-Type", "application/json")
	}
	tw.ResponseWriter.WriteHeader(code)
}

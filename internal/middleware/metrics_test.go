package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Yarielito06/humanizer-app/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	t.Run("increments counter on 200", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := Metrics(inner)

		before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/api/health", "200"))

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/api/health", "200"))
		if after != before+1 {
			t.Errorf("counter: got %f, want %f", after, before+1)
		}
	})

	t.Run("tracks 405 on the rewrite route", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusMethodNotAllowed)
		})
		handler := Metrics(inner)

		before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/api/humanize", "405"))

		req := httptest.NewRequest(http.MethodGet, "/api/humanize", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/api/humanize", "405"))
		if after != before+1 {
			t.Errorf("counter: got %f, want %f", after, before+1)
		}
	})

	t.Run("unknown paths share one label", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		handler := Metrics(inner)

		before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "other", "404"))

		for _, p := range []string{"/missing", "/wp-admin", "/api/humanize/extra"} {
			req := httptest.NewRequest(http.MethodGet, p, nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "other", "404"))
		if after != before+3 {
			t.Errorf("counter: got %f, want %f", after, before+3)
		}
	})
}

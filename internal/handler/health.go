package handler

import (
	"net/http"

	"github.com/Yarielito06/humanizer-app/internal/metrics"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Ready    bool   `json:"ready"`
	Reason   string `json:"reason,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Health reports whether the configured provider can serve rewrites. It
// always answers 200; a provider without its credential is "degraded".
func Health(gen rewrite.Generator, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:   "ok",
			Provider: gen.Name(),
			Ready:    true,
			Version:  version,
		}
		if err := gen.Ready(); err != nil {
			resp.Status = "degraded"
			resp.Ready = false
			resp.Reason = err.Error()
		}

		ready := 0.0
		if resp.Ready {
			ready = 1
		}
		metrics.ProviderReady.WithLabelValues(resp.Provider).Set(ready)

		writeJSON(w, http.StatusOK, resp)
	}
}

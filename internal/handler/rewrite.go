package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Yarielito06/humanizer-app/internal/metrics"
	"github.com/Yarielito06/humanizer-app/internal/middleware"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

type rewriteRequest struct {
	// Text is a pointer so a missing key can be told apart from "".
	Text *string `json:"text"`
}

type rewriteResponse struct {
	Result string `json:"result"`
}

// Rewrite serves POST /api/humanize. Every failure other than the method
// check is reported as 500 with the error's message.
func Rewrite(svc *rewrite.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			fail(w, r, rewrite.Errorf(rewrite.KindMethodNotAllowed, rewrite.MsgMethodNotAllowed))
			return
		}

		var req rewriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				fail(w, r, &rewrite.Error{Kind: rewrite.KindTransport, Message: "request body too large", Err: err})
				return
			}
			fail(w, r, &rewrite.Error{Kind: rewrite.KindTransport, Message: "invalid JSON body", Err: err})
			return
		}
		if req.Text == nil {
			fail(w, r, rewrite.Errorf(rewrite.KindTransport, "text is required"))
			return
		}

		metrics.InputChars.Observe(float64(len(*req.Text)))

		start := time.Now()
		result, err := svc.Rewrite(r.Context(), *req.Text)
		metrics.RewriteDuration.WithLabelValues(svc.Provider()).Observe(time.Since(start).Seconds())
		if err != nil {
			fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, rewriteResponse{Result: result})
	}
}

// fail logs err once with its kind and writes the error response.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var re *rewrite.Error
	if !errors.As(err, &re) {
		re = &rewrite.Error{Kind: rewrite.KindUnknown, Message: err.Error(), Err: err}
	}

	if re.Kind != rewrite.KindMethodNotAllowed {
		metrics.RewriteFailures.WithLabelValues(re.Kind.String()).Inc()
		attrs := []any{
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"kind", re.Kind.String(),
			"error", re.Error(),
		}
		if re.Err != nil {
			attrs = append(attrs, "cause", re.Err.Error())
		}
		slog.Error("rewrite failed", attrs...)
	}

	writeError(w, re.Kind.Status(), re.Error())
}

// Package api holds the Vercel Go function for the rewrite endpoint.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Yarielito06/humanizer-app/internal/rewrite"
	"github.com/Yarielito06/humanizer-app/internal/server"
)

var (
	once    sync.Once
	app     *server.App
	initErr error
)

// Handler is the Vercel entrypoint. The app is built on the first request
// of each cold start; configuration comes from the project's environment.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		app, initErr = server.FromEnvironment("vercel")
	})
	serve(w, r, app, initErr)
}

// serve runs the rewrite handler, or reports a failed startup. The method
// check still comes first when startup failed.
func serve(w http.ResponseWriter, r *http.Request, a *server.App, startErr error) {
	if startErr == nil {
		a.Rewrite.ServeHTTP(w, r)
		return
	}

	code, msg := http.StatusInternalServerError, startErr.Error()
	if r.Method != http.MethodPost {
		code, msg = http.StatusMethodNotAllowed, rewrite.MsgMethodNotAllowed
	} else {
		slog.Error("startup failed", "error", startErr)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

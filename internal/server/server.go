package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yarielito06/humanizer-app/internal/adapter"
	"github.com/Yarielito06/humanizer-app/internal/config"
	"github.com/Yarielito06/humanizer-app/internal/handler"
	"github.com/Yarielito06/humanizer-app/internal/metrics"
	"github.com/Yarielito06/humanizer-app/internal/middleware"
	"github.com/Yarielito06/humanizer-app/internal/rewrite"
)

// RewritePath is the route of the rewrite endpoint on the full mux.
const RewritePath = "/api/humanize"

// Options holds everything SetupMux wires together.
type Options struct {
	Service    *rewrite.Service
	Generator  rewrite.Generator
	Models     []adapter.ModelInfo
	Version    string
	Middleware middleware.Options
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(opts.Generator, opts.Version))
	mux.HandleFunc("/api/models", handler.Models(opts.Models))
	mux.HandleFunc(RewritePath, handler.Rewrite(opts.Service))
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(mux, opts.Middleware)
}

// App is what every entrypoint runs: the configured provider, the service
// around it and the HTTP handlers that expose it.
type App struct {
	Generator rewrite.Generator
	Service   *rewrite.Service
	Model     adapter.ModelInfo
	// Handler serves every route.
	Handler http.Handler
	// Rewrite serves only the rewrite endpoint, on any path. Serverless
	// surfaces that own a single route use it.
	Rewrite http.Handler
}

// Build constructs the App for cfg. prompts supplies the instructional
// template; useMock forces the mock provider.
func Build(cfg config.Config, prompts rewrite.PromptSource, useMock bool, version string) (*App, error) {
	gen, model, err := adapter.New(cfg, useMock)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	svc := rewrite.NewService(gen, prompts)

	mwOpts := MiddlewareOptions(cfg)

	ready := 1.0
	if err := gen.Ready(); err != nil {
		ready = 0
		slog.Warn("provider not ready", "provider", gen.Name(), "reason", err.Error())
	}
	metrics.ProviderReady.WithLabelValues(gen.Name()).Set(ready)

	return &App{
		Generator: gen,
		Service:   svc,
		Model:     model,
		Handler: SetupMux(Options{
			Service:    svc,
			Generator:  gen,
			Models:     []adapter.ModelInfo{model},
			Version:    version,
			Middleware: mwOpts,
		}),
		Rewrite: middleware.Chain(handler.Rewrite(svc), mwOpts),
	}, nil
}

func MiddlewareOptions(cfg config.Config) middleware.Options {
	return middleware.Options{
		CORSOrigin:     cfg.CORSOrigin,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
	}
}

// NewHTTPServer returns an *http.Server listening on port.
func NewHTTPServer(port int, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

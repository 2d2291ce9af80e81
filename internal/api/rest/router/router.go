package router

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/dtroode/rolodex/internal/api/rest/middleware"
	"github.com/dtroode/rolodex/internal/logger"
	"github.com/dtroode/rolodex/internal/model"
)

const (
	APIPrefix    = "/api"
	readyTimeout = 2 * time.Second
)

// Registrar mounts operations on a huma API.
type Registrar interface {
	Register(api huma.API)
}

type Options struct {
	Title    string
	Version  string
	Revision string
	Logger   *logger.Logger
	// Ready is pinged by /readiness. Nil means always ready.
	Ready model.Pinger
	// Contacts reports the store size for the rolodex_contacts gauge.
	Contacts func() int
}

// New returns a mux serving the operational endpoints and the API
// operations of registrars under APIPrefix.
func New(opts Options, registrars ...Registrar) *http.ServeMux {
	set := metrics.NewSet()
	if opts.Contacts != nil {
		set.NewGauge("rolodex_contacts", func() float64 { return float64(opts.Contacts()) })
	}

	buildInfo := fmt.Sprintf("build_info{goversion=%q,title=%q,version=%q,revision=%q} 1\n",
		runtime.Version(), opts.Title, opts.Version, opts.Revision)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /liveness", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("GET /readiness", readiness(opts.Ready, opts.Logger))
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, buildInfo)
		set.WritePrometheus(w)
		metrics.WriteProcessMetrics(w)
	})

	root := humago.New(mux, huma.DefaultConfig(opts.Title, opts.Version))
	api := huma.NewGroup(root, APIPrefix)
	api.UseMiddleware(
		middleware.RequestLogger(opts.Logger),
		middleware.Meter(set),
		middleware.Recover(opts.Logger),
	)
	for _, r := range registrars {
		r.Register(api)
	}

	return mux
}

func readiness(p model.Pinger, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p == nil {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			logger.Warn("readiness check failed", "error", err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	}
}

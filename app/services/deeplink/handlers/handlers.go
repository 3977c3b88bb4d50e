// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "github.com/bipwallet/deeplink/app/services/deeplink/handlers/v1"
	"github.com/bipwallet/deeplink/business/confirm"
	"github.com/bipwallet/deeplink/business/deeplink"
	"github.com/bipwallet/deeplink/business/web/v1/mid"
	"github.com/bipwallet/deeplink/foundation/events"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/nameservice"
	"github.com/bipwallet/deeplink/foundation/web"
)

// MuxConfig contains all mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	Router   *deeplink.Router
	Builder  confirm.Builder
	Coins    *coin.Store
	NS       *nameservice.NameService
	Evts     *events.Events
}

// PublicMux constructs a http.Handler with all application routes defined.
func PublicMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Metrics(),
		mid.Errors(cfg.Log),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*", h, mid.Cors("*"))

	// Load the v1 routes.
	v1.PublicRoutes(app, v1.Config{
		Log:     cfg.Log,
		Router:  cfg.Router,
		Builder: cfg.Builder,
		Coins:   cfg.Coins,
		NS:      cfg.NS,
		Evts:    cfg.Evts,
	})

	return app
}

// DebugMux registers the profiling, expvar and prometheus endpoints on a
// mux that is never exposed publicly.
func DebugMux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

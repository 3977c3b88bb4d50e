// Package v1 contains the full set of handler functions and
// routes supported by the v1 web api.
package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bipwallet/deeplink/app/services/deeplink/handlers/v1/public"
	"github.com/bipwallet/deeplink/business/confirm"
	"github.com/bipwallet/deeplink/business/deeplink"
	"github.com/bipwallet/deeplink/foundation/events"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/nameservice"
	"github.com/bipwallet/deeplink/foundation/web"
)

const version = "v1"

// Config contains all mandatory systems required by handlers.
type Config struct {
	Log     *zap.SugaredLogger
	Router  *deeplink.Router
	Builder confirm.Builder
	Coins   *coin.Store
	NS      *nameservice.NameService
	Evts    *events.Events
}

// PublicRoutes binds all version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:     cfg.Log,
		Router:  cfg.Router,
		Builder: cfg.Builder,
		Store:   cfg.Coins,
		NS:      cfg.NS,
		Evts:    cfg.Evts,
	}

	app.Handle(http.MethodPost, version, "/links/decode", pbl.DecodeLink)
	app.Handle(http.MethodPost, version, "/links/encode", pbl.EncodeLink)
	app.Handle(http.MethodGet, version, "/tx/:"+deeplink.ParamData, pbl.Tx)
	app.Handle(http.MethodGet, version, "/coins", pbl.Coins)
	app.Handle(http.MethodGet, version, "/names", pbl.Names)
	app.Handle(http.MethodPost, version, "/names", pbl.AddName)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)

	// Web links land here when the wallet app isn't installed to catch them.
	app.Handle(http.MethodGet, "", "/tx/:"+deeplink.ParamData, pbl.Open)
}

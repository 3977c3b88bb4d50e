package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"

	"github.com/bipwallet/deeplink/app/services/deeplink/handlers"
	"github.com/bipwallet/deeplink/business/confirm"
	"github.com/bipwallet/deeplink/business/deeplink"
	"github.com/bipwallet/deeplink/foundation/events"
	"github.com/bipwallet/deeplink/foundation/logger"
	"github.com/bipwallet/deeplink/foundation/minter/coin"
	"github.com/bipwallet/deeplink/foundation/minter/explorer"
	"github.com/bipwallet/deeplink/foundation/nameservice"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("DEEPLINK")
	if err != nil {
		fmt.Fprint(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
		}
		Link struct {
			Scheme    string        `conf:"default:minter"`
			Hosts     []string      `conf:"default:bip.to"`
			BaseCoin  string        `conf:"default:BIP"`
			CacheSize int           `conf:"default:500"`
			CacheTTL  time.Duration `conf:"default:1m"`
		}
		Coins struct {
			File string `conf:"default:zblock/coins.yaml"`
		}
		Explorer struct {
			URL      string        `conf:"default:https://explorer-api.minter.network"`
			Interval time.Duration `conf:"default:5m"`
			Timeout  time.Duration `conf:"default:10s"`
			Disabled bool          `conf:"default:false"`
		}
		NameService struct {
			Folder string `conf:"default:zblock/accounts/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "BIPWallet deep link decoder",
		},
	}

	const prefix = "DEEPLINK"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	ns, err := nameservice.New(cfg.NameService.Folder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	for account, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", account)
	}

	// =========================================================================
	// Coin Table Support

	store := coin.NewStore(coin.Coin{ID: coin.BaseCoinID, Symbol: cfg.Link.BaseCoin})

	switch coins, err := coin.LoadFile(cfg.Coins.File); {
	case errors.Is(err, os.ErrNotExist):
		log.Infow("startup", "status", "coin table file not found", "file", cfg.Coins.File)
	case err != nil:
		return fmt.Errorf("loading coin table: %w", err)
	default:
		store.Replace(coins)
		log.Infow("startup", "status", "coin table loaded", "file", cfg.Coins.File, "coins", len(coins))
	}

	// =========================================================================
	// Deep Link Support

	router := deeplink.New(deeplink.Config{
		Scheme:    cfg.Link.Scheme,
		Hosts:     cfg.Link.Hosts,
		BaseCoin:  cfg.Link.BaseCoin,
		Coins:     store,
		CacheSize: cfg.Link.CacheSize,
		CacheTTL:  cfg.Link.CacheTTL,
	})

	builder := confirm.Builder{
		Coins:    store,
		Names:    ns,
		BaseCoin: cfg.Link.BaseCoin,
	}

	evts := events.New()

	// =========================================================================
	// Explorer Support

	if !cfg.Explorer.Disabled {
		ev := func(v string, args ...any) {
			s := fmt.Sprintf(v, args...)
			log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
			evts.Send(s)
		}

		syncer := explorer.NewSyncer(explorer.New(cfg.Explorer.URL, cfg.Explorer.Timeout), store, cfg.Explorer.Interval, ev)
		syncer.OnChange(router.Purge)
		syncer.Start()
		defer syncer.Shutdown()
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, handlers.DebugMux()); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	// Construct the mux for the public API calls.
	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Router:   router,
		Builder:  builder,
		Coins:    store,
		NS:       ns,
		Evts:     evts,
	})

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}

package serverfx

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/reskit/reskit/pkg/manifest"
	"github.com/reskit/reskit/pkg/middleware/guard"
	"github.com/reskit/reskit/pkg/middleware/logger"
	"github.com/reskit/reskit/pkg/middleware/metrics"
	"github.com/reskit/reskit/pkg/resource"
	"github.com/reskit/reskit/pkg/transport/httpx"
)

// Options allow per-service env keys/defaults without code duplication.
type Options struct {
	Service         string // e.g. "users"
	ManifestEnv     string // e.g. "USERS_MANIFEST"
	DefaultManifest string // e.g. "manifest.toml"
	ListenAddrEnv   string // e.g. "SERVER_LISTEN_ADDRESS"
	DefaultListen   string // e.g. ":4000"
	TLSCertEnv      string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv       string // e.g. "SSL_SERVER_KEY"
}

// ---- Resource ----

type resourceDeps struct {
	fx.In

	Opts    Options
	Builder *resource.Builder
	Log     *zap.Logger
}

func provideResource(d resourceDeps) *resource.Resource {
	cfgPath := envOr(d.Opts.ManifestEnv, d.Opts.DefaultManifest)
	cfg, err := manifest.Load(cfgPath)
	if err != nil {
		d.Log.Fatal("manifest load failed", zap.Error(err), zap.String("path", cfgPath))
	}
	res := cfg.Apply(d.Builder.WithLogger(d.Log)).Build()

	// Unresolved aliases are legal until called; say so once at boot.
	for _, a := range res.APIs() {
		if _, ok := res.GetAction(a.Action); !ok {
			d.Log.Warn("api aliases unregistered action",
				zap.String("route", a.Route),
				zap.String("action", a.Action),
			)
		}
	}
	return res
}

// ---- Router ----

type routerDeps struct {
	fx.In

	Opts Options

	Guard *guard.Middleware
	LogMW *logger.Middleware

	Metrics http.Handler `name:"metrics"`

	Res *resource.Resource
	R   httpx.Router
}

func provideRouter(d routerDeps) http.Handler {
	r := d.R
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.Guard != nil && d.Guard.Enabled() {
		r.Use(d.Guard.Middleware())
	}
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	r.Use(metrics.Collect())

	r.Handle(http.MethodGet, "/metrics", d.Metrics)

	httpx.Mount(r, d.Res)
	return r.Mux()
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In
	Opts   Options
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Opts.ListenAddrEnv, d.Opts.DefaultListen)
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
				)
				go func() {
					srv.TLSConfig = nil
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- Public Fx module ----

// Module wires a manifest-configured resource behind an HTTP server. The
// application supplies its *resource.Builder — actions and notifiers
// already registered — via fx.Supply or a provider; the manifest
// contributes context and api aliases.
func Module(opts Options) fx.Option {
	return fx.Options(
		// Supply options to DI.
		fx.Supply(opts),

		// Middleware modules
		guard.Module,
		logger.Module,

		// Metrics (named)
		fx.Provide(fx.Annotate(metrics.ProvideMetrics, fx.ResultTags(`name:"metrics"`))),

		// Router implementation
		fx.Provide(httpx.NewChi),

		// Built resource (manifest applied over the supplied builder)
		fx.Provide(provideResource),

		// Router (named "app")
		fx.Provide(
			fx.Annotate(
				provideRouter,
				fx.ResultTags(`name:"app"`),
			),
		),

		// App lifecycle (starts HTTP server)
		fx.Invoke(registerHooks),
	)
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Package server arma el grafo de dependencias completo a partir de la
// configuración y devuelve el handler listo para servir.
package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dropDatabas3/itemboard/internal/cache"
	memcache "github.com/dropDatabas3/itemboard/internal/cache/memory"
	redcache "github.com/dropDatabas3/itemboard/internal/cache/redis"
	"github.com/dropDatabas3/itemboard/internal/config"
	"github.com/dropDatabas3/itemboard/internal/directory"
	authctrl "github.com/dropDatabas3/itemboard/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/itemboard/internal/http/controllers/health"
	profilectrl "github.com/dropDatabas3/itemboard/internal/http/controllers/profile"
	webhookctrl "github.com/dropDatabas3/itemboard/internal/http/controllers/webhook"
	"github.com/dropDatabas3/itemboard/internal/http/router"
	authsvc "github.com/dropDatabas3/itemboard/internal/http/services/auth"
	webhooksvc "github.com/dropDatabas3/itemboard/internal/http/services/webhook"
	"github.com/dropDatabas3/itemboard/internal/metrics"
	"github.com/dropDatabas3/itemboard/internal/rate"
	"github.com/dropDatabas3/itemboard/internal/security/sessioncookie"
)

// Version se inyecta en build time vía -ldflags.
var Version = "dev"

// Server agrupa el handler raíz y los services con ciclo de vida propio.
type Server struct {
	Handler http.Handler

	// Relay mantiene reenvíos de webhook en vuelo; Drain() en shutdown.
	Relay webhooksvc.Service
}

// New construye todo el grafo de dependencias desde la configuración.
func New(cfg *config.Config) (*Server, error) {
	// Paso 1: cliente del directorio GraphQL.
	dir := directory.New(cfg.GraphQL.Endpoint, cfg.GraphQL.AdminSecret, cfg.DirectoryTimeout())

	// Paso 2: codec de la cookie de sesión.
	cookies, err := sessioncookie.New(sessioncookie.Options{
		Secret:     cfg.SessionSecret,
		EncKey:     cfg.SessionEncKey,
		CookieName: cfg.Session.CookieName,
		Domain:     cfg.Session.Domain,
		SameSite:   cfg.Session.SameSite,
		Secure:     cfg.Session.Secure,
		TTL:        cfg.SessionTTL(),
	})
	if err != nil {
		return nil, fmt.Errorf("server: session codec: %w", err)
	}

	// Paso 3: cache de usuarios y rate limiter según backend configurado.
	var (
		userCache    cache.Cache
		loginLimiter rate.Limiter
	)
	switch cfg.Cache.Kind {
	case "redis":
		rc := redcache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
		userCache = rc
		if cfg.Rate.Enabled {
			loginLimiter = rate.NewRedisLimiter(
				rc.Client(),
				cfg.Cache.Redis.Prefix+"rate:login:",
				cfg.Rate.Login.Limit,
				cfg.LoginRateWindow(),
			)
		}
	case "memory":
		userCache = memcache.New(cfg.CacheDefaultTTL())
		if cfg.Rate.Enabled {
			loginLimiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		}
	default:
		return nil, fmt.Errorf("server: unknown cache kind %q", cfg.Cache.Kind)
	}

	// Paso 4: métricas.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(registry); err != nil {
		return nil, fmt.Errorf("server: register metrics: %w", err)
	}

	// Paso 5: services.
	authService := authsvc.NewService(authsvc.Deps{
		Directory:    dir,
		Cookies:      cookies,
		Cache:        userCache,
		UserCacheTTL: cfg.UserCacheTTL(),
	})
	relay := webhooksvc.NewService(webhooksvc.Deps{
		Directory: dir,
		Timeout:   cfg.DirectoryTimeout(),
	})

	// Paso 6: controllers y router.
	handler := router.New(router.Deps{
		Auth:         authctrl.NewControllers(authService),
		Profile:      profilectrl.NewController(authService, dir),
		Webhook:      webhookctrl.NewController(relay, cfg.APISecret),
		Health:       healthctrl.NewController(Version),
		LoginLimiter: loginLimiter,
		Registry:     registry,
	})

	return &Server{Handler: handler, Relay: relay}, nil
}

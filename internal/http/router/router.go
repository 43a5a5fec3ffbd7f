// Package router arma el árbol de rutas HTTP.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authctrl "github.com/dropDatabas3/itemboard/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/itemboard/internal/http/controllers/health"
	profilectrl "github.com/dropDatabas3/itemboard/internal/http/controllers/profile"
	webhookctrl "github.com/dropDatabas3/itemboard/internal/http/controllers/webhook"
	"github.com/dropDatabas3/itemboard/internal/http/helpers"
	mw "github.com/dropDatabas3/itemboard/internal/http/middlewares"
	"github.com/dropDatabas3/itemboard/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	// Controllers
	Auth    *authctrl.Controllers
	Profile *profilectrl.Controller
	Webhook *webhookctrl.Controller
	Health  *healthctrl.Controller

	// LoginLimiter (opcional) limita intentos de login por IP.
	LoginLimiter rate.Limiter

	// Registry (opcional) expone /metrics cuando está presente.
	Registry *prometheus.Registry
}

// New registra todas las rutas y devuelve el handler raíz.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	registerAuthRoutes(r, deps)
	registerProfileRoutes(r, deps)
	registerWebhookRoutes(r, deps)
	registerHealthRoutes(r, deps)

	// GET / - índice público, solo orientación.
	r.Method(http.MethodGet, "/", baseHandler(http.HandlerFunc(indexHandler)))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
			deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}

// baseHandler es el chain de infraestructura común a toda ruta.
func baseHandler(h http.Handler, extra ...mw.Middleware) http.Handler {
	mws := []mw.Middleware{
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithSecurityHeaders(),
		mw.WithLogging(),
	}
	mws = append(mws, extra...)
	return mw.Chain(h, mws...)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "itemboard",
		"login":   "/login",
		"profile": "/profile",
	})
}

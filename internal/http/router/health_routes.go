package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/itemboard/internal/http/middlewares"
)

// registerHealthRoutes registra rutas de health check.
// Sin logging: los probes son muy frecuentes.
func registerHealthRoutes(r chi.Router, deps Deps) {
	r.Method(http.MethodGet, "/readyz", mw.ChainFunc(deps.Health.Readyz,
		mw.WithRecover(),
		mw.WithRequestID(),
	))
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/itemboard/internal/http/middlewares"
)

// registerProfileRoutes registra la ruta privada de perfil.
func registerProfileRoutes(r chi.Router, deps Deps) {
	r.Method(http.MethodGet, "/profile",
		baseHandler(http.HandlerFunc(deps.Profile.Handle), mw.WithNoStore()))
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/itemboard/internal/http/middlewares"
)

// registerAuthRoutes registra las rutas de login/logout.
// POST /login lleva rate limit por IP cuando hay limiter configurado.
func registerAuthRoutes(r chi.Router, deps Deps) {
	c := deps.Auth

	var loginMws []mw.Middleware
	if deps.LoginLimiter != nil {
		loginMws = append(loginMws, mw.WithRateLimit(deps.LoginLimiter, mw.IPRateKey))
	}
	loginMws = append(loginMws, mw.WithNoStore())

	r.Method(http.MethodPost, "/login",
		baseHandler(http.HandlerFunc(c.Login.Handle), loginMws...))
	r.Method(http.MethodPost, "/logout",
		baseHandler(http.HandlerFunc(c.Logout.Handle), mw.WithNoStore()))
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// registerWebhookRoutes registra el webhook de eventos del directorio.
// Autentica por header api-secret dentro del controller, no por cookie.
func registerWebhookRoutes(r chi.Router, deps Deps) {
	r.Method(http.MethodPost, "/api/on_item_insert",
		baseHandler(http.HandlerFunc(deps.Webhook.Handle)))
}

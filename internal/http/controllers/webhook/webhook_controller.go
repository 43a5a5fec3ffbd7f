// Package webhook contiene el controller de POST /api/on_item_insert.
package webhook

import (
	"crypto/subtle"
	"net/http"

	webhookDTO "github.com/dropDatabas3/itemboard/internal/http/dto/webhook"
	httpErrors "github.com/dropDatabas3/itemboard/internal/http/errors"
	"github.com/dropDatabas3/itemboard/internal/http/helpers"
	svc "github.com/dropDatabas3/itemboard/internal/http/services/webhook"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
)

// Controller recibe eventos de insert del directorio y los reenvía al
// relay. La autenticación es por secreto compartido en el header
// api-secret; un secreto inválido responde 401 sin body para no dar
// pistas sobre el endpoint.
type Controller struct {
	Relay  svc.Service
	Secret string
}

func NewController(relay svc.Service, secret string) *Controller {
	return &Controller{Relay: relay, Secret: secret}
}

func (c *Controller) Handle(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(
		logger.Layer("http"),
		logger.Component("webhook.controller"),
		logger.Op("on_item_insert"),
	)

	// Paso 1: verificar el secreto compartido antes de tocar el body.
	got := r.Header.Get("api-secret")
	if subtle.ConstantTimeCompare([]byte(got), []byte(c.Secret)) != 1 {
		log.Warn("webhook rejected: bad api secret")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// Paso 2: decodificar el sobre del evento.
	var ev webhookDTO.ChangeEvent
	if !helpers.ReadJSON(w, r, &ev) {
		return
	}
	row := ev.NewRow()
	if row == nil {
		// Payload sin event.data.new: error del emisor, no se reenvía nada.
		httpErrors.WriteError(w, httpErrors.ErrBadRequest.WithDetail("event.data.new missing"))
		return
	}

	// Paso 3: despachar el reenvío y responder ya.
	c.Relay.Forward(r.Context(), row)
	w.WriteHeader(http.StatusOK)
}

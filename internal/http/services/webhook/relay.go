// Package webhook contiene el service del relay de eventos de cambio.
package webhook

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dropDatabas3/itemboard/internal/metrics"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
)

// ItemLogger es la vista del directorio que necesita el relay.
type ItemLogger interface {
	InsertItemLog(ctx context.Context, itemJSON json.RawMessage) error
}

// Service reenvía filas insertadas a la mutación de log del directorio.
type Service interface {
	// Forward despacha el reenvío y retorna sin esperar el resultado.
	// El insert corre en una goroutine propia con timeout; un fallo se
	// loguea y nunca llega al caller del webhook. El drop del ack es
	// intencional (velocidad del webhook), no un bug a arreglar acá.
	Forward(ctx context.Context, itemJSON json.RawMessage)

	// Drain espera los reenvíos en vuelo. Para shutdown y tests.
	Drain()
}

// Deps contiene las dependencias del relay.
type Deps struct {
	Directory ItemLogger
	// Timeout del insert detached. Default 10s.
	Timeout time.Duration
}

type service struct {
	deps Deps
	wg   sync.WaitGroup
}

// NewService crea el relay.
func NewService(deps Deps) Service {
	if deps.Timeout <= 0 {
		deps.Timeout = 10 * time.Second
	}
	return &service{deps: deps}
}

func (s *service) Forward(ctx context.Context, itemJSON json.RawMessage) {
	// Logger del request capturado antes del detach; el contexto del
	// request muere cuando respondemos, así que la goroutine usa uno propio.
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("webhook.relay"),
		logger.Op("Forward"),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		dctx, cancel := context.WithTimeout(context.Background(), s.deps.Timeout)
		defer cancel()

		if err := s.deps.Directory.InsertItemLog(dctx, itemJSON); err != nil {
			log.Error("item log insert failed", logger.Err(err))
			metrics.WebhookForwards.WithLabelValues("failed").Inc()
			return
		}
		log.Debug("item log inserted")
		metrics.WebhookForwards.WithLabelValues("ok").Inc()
	}()
}

func (s *service) Drain() { s.wg.Wait() }

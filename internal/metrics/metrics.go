// Package metrics define las métricas Prometheus de itemboard.
// Paquete standalone para evitar ciclos de import entre services y HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itemboard_auth_attempts_total",
		Help: "Intentos de register/login por operación y resultado",
	}, []string{"op", "result"})

	SessionResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itemboard_session_resolutions_total",
		Help: "Resoluciones de sesión por resultado (authenticated, anonymous, stale)",
	}, []string{"result"})

	WebhookForwards = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "itemboard_webhook_forwards_total",
		Help: "Reenvíos del webhook relay por resultado",
	}, []string{"result"})

	DirectoryLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "itemboard_directory_latency_ms",
		Help:    "Latencia de llamadas al directory en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"op"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "itemboard_http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"path", "status"})
)

// Register registra las métricas en el registry dado (o el default si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		AuthAttempts, SessionResolutions, WebhookForwards, DirectoryLatency, HTTPDuration,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

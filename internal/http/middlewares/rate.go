package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/itemboard/internal/http/errors"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
	"github.com/dropDatabas3/itemboard/internal/rate"
)

// clientIP extrae la IP del cliente, considerando proxies.
func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// IPRateKey genera la key de rate limit por IP del cliente.
func IPRateKey(r *http.Request) string {
	return "ip:" + clientIP(r)
}

// WithRateLimit aplica el limiter con la key dada. Si el limiter falla
// (p.ej. redis caído) el request pasa: el rate limit es best-effort.
func WithRateLimit(limiter rate.Limiter, keyFunc func(*http.Request) string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), keyFunc(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter unavailable", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !res.Allowed {
				if res.RetryAfter > 0 {
					secs := int(math.Ceil(res.RetryAfter.Seconds()))
					if secs < 1 {
						secs = 1
					}
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				errors.WriteError(w, errors.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

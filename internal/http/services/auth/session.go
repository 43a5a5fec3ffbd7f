package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dropDatabas3/itemboard/internal/directory"
	"github.com/dropDatabas3/itemboard/internal/metrics"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
)

func (s *service) ResolveSession(ctx context.Context, r *http.Request) Resolution {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("ResolveSession"),
	)

	userID, ok := s.deps.Cookies.Read(r)
	if !ok {
		// Sin cookie o cookie inválida/adulterada: anónimo, sin drama.
		metrics.SessionResolutions.WithLabelValues("anonymous").Inc()
		return Resolution{}
	}

	log = log.With(logger.UserID(userID))

	// La cookie es válida pero el usuario debe re-validarse contra el
	// directorio en cada uso: puede haber sido borrado.
	u, err := s.lookupUser(ctx, userID)
	switch {
	case err == nil:
		metrics.SessionResolutions.WithLabelValues("authenticated").Inc()
		return Resolution{User: u}
	case errors.Is(err, directory.ErrNotFound):
		// Cookie colgada de un usuario borrado: el caller la destruye.
		log.Info("session references deleted user, forcing logout")
		s.cacheDelete(userID)
		metrics.SessionResolutions.WithLabelValues("stale").Inc()
		return Resolution{Stale: true}
	default:
		// Directory caído: no podemos validar, degradamos a anónimo sin
		// destruir la cookie (el usuario puede seguir existiendo).
		log.Warn("directory unavailable during session resolution", logger.Err(err))
		metrics.SessionResolutions.WithLabelValues("unavailable").Inc()
		return Resolution{}
	}
}

// lookupUser consulta el cache y cae al directorio.
func (s *service) lookupUser(ctx context.Context, userID string) (*directory.User, error) {
	const prefix = "user:"

	if s.deps.Cache != nil && s.deps.UserCacheTTL > 0 {
		if b, ok := s.deps.Cache.Get(prefix + userID); ok {
			var u directory.User
			if json.Unmarshal(b, &u) == nil && u.ID == userID {
				return &u, nil
			}
		}
	}

	u, err := s.deps.Directory.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.deps.Cache != nil && s.deps.UserCacheTTL > 0 {
		if b, err := json.Marshal(u); err == nil {
			s.deps.Cache.Set(prefix+userID, b, s.deps.UserCacheTTL)
		}
	}
	return u, nil
}

func (s *service) cacheDelete(userID string) {
	if s.deps.Cache != nil {
		s.deps.Cache.Delete("user:" + userID)
	}
}

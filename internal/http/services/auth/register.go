package auth

import (
	"context"

	"github.com/dropDatabas3/itemboard/internal/directory"
	"github.com/dropDatabas3/itemboard/internal/metrics"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
	"github.com/dropDatabas3/itemboard/internal/security/password"
)

func (s *service) Register(ctx context.Context, username, plain string) (*directory.User, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Register"),
		logger.Username(username),
	)

	// Paso 1: ¿existe ya? Cero filas acá es el camino feliz.
	existing, err := s.deps.Directory.GetUserByUsername(ctx, username)
	if err != nil {
		log.Warn("directory lookup failed", logger.Err(err))
		metrics.AuthAttempts.WithLabelValues("register", "unavailable").Inc()
		return nil, err
	}
	if existing != nil {
		log.Debug("username already taken")
		metrics.AuthAttempts.WithLabelValues("register", "taken").Inc()
		return nil, ErrUsernameTaken
	}

	// Paso 2: hash + alta. La unicidad real la garantiza el directorio:
	// un duplicado concurrente surge como error del insert.
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	u, err := s.deps.Directory.CreateUser(ctx, username, hash)
	if err != nil {
		log.Warn("create user failed", logger.Err(err))
		metrics.AuthAttempts.WithLabelValues("register", "failed").Inc()
		return nil, ErrRegistrationFailed
	}

	log.Info("user registered", logger.UserID(u.ID))
	metrics.AuthAttempts.WithLabelValues("register", "ok").Inc()
	return u, nil
}

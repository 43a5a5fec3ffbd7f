package auth

import (
	"context"

	"github.com/dropDatabas3/itemboard/internal/directory"
	"github.com/dropDatabas3/itemboard/internal/metrics"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
	"github.com/dropDatabas3/itemboard/internal/security/password"
)

func (s *service) Login(ctx context.Context, username, plain string) (*directory.User, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Login"),
		logger.Username(username),
	)

	u, err := s.deps.Directory.GetUserByUsername(ctx, username)
	if err != nil {
		log.Warn("directory lookup failed", logger.Err(err))
		metrics.AuthAttempts.WithLabelValues("login", "unavailable").Inc()
		return nil, err
	}
	if u == nil {
		// Mismo error que password incorrecta: sin señal distinguible.
		log.Debug("user not found")
		metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(plain, u.PasswordHash) {
		log.Debug("password check failed")
		metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
		return nil, ErrInvalidCredentials
	}

	log.Info("user logged in", logger.UserID(u.ID))
	metrics.AuthAttempts.WithLabelValues("login", "ok").Inc()
	return u, nil
}

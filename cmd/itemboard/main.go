package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/itemboard/internal/config"
	"github.com/dropDatabas3/itemboard/internal/http/server"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
	"github.com/dropDatabas3/itemboard/internal/util"
)

func main() {
	// .env es opcional; en producción todo viene del entorno real.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		// El logger todavía no existe; stderr y afuera.
		os.Stderr.WriteString("itemboard: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "itemboard",
	})
	defer logger.Sync()
	log := logger.L()

	log.Info("config loaded",
		logger.String("graphql_endpoint", cfg.GraphQL.Endpoint),
		logger.String("graphql_admin_secret", util.MaskSecret(cfg.GraphQL.AdminSecret)),
		logger.String("api_secret", util.MaskSecret(cfg.APISecret)),
		logger.String("cache_kind", cfg.Cache.Kind),
	)

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal("wiring failed", logger.Err(err))
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler,
		ReadTimeout:  cfg.ServerReadTimeout(),
		WriteTimeout: cfg.ServerWriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("env", cfg.App.Env),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Esperar los reenvíos de webhook en vuelo antes de salir.
		srv.Relay.Drain()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server failed", logger.Err(err))
	}
	log.Info("bye")
}

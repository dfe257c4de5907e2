package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/beep-chat/authz-projector/internal/authzed"
	"github.com/beep-chat/authz-projector/internal/channel"
	"github.com/beep-chat/authz-projector/internal/config"
	"github.com/beep-chat/authz-projector/internal/consumer"
	"github.com/beep-chat/authz-projector/internal/metrics"
	"github.com/beep-chat/authz-projector/internal/override"
	"github.com/beep-chat/authz-projector/internal/permissions"
	"github.com/beep-chat/authz-projector/internal/rabbit"
	"github.com/beep-chat/authz-projector/internal/role"
	"github.com/beep-chat/authz-projector/internal/server"
	"github.com/beep-chat/authz-projector/internal/service"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Projector stopped")
	}
}

func run() error {
	// A missing .env is fine; containers inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.IsDevelopment() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}

	log.Info().Str("env", cfg.Env).Msg("Starting authorization projector")

	queues, err := config.LoadQueues(cfg.QueueConfigPath)
	if err != nil {
		return fmt.Errorf("load queue config: %w", err)
	}

	store, err := authzed.Connect(cfg.AuthzedEndpoint, cfg.AuthzedToken)
	if err != nil {
		return fmt.Errorf("connect relation store: %w", err)
	}
	defer store.Close()
	log.Info().Str("endpoint", cfg.AuthzedEndpoint).Msg("Relation store connected")

	broker, err := rabbit.Dial(rabbit.Config{
		URI:               cfg.RabbitURI,
		ConsumerTagSuffix: cfg.RabbitConsumerTagSuffix,
	})
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	log.Info().Msg("Broker connected")

	catalog := permissions.New()
	svc := service.New(
		server.NewRepository(store, log.Logger),
		channel.NewRepository(store, log.Logger),
		role.NewRepository(store, catalog, log.Logger),
		override.NewRepository(store, catalog, log.Logger),
		log.Logger,
	)
	state := &consumer.State{Service: svc, Log: log.Logger}

	obs := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := obs.Server(cfg.MetricsAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("Metrics listener failed")
			}
		}()
		log.Info().Str("addr", cfg.MetricsAddr).Msg("Metrics listening")
	}

	// Closing the broker connection ends every consumer stream, which is how
	// shutdown reaches the pool: no drain, in-flight handlers finish.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		if err := broker.Close(); err != nil {
			log.Error().Err(err).Msg("Broker close failed")
		}
	}()

	consumers := consumer.Build(queues)
	pool := rabbit.NewPool(broker, state, consumers, obs, log.Logger)
	log.Info().Int("queues", consumers.Len()).Msg("Consumer pool starting")

	if err := pool.Start(context.Background()); err != nil {
		return fmt.Errorf("consumer pool: %w", err)
	}

	log.Info().Msg("All consumer streams ended")
	return nil
}

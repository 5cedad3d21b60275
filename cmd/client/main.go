package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkhalin/habitkeeper/internal/adapter"
	"github.com/dkhalin/habitkeeper/internal/config"
	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/service"
	"github.com/dkhalin/habitkeeper/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitkeeper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New("client")
	ctx := log.WithContext(context.Background())

	storages, err := store.NewClientStorages(ctx, cfg.Storage.DSN, log)
	if err != nil {
		return fmt.Errorf("init storages: %w", err)
	}

	session := service.NewSession()
	if token := os.Getenv("HABITKEEPER_TOKEN"); token != "" {
		session.SetToken(token)
	}

	driver := adapter.NewHTTPRemoteDriver(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	}, session, storages, log)

	services := service.NewClientServices(storages, driver, session, service.SyncOptions{
		BatchSize:          cfg.Sync.BatchSize,
		Enabled:            cfg.Sync.Enabled,
		Interval:           cfg.Sync.Interval,
		AutoStart:          cfg.Sync.AutoStart,
		BackgroundInterval: cfg.Sync.BackgroundInterval,
		Scheduler: service.SchedulerConfig{
			BackoffBase: cfg.Sync.BackoffBase,
			BackoffMax:  cfg.Sync.BackoffMax,
		},
	}, log)

	if pending, cErr := services.Sync.PendingMutations(ctx); cErr == nil {
		log.Info().Int("pending", pending).Msg("outbox depth at startup")
	}
	if userID := session.UserID(); userID != "" {
		if habits, lErr := services.Mutations.ListHabits(ctx, userID); lErr == nil {
			log.Info().Int("habits", len(habits)).Msg("local habits")
		}
	}

	if cfg.Sync.Enabled {
		if err = services.Sync.TriggerSync(ctx); err != nil {
			// A failed initial sync is not fatal; queued mutations survive
			// and the scheduler retries on its own cadence.
			if errors.Is(err, adapter.ErrSignedOut) {
				log.Info().Msg("initial sync skipped: signed out")
			} else {
				log.Warn().Err(err).Msg("initial sync failed")
			}
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	services.Sync.Stop()

	return nil
}

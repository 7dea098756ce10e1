package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/akintayo/reservation/internal/application/usecases"
	"github.com/akintayo/reservation/internal/config"
	"github.com/akintayo/reservation/internal/domain/booking"
	"github.com/akintayo/reservation/internal/infrastructure/memory"
	"github.com/akintayo/reservation/internal/infrastructure/postgres"
	"github.com/akintayo/reservation/internal/infrastructure/sqlite"
	"github.com/akintayo/reservation/internal/locking"
	"github.com/akintayo/reservation/internal/observability"
	"github.com/akintayo/reservation/internal/web"
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the reservation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			coordinator := usecases.NewCoordinator(store, locking.NewFairMutex(), booking.RealClock{}, log)
			coordinator.CreateLockWait = cfg.Lock.CreateWait
			coordinator.ModifyLockWait = cfg.Lock.ModifyWait

			srv := &web.Server{Bookings: coordinator, Log: log}
			if cfg.MetricsEnabled {
				reg := prometheus.NewRegistry()
				coordinator.Metrics = observability.NewMetrics(reg)
				srv.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
			}

			log.Info().Str("backend", cfg.Backend.Type).Msg("starting campsited")
			return web.Start(ctx, cfg.HTTPAddr, srv.Routes(), log)
		},
	}
}

func openStore(ctx context.Context, cfg *config.Config) (booking.Store, func(), error) {
	switch cfg.Backend.Type {
	case "postgres":
		pool, err := postgres.Open(ctx, cfg.Backend.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil
	case "sqlite":
		st, err := sqlite.Open(ctx, cfg.Backend.SQLiteFile)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}

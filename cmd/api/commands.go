package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	appbook "github.com/guastuci/Gerenciador-de-livraria/internal/application/book"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/config"
	"github.com/guastuci/Gerenciador-de-livraria/internal/infrastructure/persistence/sqldb"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/logger"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/metrics"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/mq"
	"github.com/guastuci/Gerenciador-de-livraria/pkg/tracing"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "api",
		Short:         "Book catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the SQL schema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the starter books when the catalog is empty",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSeed(cmd.Context(), configPath)
			},
		},
		newConsumeCmd(&configPath),
	)
	return root
}

func newConsumeCmd(configPath *string) *cobra.Command {
	var queue string
	cmd := &cobra.Command{
		Use:   "consume-events",
		Short: "Write catalog events from the broker to the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsume(cmd.Context(), *configPath, queue)
		},
	}
	cmd.Flags().StringVar(&queue, "queue", "catalog.audit", "queue bound to every book.* event")
	return cmd
}

// =========================================
// Bootstrap
// =========================================

type appEnv struct {
	cfg     *config.Config
	log     zerolog.Logger
	ctx     context.Context
	cleanup func()
}

// bootstrap loads config, builds the logger and installs signal handling.
// The returned context is cancelled on SIGINT or SIGTERM and carries the logger.
func bootstrap(parent context.Context, configPath string) (*appEnv, error) {
	if parent == nil {
		parent = context.Background()
	}

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// 2. Logger
	log, closeLog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// 3. Signals
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx = log.WithContext(ctx)

	return &appEnv{
		cfg: cfg,
		log: log,
		ctx: ctx,
		cleanup: func() {
			stop()
			_ = closeLog()
		},
	}, nil
}

// =========================================
// serve
// =========================================

func runServe(parent context.Context, configPath string) error {
	rt, err := bootstrap(parent, configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()
	cfg, log := rt.cfg, rt.log

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("database", cfg.Database.Driver).
		Bool("rate_limit", cfg.RateLimit.Enabled).
		Bool("events", cfg.Events.Enabled).
		Msg("starting catalog api")

	// 1. Observability
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown")
			}
		}()
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 2. Dependency graph
	app, cleanup, err := InitializeApp(rt.ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer cleanup()

	// 3. Seed an empty catalog
	if cfg.Seed.Enabled {
		if _, err := app.Seeder.Execute(rt.ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	// 4. Serve until a signal arrives
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-rt.ctx.Done():
	}

	// 5. Graceful shutdown
	log.Info().Dur("timeout", cfg.Server.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// =========================================
// migrate / seed
// =========================================

func runMigrate(parent context.Context, configPath string) error {
	rt, err := bootstrap(parent, configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	if rt.cfg.Database.Driver == config.DriverMemory {
		return errors.New("migrate needs database.driver mysql or postgres")
	}

	db, cleanup, err := provideDB(rt.ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := sqldb.AutoMigrate(db); err != nil {
		return err
	}
	rt.log.Info().Str("driver", rt.cfg.Database.Driver).Msg("schema up to date")
	return nil
}

func runSeed(parent context.Context, configPath string) error {
	rt, err := bootstrap(parent, configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	app, cleanup, err := InitializeApp(rt.ctx, rt.cfg, rt.log)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer cleanup()

	n, err := app.Seeder.Execute(rt.ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		rt.log.Info().Msg("catalog not empty, nothing seeded")
	}
	return nil
}

// =========================================
// consume-events
// =========================================

func runConsume(parent context.Context, configPath, queue string) error {
	rt, err := bootstrap(parent, configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	if !rt.cfg.Events.Enabled {
		return errors.New("consume-events needs events.enabled")
	}

	consumer, err := mq.NewConsumer(rt.cfg.Events.URL, rt.cfg.Events.Exchange, "topic", queue, appbook.AuditRoutingKeys, rt.log)
	if err != nil {
		return err
	}
	defer consumer.Close()

	return consumer.Consume(rt.ctx, appbook.LogCatalogEvent)
}

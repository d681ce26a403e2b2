package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/coaching-gateway/internal/app/usecase"
	"github.com/fardannozami/coaching-gateway/internal/config"
	"github.com/fardannozami/coaching-gateway/internal/domain"
	"github.com/fardannozami/coaching-gateway/internal/infra/httpapi"
	"github.com/fardannozami/coaching-gateway/internal/infra/sqlstore"
	"github.com/fardannozami/coaching-gateway/internal/infra/supabase"
	"github.com/fardannozami/coaching-gateway/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "coachd",
		Short:         "Coaching API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(envFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the SQL tables for the sqlite or postgres store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd, envFile)
		},
	})
	return root
}

func loadConfig(envFile string) (config.Config, error) {
	var cfg config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}
	return cfg, cfg.Validate()
}

func serve(envFile string) error {
	// 1. Load Config
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// 2. Logger
	logger := logging.Stdout("coachd", cfg.LogLevel, cfg.LogPretty)
	if !cfg.DotenvLoaded {
		logger.Info().Msg("No .env file found, using defaults/environment variables")
	}

	// 3. Store
	ctx := context.Background()
	store, sqlStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if sqlStore != nil {
		defer sqlStore.Close()
		if cfg.StoreInitSchema {
			if err := sqlStore.InitSchema(ctx); err != nil {
				logger.Error().Err(err).Msg("Failed to init schema")
			}
		}
	}
	logger.Info().Str("driver", cfg.StoreDriver).Msg("Store ready")

	// 4. Use Cases
	uc := httpapi.Usecases{
		AssignWorkout:   usecase.NewAssignWorkoutUsecase(store),
		CompleteWorkout: usecase.NewCompleteWorkoutUsecase(store, store, store),
		SendMessage:     usecase.NewSendMessageUsecase(store),
		GetMessages:     usecase.NewGetMessagesUsecase(store),
		ListWorkouts:    usecase.NewListWorkoutsUsecase(store),
		GetProgress:     usecase.NewGetProgressUsecase(store, store),
		GetLeaderboard:  usecase.NewGetLeaderboardUsecase(store),
	}

	// 5. HTTP Server
	gin.SetMode(cfg.GinMode)
	httpLog := logging.Stdout("HTTP", cfg.LogLevel, cfg.LogPretty)
	router := httpapi.NewRouter(httpapi.NewHandler(uc, httpLog), httpapi.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         httpLog,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	logger.Info().Str("addr", srv.Addr).Msg("API is running... Press Ctrl+C to exit.")

	// 6. Wait for OS Signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	select {
	case <-c:
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info().Msg("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(cmd *cobra.Command, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if cfg.StoreDriver == config.DriverSupabase {
		return fmt.Errorf("migrate only applies to the sqlite and postgres stores; create Supabase tables in the project dashboard")
	}

	ctx := cmd.Context()
	_, sqlStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sqlStore.Close()

	if err := sqlStore.InitSchema(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", cfg.StoreDriver)
	return nil
}

// openStore returns the configured store. The SQL handle is non-nil only for
// the sqlite and postgres drivers.
func openStore(ctx context.Context, cfg config.Config) (domain.Store, *sqlstore.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSupabase:
		client, err := supabase.NewClient(supabase.Config{
			URL:     cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Timeout: cfg.StoreTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return supabase.NewRepository(client), nil, nil

	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		// Enable WAL mode and busy timeout to avoid "database is locked" errors
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
		s, err := sqlstore.Open(ctx, "sqlite", dsn)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case config.DriverPostgres:
		s, err := sqlstore.Open(ctx, "postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

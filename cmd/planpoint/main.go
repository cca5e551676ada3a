package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"github.com/simibol/planpoint/internal/api"
	"github.com/simibol/planpoint/internal/cli"
	"github.com/simibol/planpoint/internal/config"
	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/repository"
	"github.com/simibol/planpoint/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	logger := newLogger(cfg.LogFormat, level)
	slog.SetDefault(logger)

	// Open database (migrations run on open)
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	stores := service.NewSQLiteStores(database, loc)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)
	settings := service.Settings{
		Location:    loc,
		Weights:     cfg.Weights,
		Preferences: cfg.Preferences,
	}

	states, closeStates, err := notificationStates(cfg, database)
	if err != nil {
		return err
	}
	defer closeStates()

	svc := api.Services{
		Plan:          service.NewPlannerService(stores, uow, settings, observer),
		Reschedule:    service.NewRescheduleService(stores, uow, settings, observer),
		Sessions:      service.NewSessionService(stores.Sessions, uow, settings, observer),
		Milestones:    service.NewMilestoneService(stores.Milestones, uow, settings, observer),
		Notifications: service.NewNotificationService(stores.Sessions, states, settings, observer),
		Progress:      service.NewProgressService(stores.Sessions, settings),
		Ping:          database.PingContext,
	}

	app := &cli.App{
		Plan:          svc.Plan,
		Reschedule:    svc.Reschedule,
		Sessions:      svc.Sessions,
		Milestones:    svc.Milestones,
		Notifications: svc.Notifications,
		Progress:      svc.Progress,
		Import:        service.NewImportService(uow, settings, observer),
		IsInteractive: func() bool { return interactive },
		Location:      loc,
		Serve: func(ctx context.Context) error {
			router := api.NewRouter(svc, api.Options{Location: loc, Logger: logger})
			return serveHTTP(ctx, cfg.HTTPAddr, router, logger)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// newLogger writes text logs to stderr so command output on stdout stays clean.
func newLogger(format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// notificationStates picks the dismiss/snooze store. The returned func
// releases whatever the store holds open.
func notificationStates(cfg config.Config, database *sql.DB) (repository.NotificationStateRepo, func(), error) {
	if cfg.NotificationStore != config.NotifyStoreRedis {
		return repository.NewSQLiteNotificationStateRepo(database), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
	}
	return repository.NewRedisNotificationStateRepo(client), func() { client.Close() }, nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

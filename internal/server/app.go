// Package server initializes and runs the auth server: it wires the
// database, repositories, mail dispatcher, session service, and HTTP
// endpoint together and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/postwall/internal/logging"
	"github.com/dmitrijs2005/postwall/internal/server/config"
	"github.com/dmitrijs2005/postwall/internal/server/httpapi"
	"github.com/dmitrijs2005/postwall/internal/server/mail"
	"github.com/dmitrijs2005/postwall/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postwall/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	manager    repomanager.RepositoryManager
	dispatcher *mail.Dispatcher
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()

	notifier, err := mail.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if err != nil {
		return nil, fmt.Errorf("mail init error: %w", err)
	}
	dispatcher := mail.NewDispatcher(notifier, logger, mail.DefaultQueueSize)

	userService := services.NewUserService(db, manager, dispatcher, logger, cfg)
	httpServer := httpapi.NewServer(httpapi.NewHandler(userService, logger, cfg), logger, cfg)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		manager:    manager,
		dispatcher: dispatcher,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.dispatcher.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	return nil
}

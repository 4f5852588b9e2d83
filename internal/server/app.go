// Package server initializes and runs the auth server: it wires the
// relational store, the secret store client, the token signer and the user
// service together, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tokenforge/authapi/internal/cryptox"
	"github.com/tokenforge/authapi/internal/logging"
	"github.com/tokenforge/authapi/internal/secrets"
	"github.com/tokenforge/authapi/internal/server/config"
	"github.com/tokenforge/authapi/internal/server/httpapi"
	"github.com/tokenforge/authapi/internal/server/store"
	"github.com/tokenforge/authapi/internal/server/tokens"
	"github.com/tokenforge/authapi/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       store.Store
	userService *users.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	st, err := store.NewPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	sm, err := secrets.NewManagerClient(ctx, secrets.ClientConfig{
		Region:          cfg.SecretsRegion,
		Endpoint:        cfg.SecretsEndpoint,
		AccessKeyID:     cfg.SecretsAccessKeyID,
		SecretAccessKey: cfg.SecretsSecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("secret store init error: %w", err)
	}

	signer := tokens.NewSigner(sm, cfg)
	us := users.NewService(st.Users(), cryptox.NewArgon2Hasher(), signer)

	return &App{config: cfg, logger: logger, store: st, userService: us}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

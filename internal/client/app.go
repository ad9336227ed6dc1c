package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/cli"
	"github.com/MKhiriev/go-clinic-client/internal/config"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/service"
	"github.com/MKhiriev/go-clinic-client/internal/session"
	"github.com/MKhiriev/go-clinic-client/internal/store"
	"github.com/MKhiriev/go-clinic-client/internal/workers"
	"github.com/MKhiriev/go-clinic-client/models"
)

// LoggerRole is the role field written to every client log entry.
const LoggerRole = "clinic-client"

// App is the running client: storage, transport, session and services for
// one command invocation.
type App struct {
	storages *store.ClientStorages
	manager  *session.Manager
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger

	cancel context.CancelFunc
}

// NewApp wires the client from cfg: storage, then the HTTP adapter, then the
// session manager on top of both, then the services and background workers.
// Nothing talks to the network until Start.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, cfg.App.SealKey, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	serverAdapter := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	manager := session.NewManager(serverAdapter, storages.Session, log)

	return &App{
		storages: storages,
		manager:  manager,
		services: service.NewClientServices(manager, serverAdapter, log),
		workers: workers.NewWorkers(
			workers.NewProfileRefreshJob(manager, cfg.Workers.ProfileRefreshInterval, log),
		),
		logger: log,
	}, nil
}

// Start restores the persisted session and launches the background workers.
// It returns the state the session was restored to.
func (a *App) Start(ctx context.Context) models.AuthState {
	state := a.manager.Restore(ctx)
	a.logger.Info().Str("func", "App.Start").Str("state", state.String()).Msg("session restored")

	workersCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.workers.Run(workersCtx)

	return state
}

// Auth implements cli.Runtime.
func (a *App) Auth() service.AuthService {
	return a.services.AuthService
}

// Records implements cli.Runtime.
func (a *App) Records() service.RecordsService {
	return a.services.RecordsService
}

// Session exposes the session manager for consumers that observe it.
func (a *App) Session() *session.Manager {
	return a.manager
}

// Close stops the workers, detaches the session manager from the adapter and
// closes the storage.
func (a *App) Close() error {
	a.workers.Stop()
	if a.cancel != nil {
		a.cancel()
	}
	a.manager.Close()

	var errs []error
	if err := a.storages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storages: %w", err))
	}
	return errors.Join(errs...)
}

// NewRuntimeFactory returns the factory the command line uses to build an App
// from its parsed flags.
func NewRuntimeFactory() cli.RuntimeFactory {
	return func(ctx context.Context, fs *pflag.FlagSet) (cli.Runtime, error) {
		cfg, err := config.GetClientConfig(fs)
		if err != nil {
			return nil, fmt.Errorf("error getting configs: %w", err)
		}

		app, err := NewApp(ctx, cfg, logger.NewClientLogger(LoggerRole, cfg.Log.File))
		if err != nil {
			return nil, err
		}
		app.Start(ctx)

		return app, nil
	}
}

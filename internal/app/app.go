package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/horizon/internal/config"
	"github.com/specialistvlad/horizon/internal/ctxlog"
	"github.com/specialistvlad/horizon/internal/hcl"
	"github.com/specialistvlad/horizon/internal/modeldata"
	"github.com/specialistvlad/horizon/internal/settings"
	"github.com/specialistvlad/horizon/internal/yamlcfg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  *config.Dispatcher
	builder *modeldata.Builder
}

// NewLoader returns a dispatcher for every supported configuration format.
func NewLoader() *config.Dispatcher {
	return config.NewDispatcher().
		Register(yamlcfg.NewLoader(), yamlcfg.Extensions...).
		Register(hcl.NewLoader(), hcl.Extensions...)
}

// NewApp is the constructor for the main application. Reports are written
// to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader *config.Dispatcher) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	var catalog settings.SolverCatalog = settings.PathCatalog{}
	if len(cfg.Solvers) > 0 {
		catalog = settings.StaticCatalog(cfg.Solvers)
	}
	logger.Debug("Solver catalog ready.", "installed", catalog.Installed())

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  loader,
		builder: modeldata.NewBuilder(settings.NewValidator(catalog, cfg.LogPath)),
	}
}

// withLogger attaches the app logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

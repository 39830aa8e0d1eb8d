package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/navigator"
	"github.com/specialistvlad/surveynav/internal/router"
	"github.com/specialistvlad/surveynav/internal/rules"
	"github.com/specialistvlad/surveynav/internal/schema"
	"github.com/specialistvlad/surveynav/internal/snapshot"
)

// SchemaLoader turns schema files into a validated survey.
type SchemaLoader interface {
	Load(ctx context.Context, paths ...string) (*schema.Survey, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	logger *slog.Logger
	config *Config
	loader SchemaLoader

	survey *schema.Survey
	snap   snapshot.Snapshot
}

// NewApp builds an App with its own logger writing to logW, then loads the
// survey schema and the respondent snapshot named by cfg.
func NewApp(ctx context.Context, logW io.Writer, cfg *Config, loader SchemaLoader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		ctx:    ctx,
		logger: logger,
		config: cfg,
		loader: loader,
		snap:   snapshot.Empty(),
	}
	if err := a.LoadSurvey(); err != nil {
		return nil, err
	}
	if err := a.LoadSnapshot(); err != nil {
		return nil, err
	}
	return a, nil
}

// Context returns the context carrying the app's logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Survey returns the loaded survey schema.
func (a *App) Survey() *schema.Survey {
	return a.survey
}

// Snapshot returns the loaded respondent snapshot.
func (a *App) Snapshot() snapshot.Snapshot {
	return a.snap
}

// Navigator builds a navigator over the loaded survey and snapshot.
func (a *App) Navigator() *navigator.Navigator {
	return navigator.New(a.survey, a.snap,
		rules.WithMaxRepeatInstances(a.config.MaxRepeatInstances),
		rules.WithLogger(a.logger),
	)
}

// Router builds a router over a fresh navigator.
func (a *App) Router() *router.Router {
	return router.New(a.Navigator())
}

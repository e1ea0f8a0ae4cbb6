package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/nodegraph/internal/builder"
	"github.com/specialistvlad/nodegraph/internal/capability"
	"github.com/specialistvlad/nodegraph/internal/config"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoValue is returned by Run when at least one evaluated node failed and
// produced no value. Results are still printed before it is returned.
var ErrNoValue = errors.New("evaluation produced no value")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *capability.Registry
}

// Option customises an App.
type Option func(*App)

// WithLogWriter sends log output to w instead of the result writer.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) {
		a.logger = newLogger(a.config.LogLevel, a.config.LogFormat, w)
	}
}

// WithRegistry replaces the builtin capabilities with reg.
func WithRegistry(reg *capability.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}

// New is the constructor for the main application. Results are written to
// outW; logs go there too unless WithLogWriter says otherwise. Each App owns
// an isolated logger and capability registry.
func New(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		config: cfg,
		loader: loader,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.registry == nil {
		a.registry = capability.NewRegistry()
		capability.RegisterBuiltins(a.registry)
	}
	a.logger.Debug("App configured.", "capabilities", a.registry.Len())
	return a
}

// Registry returns the application's capability registry. This is primarily for testing.
func (a *App) Registry() *capability.Registry {
	return a.registry
}

// Run loads the graph file, builds it, evaluates the configured nodes and
// prints one result per node.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "graph", a.config.GraphPath)

	model, err := a.loader.Load(ctx, a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	a.logger.Debug("Graph file loaded.", "definitions", len(model.Nodes))

	g, err := builder.Build(ctx, model, a.registry)
	if err != nil {
		return err
	}
	for _, w := range g.Warnings() {
		a.logger.Warn("Graph warning.", "summary", w.Summary, "detail", w.Detail, "subject", w.Subject)
	}

	if g.Len() == 0 {
		a.logger.Warn("No nodes found in graph, evaluation not required.")
		return nil
	}

	results, err := g.Evaluate(ctx, a.config.Nodes...)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if err := writeResults(a.outW, a.config.Output, results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Value == cty.NilVal {
			failed++
		}
	}
	a.logger.Debug("App.Run method finished.", "evaluated", len(results), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d nodes: %w", failed, len(results), ErrNoValue)
	}
	return nil
}

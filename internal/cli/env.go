// Package cli connects configuration, file loading, validation, merging,
// metrics and output for the dictshape command.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/dictshape/internal/config"
	"github.com/aretw0/dictshape/internal/logging"
	"github.com/aretw0/dictshape/internal/presentation/tui"
	"github.com/aretw0/dictshape/pkg/observability"
)

// Env carries everything a command run needs.
type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics // nil when no metrics file is configured
	Out     io.Writer
	Styler  *tui.Styler

	// Render turns markdown into terminal output. Nil writes markdown as is.
	Render func(string) (string, error)
}

// NewEnv builds an Env from a loaded configuration. Reports go to out and
// logs to errOut.
func NewEnv(cfg *config.Config, out, errOut io.Writer) (*Env, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config: cfg,
		Logger: logging.New(errOut, level, cfg.Log.Format),
		Out:    out,
		Styler: tui.NewStyler(out),
	}

	if cfg.Metrics.File != "" {
		env.Metrics = observability.NewMetrics()
	}

	if cfg.Output == config.OutputMarkdown && tui.IsTerminal(out) {
		render, err := tui.NewRenderer("")
		if err != nil {
			return nil, err
		}
		env.Render = render
	}

	return env, nil
}

// Close flushes the metrics textfile, if one is configured.
func (e *Env) Close() error {
	if e.Metrics == nil {
		return nil
	}
	if err := e.Metrics.WriteTextfile(e.Config.Metrics.File); err != nil {
		return fmt.Errorf("failed to export metrics: %w", err)
	}
	e.Logger.Debug("Metrics Written", "path", e.Config.Metrics.File)
	return nil
}

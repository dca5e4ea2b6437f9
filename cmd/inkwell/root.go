package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine"
	"github.com/dshills/inkwell/internal/engine/state"
)

// globals holds state shared by all subcommands.
type globals struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "inkwell",
		Short: "Rich text editing core tools",
		Long: `inkwell converts and validates encoded documents and replays
recorded host event scripts against the editing core.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "path to a TOML or YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newReplayCmd(g),
		newConvertCmd(g),
		newValidateCmd(g),
	)
	return root
}

func (g *globals) init(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	g.cfg = cfg

	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Logging.Level)
	lc.Format = cfg.Logging.Format
	lc.Output = cmd.ErrOrStderr()
	g.logger = app.NewLogger(lc)
	return nil
}

// stateOptions translates the history settings.
func (g *globals) stateOptions() []state.Option {
	return []state.Option{
		state.WithUndo(g.cfg.History.Enabled),
		state.WithMaxUndo(g.cfg.History.MaxUndo),
	}
}

// editorOptions translates the editor settings. metrics is nil when
// metrics are disabled.
func (g *globals) editorOptions(metrics *app.Metrics) []app.Option {
	engineOpts := []engine.Option{engine.WithMaxDepth(g.cfg.Editor.MaxDepth)}
	if g.cfg.Editor.ReadOnly {
		engineOpts = append(engineOpts, engine.WithReadOnly())
	}
	if g.cfg.Editor.Validate {
		engineOpts = append(engineOpts, engine.WithValidation())
	}

	opts := []app.Option{
		app.WithLogger(g.logger),
		app.WithCompositionTimeout(g.cfg.Composition.Timeout.Std()),
		app.WithEngineOptions(engineOpts...),
	}
	if metrics != nil {
		opts = append(opts, app.WithMetrics(metrics))
	}
	return opts
}

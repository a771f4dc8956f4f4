package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/tplkit/template"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg    Config
	logger *slog.Logger
	engine *template.Engine
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tpl",
		Short: "Render templates with {{ variable | filter }} substitution",
		Long: `tpl parses and renders templates made of literal text and
{{ variable | filter | ... }} expressions, against a flat JSON, YAML or TOML context.

Configuration is read from --config, or from tpl.yaml, tpl.yml or tpl.toml in
the working directory when present.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (yaml or toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides the config file")

	root.AddCommand(
		newRenderCmd(a),
		newVarsCmd(a),
		newSchemaCmd(a),
		newFiltersCmd(a),
		newWatchCmd(a),
	)
	return root
}

// setup loads the config and builds the logger and engine before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	engine, err := template.NewEngineFromConfig(cfg.Template, template.WithLogger(logger))
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.engine = engine
	logger.Debug("configured", slog.String("config", a.configPath), slog.String("left_delim", cfg.Template.LeftDelim))
	return nil
}

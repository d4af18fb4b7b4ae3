// Package cli implements the crudjen command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kindred-app/crudjen/internal/config"
)

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"out":         config.KeyOutDir,
	"api-prefix":  config.KeyAPIPrefix,
	"import-base": config.KeyImportBase,
	"log-level":   config.KeyLogLevel,
}

// env carries the resolved configuration from the root command to its
// subcommands.
type env struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
}

// RootCmd returns the crudjen command with every subcommand attached.
func RootCmd() *cobra.Command {
	e := &env{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "crudjen",
		Short: "Scaffold CRUD handler packages for a Fiber and MongoDB backend",
		Long: `crudjen generates the type definitions, persistence service, HTTP handlers
and route table of a resource from its name.

Settings are read from flags, CRUDJEN_* environment variables and
.crudjen.yaml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.configFile, "config", "", "config file (default ./.crudjen.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(crudCmd(e))
	rootCmd.AddCommand(locationCrudCmd(e))
	rootCmd.AddCommand(generateCmd(e))
	rootCmd.AddCommand(batchCmd(e))

	return rootCmd
}

func (e *env) load(cmd *cobra.Command) error {
	if err := config.BindFlags(e.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(e.v, e.configFile)
	if err != nil {
		return err
	}
	e.cfg = cfg

	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("invalid %s: %w", config.KeyLogLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	slog.LogAttrs(cmd.Context(), slog.LevelDebug, "configuration loaded",
		slog.String("out_dir", cfg.OutDir),
		slog.String("api_prefix", cfg.APIPrefix),
		slog.String("import_base", cfg.ImportBase),
	)
	return nil
}

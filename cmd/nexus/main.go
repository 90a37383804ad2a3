// Package main provides the CLI entry point for nexus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phronesis/nexus-go/internal/catalog"
	"github.com/phronesis/nexus-go/internal/config"
	"github.com/phronesis/nexus-go/pkg/nexus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once the root has resolved
// configuration.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "nexus",
		Short: "Internal tool portal with a spreadsheet feedback store",
		Long: `nexus serves the internal tool catalog as a web portal and records
feedback for each tool in its own sheet of an xlsx workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: $"+config.EnvConfigPath+", then built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newSubmitCmd(a),
		newListCmd(a),
		newSheetsCmd(a),
		newExportCmd(a),
		newCatalogCmd(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.logger = setupLogger(cfg.Logging, a.verbose, cmd.ErrOrStderr())
	return nil
}

func (a *app) store() *nexus.Store {
	opts := nexus.DefaultOptions()
	opts.Logger = a.logger
	opts.LockTimeout = a.cfg.Workbook.LockTimeout
	return nexus.NewStore(opts)
}

func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg.Catalog.Path != "" {
		return catalog.Load(a.cfg.Catalog.Path)
	}
	return catalog.Default()
}

// workbookPath prefers the --workbook flag over the configured path.
func (a *app) workbookPath(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Workbook.Path
}

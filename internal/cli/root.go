// Package cli implements the nameserve command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/anupamr/nameserve/internal/logger"
	"github.com/anupamr/nameserve/pkg/config"
	"github.com/anupamr/nameserve/pkg/directory"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:          "nameserve",
	Short:        "Resolve free-text names against a workspace directory",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `nameserve keeps a cached, multi-key index of a workspace member
directory and resolves partial, misspelled or abbreviated names to
canonical member ids. It can run as an HTTP service or answer one-shot
queries from the command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetDebug(flagDebug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable debug logging")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or defaults.
func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

// cmdTimeout bounds a command's work with the configured refresh timeout.
func cmdTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), d)
}

// buildSource assembles the directory source chain from config: local
// snapshot first, remote API as fallback when a token is available.
func buildSource(cfg *config.Config) (directory.Source, error) {
	var chain directory.Fallback
	if cfg.Source.SnapshotPath != "" {
		chain = append(chain, directory.FileSource{Path: cfg.Source.SnapshotPath})
	}
	if cfg.Source.BaseURL != "" && cfg.Token() != "" {
		chain = append(chain, directory.NewRemoteSource(cfg.Source.BaseURL, cfg.Token(), cfg.Source.PageSize))
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no directory source configured: set snapshot_path or base_url plus %s", cfg.Source.TokenEnv)
	}
	return chain, nil
}

package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/anupamr/nameserve/internal/logger"
	"github.com/anupamr/nameserve/pkg/resolve"
	"github.com/anupamr/nameserve/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the workspace resolution HTTP service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Default("serve")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	resolver := resolve.New(source)
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Source.RefreshTimeoutSecs)*time.Second)
	defer cancel()
	if err := resolver.Refresh(ctx); err != nil {
		// Start anyway; the first successful POST /workspace/refresh
		// will populate the snapshot.
		log.Warnf("initial directory load failed: %v", err)
	}

	srv := server.New(resolver, cfg)
	log.Infof("listening on %s (%d members)", cfg.Server.Addr, resolver.Len())
	return http.ListenAndServe(cfg.Server.Addr, srv.Routes())
}

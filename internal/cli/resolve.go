package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anupamr/nameserve/pkg/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a name to a workspace member id",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolver, err := loadResolver(cmd)
	if err != nil {
		return err
	}

	result, err := resolver.Match(args[0])
	switch {
	case errors.Is(err, resolve.ErrNoMatch):
		return fmt.Errorf("no member matches %q", args[0])
	case err != nil:
		return err
	}

	fmt.Printf("%s\t%s\t%s\t(score %.2f)\n", result.Member.ID, result.Member.Name, result.Member.Email, result.Score)
	return nil
}

// loadResolver builds a resolver from config and performs the initial load.
func loadResolver(cmd *cobra.Command) (*resolve.Resolver, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	source, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}
	resolver := resolve.New(source)
	ctx, cancel := cmdTimeout(cmd, time.Duration(cfg.Source.RefreshTimeoutSecs)*time.Second)
	defer cancel()
	if err := resolver.Refresh(ctx); err != nil {
		return nil, err
	}
	return resolver, nil
}

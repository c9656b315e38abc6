package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/anupamr/nameserve/pkg/directory"
)

var (
	flagFetchOut    string
	flagFetchSample int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the member directory from the remote API and save a snapshot",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&flagFetchOut, "out", "o", "", "Snapshot output path (.json or .bin; default from config)")
	fetchCmd.Flags().IntVar(&flagFetchSample, "sample", 5, "Number of sample members to print after fetching")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	token := cfg.Token()
	if token == "" {
		return fmt.Errorf("%s is not set; fetch needs API access", cfg.Source.TokenEnv)
	}

	out := flagFetchOut
	if out == "" {
		out = cfg.Source.SnapshotPath
	}

	source := directory.NewRemoteSource(cfg.Source.BaseURL, token, cfg.Source.PageSize)
	ctx, cancel := cmdTimeout(cmd, time.Duration(cfg.Source.RefreshTimeoutSecs)*time.Second)
	defer cancel()

	members, err := source.Load(ctx)
	if err != nil {
		return err
	}
	if err := directory.Verify(members); err != nil {
		return fmt.Errorf("extraction verification failed: %w", err)
	}
	if err := directory.WriteSnapshot(out, members); err != nil {
		return err
	}
	log.Infof("saved %d members to %s", len(members), out)

	return printSample(members, flagFetchSample)
}

func printSample(members []directory.Member, count int) error {
	if count <= 0 || len(members) == 0 {
		return nil
	}
	if count > len(members) {
		count = len(members)
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL")
	for _, m := range members[:count] {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Name, m.Email)
	}
	return w.Flush()
}

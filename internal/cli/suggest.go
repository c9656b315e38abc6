package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anupamr/nameserve/pkg/resolve"
)

var flagSuggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial>",
	Short: "Rank workspace members against a partial name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&flagSuggestLimit, "limit", "l", resolve.DefaultSuggestLimit, "Maximum number of suggestions")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	resolver, err := loadResolver(cmd)
	if err != nil {
		return err
	}

	suggestions := resolver.Suggest(args[0], flagSuggestLimit)
	if len(suggestions) == 0 {
		fmt.Printf("no suggestions for %q\n", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tNAME\tEMAIL")
	for _, s := range suggestions {
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\n", s.Score, s.Member.ID, s.Member.Name, s.Member.Email)
	}
	return w.Flush()
}

package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics with solved counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		for _, group := range e.catalog.BySubject() {
			fmt.Fprintln(out, strings.ToUpper(string(group.Subject)))
			for _, t := range group.Topics {
				solved := 0
				for _, p := range t.Problems {
					if e.tracker.IsProblemSolved(p.ID) {
						solved++
					}
				}
				fmt.Fprintf(out, "  %-24s  %-32s  %d/%d solved\n", t.ID, t.Title, solved, len(t.Problems))
			}
		}
		return nil
	},
}

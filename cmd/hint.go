package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var hintCmd = &cobra.Command{
	Use:   "hint <problem-id>",
	Short: "Ask the AI tutor for a hint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		p, _, err := e.catalog.Problem(args[0])
		if err != nil {
			return err
		}
		hint, err := e.source.Hint(cmd.Context(), p)
		if err != nil {
			return describeSourceError(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, p.Title)
		fmt.Fprintln(out, "Hint:", hint)
		return nil
	},
}

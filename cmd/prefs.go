package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/preferences"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change your practice preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		printPrefs(cmd.OutOrStdout(), e.prefs.Load(cmd.Context()))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update saved preferences",
	Long:  "Set updates only the fields whose flags are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.prefs.Load(cmd.Context()).Merge(preferences.Preferences{
			Subject:        f.Subject,
			EducationLevel: f.EducationLevel,
			QuestionType:   f.QuestionType,
			Difficulty:     f.Difficulty,
		})
		if err := e.prefs.Save(cmd.Context(), p); err != nil {
			return err
		}
		printPrefs(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	addFilterFlags(prefsSetCmd)

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func printPrefs(out io.Writer, p preferences.Preferences) {
	show := func(v string) string {
		if v == "" {
			return "(not set)"
		}
		return v
	}
	fmt.Fprintf(out, "Subject:         %s\n", show(string(p.Subject)))
	fmt.Fprintf(out, "Education level: %s\n", show(string(p.EducationLevel)))
	fmt.Fprintf(out, "Question type:   %s\n", show(string(p.QuestionType)))
	fmt.Fprintf(out, "Difficulty:      %s\n", show(string(p.Difficulty)))
}

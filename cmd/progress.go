package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/screens/dashboard"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or adjust your progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show level, XP, streak and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		if res := e.tracker.LoadResult(); res.Defaulted() {
			slog.Debug("progress started from defaults", "status", res.Status)
		}
		printProgress(cmd.OutOrStdout(), e.tracker.State(), e.tracker.RecentXP(dashboard.HistoryDays))
		return nil
	},
}

var progressResetTodayCmd = &cobra.Command{
	Use:   "reset-today",
	Short: "Clear today's completed topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		e.tracker.ResetToday(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Today's completed list cleared.")
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetTodayCmd)
}

func printProgress(out io.Writer, st progress.State, history []progress.DayXP) {
	fmt.Fprintf(out, "Level:      %d (%d/%d XP)\n", st.Level(), st.XPIntoLevel(), progress.XPPerLevel)
	fmt.Fprintf(out, "Total XP:   %d\n", st.XP)
	fmt.Fprintf(out, "Streak:     %d day(s)\n", st.Streak)
	if st.LastSolvedDate != "" {
		fmt.Fprintf(out, "Last solve: %s\n", st.LastSolvedDate)
	}
	fmt.Fprintf(out, "Solved:     %d\n", st.SolvedCount())
	fmt.Fprintf(out, "Attempted:  %d\n", st.AttemptedCount())
	if len(st.CompletedToday) > 0 {
		fmt.Fprintf(out, "Today:      %s\n", strings.Join(st.CompletedToday, ", "))
	}

	peak := 0
	for _, d := range history {
		peak = max(peak, d.XP)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "XP history")
	fmt.Fprintln(out, strings.Repeat("─", 40))
	for _, d := range history {
		bar := 0
		if peak > 0 {
			bar = d.XP * 20 / peak
		}
		fmt.Fprintf(out, "%s  %-20s  %d\n", d.Date, strings.Repeat("█", bar), d.XP)
	}
}

package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/answer"
	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/session"
)

var checkCmd = &cobra.Command{
	Use:   "check <problem-id> <answer...>",
	Short: "Check an answer and earn XP",
	Long: "Check compares your answer with the expected one, ignoring case and " +
		"extra spaces. The first correct answer to a problem earns XP; later " +
		"correct answers still keep your daily streak going.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		p, topicID, err := e.catalog.Problem(args[0])
		if err != nil {
			return err
		}
		given := strings.Join(args[1:], " ")
		out := cmd.OutOrStdout()

		if strings.TrimSpace(given) == "" {
			return fmt.Errorf("answer for %s is blank", p.ID)
		}
		e.tracker.MarkAttempted(ctx, p.ID)
		if !answer.IsCorrect(given, p.Answer) {
			fmt.Fprintln(out, "Not quite, try again.")
			return nil
		}
		if e.tracker.IsProblemSolved(p.ID) {
			e.tracker.CompleteTopic(ctx, topicID)
			fmt.Fprintf(out, "Correct! (already solved, %d day streak)\n", e.tracker.State().Streak)
			return nil
		}

		err = e.tracker.AwardXP(ctx, session.CorrectAnswerXP, progress.AwardOptions{
			CompletingTopicID: topicID,
			MarkCompleted:     true,
			ProblemID:         p.ID,
		})
		if err != nil {
			return err
		}
		st := e.tracker.State()
		fmt.Fprintf(out, "Correct! +%d XP (level %d, %d day streak)\n",
			session.CorrectAnswerXP, st.Level(), st.Streak)
		return nil
	},
}

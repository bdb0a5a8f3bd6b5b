package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/llm"
	"github.com/abhisek/studyy/internal/preferences"
	"github.com/abhisek/studyy/internal/questions"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate practice problems with AI",
	Long: "Generate asks the configured LLM provider for new problems. Unset " +
		"flags fall back to the preferences saved with `studyy prefs set`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		showAnswers, _ := cmd.Flags().GetBool("answers")

		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		prefs := e.prefs.Load(cmd.Context()).Merge(preferences.Preferences{
			Subject:        f.Subject,
			EducationLevel: f.EducationLevel,
			QuestionType:   f.QuestionType,
			Difficulty:     f.Difficulty,
		})
		if !prefs.Complete() {
			return errors.New("subject, level, type and difficulty are required: pass flags or run `studyy prefs set`")
		}

		problems, err := e.source.Generate(cmd.Context(), questions.GenerateRequest{
			Subject:        prefs.Subject,
			EducationLevel: prefs.EducationLevel,
			QuestionType:   prefs.QuestionType,
			Difficulty:     prefs.Difficulty,
			Count:          count,
		})
		if err != nil {
			return describeSourceError(err)
		}

		out := cmd.OutOrStdout()
		for i, p := range problems {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printProblem(out, i+1, p, showAnswers)
		}
		return nil
	},
}

func init() {
	addFilterFlags(generateCmd)
	generateCmd.Flags().IntP("count", "n", 5, fmt.Sprintf("Number of problems (%d-%d)", questions.MinCount, questions.MaxCount))
	generateCmd.Flags().Bool("answers", false, "Print answers and steps")
}

// describeSourceError turns question source errors into CLI messages.
func describeSourceError(err error) error {
	if errors.Is(err, questions.ErrInvalidCount) {
		return fmt.Errorf("%w: must be between %d and %d", err, questions.MinCount, questions.MaxCount)
	}
	var rejected *llm.ErrRejectedCredential
	if errors.As(err, &rejected) {
		return fmt.Errorf("%w (check the key in your environment or .env file)", err)
	}
	return err
}

func printProblem(out io.Writer, n int, p catalog.Problem, showAnswer bool) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(out, "%d. %s  [%s]\n", n, p.Title, p.ID)
	fmt.Fprintln(out, sep)
	if p.Passage != "" {
		fmt.Fprintln(out, p.Passage)
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, p.Statement)
	for i, opt := range p.Options {
		fmt.Fprintf(out, "  %c) %s\n", 'A'+i, opt)
	}
	if !showAnswer {
		return
	}
	fmt.Fprintf(out, "\nAnswer: %s\n", p.Answer)
	for i, step := range p.Steps {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
}

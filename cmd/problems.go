package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/progress"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List catalog problems with your status",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		e, err := openEnv(cmd.Context(), slog.Default())
		if err != nil {
			return err
		}
		defer e.Close()

		result := catalog.Paginate(e.source.ListStatic(f), page, perPage)
		printProblemPage(cmd.OutOrStdout(), result, e.tracker.ProblemStatus)
		return nil
	},
}

func init() {
	addFilterFlags(problemsCmd)
	problemsCmd.Flags().String("topic", "", "Topic id")
	problemsCmd.Flags().StringP("search", "q", "", "Match title, topic or tag")
	problemsCmd.Flags().Int("page", 1, "Page number")
	problemsCmd.Flags().Int("per-page", catalog.DefaultPerPage, "Problems per page")
}

// addFilterFlags registers the enum flags shared by problems and generate.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("subject", "", "Subject ("+enumList(catalog.AllSubjects())+")")
	cmd.Flags().String("level", "", "Education level ("+enumList(catalog.AllEducationLevels())+")")
	cmd.Flags().String("type", "", "Question type ("+enumList(catalog.AllQuestionTypes())+")")
	cmd.Flags().String("difficulty", "", "Difficulty ("+enumList(catalog.AllDifficulties())+")")
}

// filterFromFlags parses the filter flags. Unset flags leave the field zero.
func filterFromFlags(cmd *cobra.Command) (catalog.Filter, error) {
	var f catalog.Filter
	var err error
	if v, _ := cmd.Flags().GetString("subject"); v != "" {
		if f.Subject, err = catalog.ParseSubject(v); err != nil {
			return f, err
		}
	}
	if v, _ := cmd.Flags().GetString("level"); v != "" {
		if f.EducationLevel, err = catalog.ParseEducationLevel(v); err != nil {
			return f, err
		}
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		if f.QuestionType, err = catalog.ParseQuestionType(v); err != nil {
			return f, err
		}
	}
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		if f.Difficulty, err = catalog.ParseDifficulty(v); err != nil {
			return f, err
		}
	}
	if cmd.Flags().Lookup("topic") != nil {
		f.Topic, _ = cmd.Flags().GetString("topic")
	}
	if cmd.Flags().Lookup("search") != nil {
		f.Query, _ = cmd.Flags().GetString("search")
	}
	return f, nil
}

func printProblemPage(out io.Writer, page catalog.Page[catalog.Problem], status func(string) progress.Status) {
	if page.Total == 0 {
		fmt.Fprintln(out, "No problems match.")
		return
	}

	fmt.Fprintf(out, "%-10s  %-20s  %-36s  %-7s  %s\n", "Status", "ID", "Title", "Level", "Type")
	fmt.Fprintln(out, strings.Repeat("─", 96))
	for _, p := range page.Items {
		fmt.Fprintf(out, "%-10s  %-20s  %-36s  %-7s  %s\n",
			status(p.ID),
			truncate(p.ID, 20),
			truncate(p.Title, 36),
			p.Difficulty,
			p.QuestionType,
		)
	}
	fmt.Fprintln(out, strings.Repeat("─", 96))
	fmt.Fprintf(out, "Page %d of %d (%d problems)\n", page.Page, page.TotalPages, page.Total)
}

func enumList[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/app"
	"github.com/abhisek/studyy/internal/logging"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start the practice app",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		return runPractice(cmd, topic)
	},
}

func init() {
	practiceCmd.Flags().StringP("topic", "t", "", "Open this topic directly")
}

// runPractice launches the TUI. Logs go to studyy.log next to the
// database so they do not draw over the screen.
func runPractice(cmd *cobra.Command, topic string) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "studyy.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := logging.Setup(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	e, err := openEnv(ctx, logger)
	if err != nil {
		return err
	}
	defer e.Close()

	if topic != "" {
		if _, err := e.catalog.Topic(topic); err != nil {
			return err
		}
	}
	if !e.source.HasProvider() {
		logger.Info("AI features unavailable: no LLM provider configured")
	}

	return app.Run(ctx, app.Options{
		Source:     e.source,
		Tracker:    e.tracker,
		Prefs:      e.prefs,
		StartTopic: topic,
	})
}

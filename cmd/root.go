package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyy/internal/config"
	"github.com/abhisek/studyy/internal/logging"
	"github.com/abhisek/studyy/internal/store"
)

// cfg is resolved once per invocation in the root PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "studyy",
	Short: "Practice problems with XP, levels and streaks",
	Long: "Studyy is a terminal practice app. Work through built-in topics or " +
		"AI-generated questions, earn XP and keep a daily streak going.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the config file, applies flag overrides and
// installs the process logger.
func setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.Store.Path = p
	}
	cfg = c

	if _, err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	slog.Debug("config loaded", "store", cfg.Store.Backend, "config", path)
	return nil
}

// resolveDBPath returns the database path using --db / STUDYY_DB / the
// config file (in that order, already folded into cfg), then the default
// XDG path.
func resolveDBPath() (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

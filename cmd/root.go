package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/edubridge/edubridge/internal/config"
	"github.com/edubridge/edubridge/internal/store"
)

// logger is shared by all subcommands; built in the persistent pre-run.
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "edubridge",
	Short: "AI tutor for low-bandwidth networks",
	Long:  "EduBridge — a chat-style AI tutor that brings stage-based lessons, quizzes, and study tools to 2G/3G-grade connections.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env always wins.
		_ = godotenv.Load()

		verbose, _ := cmd.Flags().GetBool("verbose")
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		cfg.OutputPaths = []string{"stderr"}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUBRIDGE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (defaults to XDG config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then EDUBRIDGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the optional YAML config file.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.File{}, err
		}
	}
	return config.Load(path)
}

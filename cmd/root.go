package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nsharma/lingua/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "AI language tutor in your terminal",
	Long:  "Lingua is a terminal client for the Lingua language-learning assistant: text chat, voice conversations, and progress tracking against your backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite cache file (overrides LINGUA_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Backend base URL (overrides LINGUA_BACKEND_URL env var)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig builds the runtime config from env, then applies flag
// overrides, which win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()

	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.BackendURL = backend
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}

	if cfg.DBPath == "" {
		p, err := config.DefaultDBPath()
		if err != nil {
			return cfg, err
		}
		cfg.DBPath = p
		return cfg, nil
	}
	return cfg, config.EnsureDir(cfg.DBPath)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print your learning progress without opening the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open local cache: %w", err)
		}
		defer func() { _ = st.Close() }()

		ctx := cmd.Context()
		userID, ok := st.IdentityRepo().UserID(ctx)
		if !ok {
			fmt.Println("No profile yet. Run lingua and complete onboarding first.")
			return nil
		}

		client := api.New(cfg.BackendURL, cfg.RequestTimeout)
		progress, err := client.GetProgress(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch progress: %w", err)
		}

		fmt.Printf("Minutes practiced:  %d\n", progress.TotalLearningMinutes)
		fmt.Printf("Conversations:      %d\n", progress.ConversationsCompleted)
		fmt.Printf("Current streak:     %d days\n", progress.CurrentStreak)
		fmt.Printf("Longest streak:     %d days\n", progress.LongestStreak)
		fmt.Printf("Vocabulary:         %d words\n", progress.VocabularyLearned)
		if progress.LastActiveDate != "" {
			fmt.Printf("Last active:        %s\n", progress.LastActiveDate)
		}
		fmt.Printf("Weekly goal:        %.0f%%\n", progress.WeeklyGoalProgress)
		return nil
	},
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nsharma/lingua/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the cached identity and profile",
	Long:  "Removes the locally cached user id and profile. The backend account is untouched; the next launch starts at onboarding again.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("Clear the cached identity and profile? [y/N] ")
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open local cache: %w", err)
		}
		defer func() { _ = st.Close() }()

		if err := st.IdentityRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear identity: %w", err)
		}

		fmt.Println("Local identity cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}

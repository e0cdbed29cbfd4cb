package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/app"
	"github.com/nsharma/lingua/internal/audio"
	"github.com/nsharma/lingua/internal/auth"
	"github.com/nsharma/lingua/internal/store"
	"github.com/nsharma/lingua/internal/voice"
)

// runApp loads configuration, opens the local cache, wires the backend
// and identity clients, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open local cache: %w", err)
	}
	defer func() { _ = st.Close() }()

	client := api.New(cfg.BackendURL, cfg.RequestTimeout)

	provider, err := auth.NewAppwriteProvider(cfg.Auth)
	if err != nil {
		return fmt.Errorf("configure identity provider: %w", err)
	}

	sounds := audio.NewManager(nil)
	if player, err := audio.NewExecPlayer(); err != nil {
		fmt.Fprintln(os.Stderr, "No audio player found:", err)
		fmt.Fprintln(os.Stderr, "Speech playback will be unavailable.")
	} else {
		sounds = audio.NewManager(player)
	}

	opts := app.Options{
		Client:   client,
		Provider: provider,
		Identity: st.IdentityRepo(),
		Events:   st.EventRepo(),
		Rooms:    voice.NewWSRoomClient(),
		Sounds:   sounds,
	}

	return app.Run(opts)
}

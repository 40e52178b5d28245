package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scriptplay/internal/app"
	"scriptplay/internal/config"
	"scriptplay/internal/loader"

	tea "github.com/charmbracelet/bubbletea"
)

var playCmd = &cobra.Command{
	Use:   "play [files...]",
	Short: "Open the player, optionally loading the given files as the first batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Loader{}.Load(configPath)
		if err != nil {
			return err
		}

		inputs := make([]loader.Input, 0, len(args))
		for _, path := range args {
			inputs = append(inputs, loader.FileInput(path))
		}

		p := tea.NewProgram(app.New(cfg, inputs), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run player: %w", err)
		}
		return nil
	},
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nttrung2406/readlaw-cli/internal/docview"
)

func openCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "open <filename> <id>",
		Short: "Open a document session (summary, clauses, chat)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.requireLogin(); err != nil {
				return err
			}

			model := docview.New(rt.client, args[0], args[1], docview.ForLanguage(rt.cfg.Language))
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

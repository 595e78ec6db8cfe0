package cli

import (
	"docshelf/internal/ui/browser"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (a *App) newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and organize folders interactively",
		Long: `Open the interactive folder browser.

Keys: arrows or j/k move, enter opens a folder, tab switches to its files,
n creates a folder, r renames, d deletes, m marks for a move and p moves the
marked item into the folder under the cursor, s switches private/shared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := a.storage(cmd.Context())
			if err != nil {
				return err
			}

			model := browser.New(cmd.Context(), backend.Storage, a.treeBuilder(), a.scope(), a.logger)
			a.logger.Info("browser starting", "scope", a.scope(), "store", backend.Kind, "view_id", model.FolderView().ID().String())

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

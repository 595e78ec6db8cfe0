package cli

import (
	"context"
	"fmt"

	"docshelf/internal/domain"
	docsys "docshelf/internal/service/docsystem"

	"github.com/spf13/cobra"
)

// mutation loads a view and binds a mutation service to it.
func (a *App) mutation(ctx context.Context) (*docsys.FolderView, *docsys.MutationService, error) {
	view, backend, err := a.loadView(ctx)
	if err != nil {
		return nil, nil, err
	}
	return view, docsys.NewMutationService(backend.Storage, view, a.logger), nil
}

func (a *App) newMkdirCommand() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Example: `  docshelf mkdir Papers
  docshelf mkdir ML --parent Papers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, svc, err := a.mutation(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			parentID, err := resolveFolder(view.Snapshot(), parent)
			if err != nil {
				return err
			}

			folder, err := svc.CreateFolder(cmd.Context(), args[0], parentID)
			if folder == nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (#%d)\n", view.DisplayPath(&folder.ID), folder.ID)
			return err
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent folder id or path (default root)")
	return cmd
}

func (a *App) newRenameCommand() *cobra.Command {
	var isFile bool

	cmd := &cobra.Command{
		Use:   "rename <folder> <new-name>",
		Short: "Rename a folder or, with --file, a file",
		Example: `  docshelf rename Papers/ML "Machine Learning"
  docshelf rename --file Papers/ML/attention.pdf transformers.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, svc, err := a.mutation(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			out := cmd.OutOrStdout()
			if isFile {
				id, err := resolveFile(view.Snapshot(), args[0])
				if err != nil {
					return err
				}
				file, err := svc.RenameFile(cmd.Context(), id, args[1])
				if file == nil {
					return err
				}
				fmt.Fprintf(out, "renamed file #%d to %s\n", file.ID, file.Name)
				return err
			}

			id, err := resolveFolder(view.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return domain.NewValidationError("folder", "cannot rename the root")
			}
			folder, err := svc.RenameFolder(cmd.Context(), *id, args[1])
			if folder == nil {
				return err
			}
			fmt.Fprintf(out, "renamed to %s\n", view.DisplayPath(&folder.ID))
			return err
		},
	}

	cmd.Flags().BoolVarP(&isFile, "file", "f", false, "Rename a file instead of a folder")
	return cmd
}

func (a *App) newMoveCommand() *cobra.Command {
	var isFile bool

	cmd := &cobra.Command{
		Use:   "mv <source> <destination>",
		Short: "Move a folder or, with --file, a file",
		Long: `Move a folder or file into a destination folder. Use "/" as the
destination to move to the root. A folder cannot move into itself or one of
its own subfolders.`,
		Example: `  docshelf mv Papers/ML /
  docshelf mv --file 10 Papers`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, svc, err := a.mutation(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			dest, err := resolveFolder(view.Snapshot(), args[1])
			if err != nil {
				return err
			}
			destLabel := view.DisplayPath(dest)
			out := cmd.OutOrStdout()

			if isFile {
				id, err := resolveFile(view.Snapshot(), args[0])
				if err != nil {
					return err
				}
				file, err := svc.MoveFile(cmd.Context(), id, dest)
				if file == nil {
					return err
				}
				fmt.Fprintf(out, "moved %s to %s\n", file.Name, destLabel)
				return err
			}

			id, err := resolveFolder(view.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return domain.NewValidationError("folder", "cannot move the root")
			}
			folder, err := svc.MoveFolder(cmd.Context(), *id, dest)
			if folder == nil {
				return err
			}
			fmt.Fprintf(out, "moved %s to %s\n", folder.Name, destLabel)
			return err
		},
	}

	cmd.Flags().BoolVarP(&isFile, "file", "f", false, "Move a file instead of a folder")
	return cmd
}

func (a *App) newRemoveCommand() *cobra.Command {
	var isFile bool

	cmd := &cobra.Command{
		Use:   "rm <folder>",
		Short: "Delete a folder with its contents or, with --file, a file",
		Example: `  docshelf rm Papers/ML
  docshelf rm --file Papers/attention.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, svc, err := a.mutation(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			out := cmd.OutOrStdout()
			if isFile {
				id, err := resolveFile(view.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := svc.DeleteFile(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(out, "deleted file #%d\n", id)
				return nil
			}

			id, err := resolveFolder(view.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if id == nil {
				return domain.NewValidationError("folder", "cannot delete the root")
			}
			label := view.DisplayPath(id)
			if err := svc.DeleteFolder(cmd.Context(), *id); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %s\n", label)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&isFile, "file", "f", false, "Delete a file instead of a folder")
	return cmd
}

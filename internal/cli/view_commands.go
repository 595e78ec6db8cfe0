package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"docshelf/internal/repository/memory"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (a *App) newTreeCommand() *cobra.Command {
	var opts TreeOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder tree",
		Example: `  # Private folders with their files
  docshelf tree

  # Shared folders only, with ids
  docshelf tree --scope shared --ids --files=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, _, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view.Snapshot().Tree)
			}
			_, err = fmt.Fprintln(out, RenderTree(view.Snapshot().Tree, opts))
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.Files, "files", true, "Include files")
	cmd.Flags().BoolVar(&opts.IDs, "ids", false, "Show record ids")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")
	return cmd
}

func (a *App) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [folder]",
		Short: "List the files in a folder",
		Long: `List the files in a folder. The folder is a slash-separated name path
such as Papers/ML or an id written as #42 (a bare number that names no folder
is also read as an id); without one the root-level files are listed.`,
		Example: `  docshelf ls
  docshelf ls Papers/ML
  docshelf ls '#42'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			folderID, err := resolveFolder(view.Snapshot(), arg)
			if err != nil {
				return err
			}
			view.SelectFolder(folderID)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, view.DisplayPath(folderID))

			files := view.SelectedFiles()
			if len(files) == 0 {
				_, err = fmt.Fprintln(out, "(no files)")
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Size", "Type", "Status", "Created"})
			for _, f := range files {
				created := ""
				if !f.CreatedAt.IsZero() {
					created = f.CreatedAt.Local().Format(time.DateTime)
				}
				t.AppendRow(table.Row{f.ID, f.Name, formatSize(f.Size), f.MediaType, f.UploadStatus, created})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}

func (a *App) newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path <folder-id>",
		Short: "Print the display path of a folder",
		Long: `Print the display path of a folder. Folders missing from the collection
print as "Folder #<id>" and cyclic parent chains as "(cyclic reference)".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			folderID, err := resolveFolder(view.Snapshot(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), view.DisplayPath(folderID))
			return err
		},
	}
}

func (a *App) newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the scope's folders and files as a YAML fixture",
		Long: `Write every folder and file of the scope as a YAML fixture that the
memory store can load with FIXTURE_PATH.`,
		Example: `  docshelf export -o shelf.yaml
  STORE=memory FIXTURE_PATH=shelf.yaml docshelf tree`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, _, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			defer view.Close()

			snap := view.Snapshot()
			fixture := &memory.Fixture{Folders: snap.Folders, Files: snap.Files}

			if output == "" || output == "-" {
				return fixture.Encode(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			if err := fixture.Encode(f); err != nil {
				return err
			}
			a.logger.Info("fixture exported", "path", output, "folder_count", len(snap.Folders), "file_count", len(snap.Files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

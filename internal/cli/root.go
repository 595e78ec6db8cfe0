// Package cli provides the docshelf command-line host.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docshelf/internal/config"
	"docshelf/internal/domain"
	models "docshelf/internal/domain/models/docsystem"
	"docshelf/internal/repository"
	docsys "docshelf/internal/service/docsystem"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// Version information (set at build time).
var Version = "0.1.0"

// OpenFunc opens the storage backend a command runs against.
type OpenFunc func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repository.Backend, error)

// App carries the configuration and backend shared by every command.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	open    OpenFunc
	backend *repository.Backend
}

// NewApp creates an App that opens storage with repository.Open.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{cfg: cfg, logger: logger, open: repository.Open}
}

// Close releases the backend if a command opened one.
func (a *App) Close() {
	if a.backend != nil {
		a.backend.Close()
		a.backend = nil
	}
}

// NewRootCmd creates and returns the root command.
func (a *App) NewRootCmd() *cobra.Command {
	var scope, store, apiURL, fixture, locale string

	rootCmd := &cobra.Command{
		Use:   "docshelf",
		Short: "Browse and organize dashboard folders",
		Long: `docshelf shows the dashboard's flat folder records as a tree and
creates, renames, moves and deletes folders and files through the storage service.

Storage is chosen with STORE (http, memory or postgres) or --store.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("scope") {
				a.cfg.Scope = scope
			}
			if flags.Changed("store") {
				a.cfg.Store = store
			}
			if flags.Changed("api-url") {
				a.cfg.APIURL = apiURL
			}
			if flags.Changed("fixture") {
				a.cfg.FixturePath = fixture
			}
			if flags.Changed("locale") {
				a.cfg.Locale = locale
			}
			if _, err := models.ParseScope(a.cfg.Scope); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrValidation, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&scope, "scope", "s", "", "Folder scope: private or shared")
	rootCmd.PersistentFlags().StringVar(&store, "store", "", "Storage backend: http, memory or postgres")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Dashboard API base URL")
	rootCmd.PersistentFlags().StringVar(&fixture, "fixture", "", "YAML fixture for the memory store")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Locale used to order folder names")

	_ = rootCmd.RegisterFlagCompletionFunc("scope", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"private", "shared"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("store", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.StoreHTTP, config.StoreMemory, config.StorePostgres}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(a.newTreeCommand())
	rootCmd.AddCommand(a.newListCommand())
	rootCmd.AddCommand(a.newPathCommand())
	rootCmd.AddCommand(a.newMkdirCommand())
	rootCmd.AddCommand(a.newRenameCommand())
	rootCmd.AddCommand(a.newMoveCommand())
	rootCmd.AddCommand(a.newRemoveCommand())
	rootCmd.AddCommand(a.newBrowseCommand())
	rootCmd.AddCommand(a.newExportCommand())

	return rootCmd
}

func (a *App) storage(ctx context.Context) (*repository.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	backend, err := a.open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.backend = backend
	return backend, nil
}

func (a *App) scope() models.Scope {
	scope, err := models.ParseScope(a.cfg.Scope)
	if err != nil {
		return models.ScopePrivate
	}
	return scope
}

func (a *App) treeBuilder() *docsys.TreeBuilder {
	tag, err := language.Parse(a.cfg.Locale)
	if err != nil {
		a.logger.Warn("unknown locale, ordering with und", "locale", a.cfg.Locale)
		tag = language.Und
	}
	return docsys.NewTreeBuilder(tag)
}

// loadView opens storage and loads one generation into a fresh view.
func (a *App) loadView(ctx context.Context) (*docsys.FolderView, *repository.Backend, error) {
	backend, err := a.storage(ctx)
	if err != nil {
		return nil, nil, err
	}

	loader := docsys.NewLoader(backend.Storage, a.treeBuilder(), a.scope(), a.logger)
	view := docsys.NewFolderView(loader, a.logger)
	if err := view.Refetch(ctx); err != nil {
		return nil, nil, err
	}
	return view, backend, nil
}

// ErrorText is the message printed for a failed command.
func ErrorText(err error) string {
	var collabErr *domain.CollaboratorError
	if errors.As(err, &collabErr) {
		if collabErr.Op != "" {
			return collabErr.Op + ": " + collabErr.UserMessage()
		}
		return collabErr.UserMessage()
	}
	return err.Error()
}

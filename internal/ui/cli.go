package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgilabert/lectio/internal/config"
	"github.com/mgilabert/lectio/internal/db"
	"github.com/mgilabert/lectio/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  *db.SQLite
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "lectio",
		Short: "A weekly scheduler for tutoring classes",
		Long: `Lectio is a terminal scheduler for tutoring classes.

It lays out the weekly timetable on a slot grid, stacks colliding
sessions into lanes, and lets you move sessions around with the
keyboard or the mouse. Collisions resolve themselves: displaced
sessions slide to the next free lane without changing their times.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.store, a.store, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to a file in the current directory)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.cancelCmd())
	a.root.AddCommand(a.summaryCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("lectio %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the database on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if it was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

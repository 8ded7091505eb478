// Package cli defines the cobra command tree for campgrounds.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jharden/campgrounds/internal/db"
)

var flagDB string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "campgrounds",
		Short:         "Community campground listings",
		Long:          "A server-rendered campground listing app. Users register, create and review campgrounds, and manage photos. Run serve to start the web UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.campgrounds/campgrounds.db)")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag, the configured
// path, or the default path, in that order.
func openDB(cfgPath string) (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// Command postctl manages the post collection stored in the board database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dfryer1193/postboard/blog/application"
	"github.com/dfryer1193/postboard/blog/persistence"
	"github.com/dfryer1193/postboard/internal/logging"
	"github.com/dfryer1193/postboard/shared/db/sqlite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	dbPath     string
	storageKey string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "postctl",
		Short: "Manage the post board from the command line",
		Long: `postctl reads and edits the same post collection the server uses.

Examples:
  postctl list
  postctl add --title Launch --description "First post" \
      --image-url https://x.com/i.jpg --publish-date 2030-01-01 --category news
  postctl delete 3f0c...
  postctl stats`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			return logging.Setup(level, true)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default: SQLITE_DB_PATH or ./postboard.db)")
	rootCmd.PersistentFlags().StringVar(&opts.storageKey, "key", persistence.DefaultStorageKey, "Storage key holding the post collection")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newStatsCmd(opts),
	)

	return rootCmd
}

// openService connects to the database and loads the collection. The returned
// func closes the database.
func openService(ctx context.Context, opts *cliOptions) (*application.PostService, func(), error) {
	cfg := sqlite.NewSQLiteConfig()
	if opts.dbPath != "" {
		cfg.Path = opts.dbPath
	}

	database := sqlite.NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := persistence.NewPostStore(persistence.NewKeyValueStore(database.DB()), opts.storageKey)
	service := application.NewPostService(store, application.NewValidator(nil))
	service.Load(ctx)

	closeFn := func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
	return service, closeFn, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

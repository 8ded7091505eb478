package cli

import (
	"github.com/spf13/cobra"

	"github.com/jharden/campgrounds/internal/config"
	"github.com/jharden/campgrounds/internal/logging"
	"github.com/jharden/campgrounds/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample campgrounds",
		Long:  "Replace all campgrounds with randomly generated sample data owned by a seed user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logging.Setup(cfg.DevMode)

			database, err := openDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer closeDB(database)

			return seed.Run(database, count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 30, "number of campgrounds to generate")

	return cmd
}

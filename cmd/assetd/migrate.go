package main

import (
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		gdb, err := do.Invoke[*gorm.DB](rt.container.Injector)
		if err != nil {
			return err
		}
		if err := repo.Migrate(gdb); err != nil {
			return err
		}
		rt.log.Info("schema migrated")
		return nil
	},
}

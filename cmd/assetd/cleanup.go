package main

import (
	"fmt"

	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/bytedance/sonic"
	"github.com/samber/do"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete orphaned QR codes and labels and expired batch files once",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		maintenance, err := do.Invoke[service.MaintenanceService](rt.container.Injector)
		if err != nil {
			return err
		}
		report, err := maintenance.Cleanup(ctx)
		if err != nil {
			return err
		}
		out, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

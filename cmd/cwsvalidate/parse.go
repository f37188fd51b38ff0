package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malawski/cloudworkflowsimulator/config"
	"github.com/malawski/cloudworkflowsimulator/internal/execlog"
	"github.com/malawski/cloudworkflowsimulator/internal/logparse"
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <simulator-output> <execution-log>",
		Short: "Reconstruct an execution log from simulator output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pricing, err := config.LoadPricing(a.cfg.Pricing)
			if err != nil {
				return err
			}

			events, err := logparse.ParseFile(args[0])
			if err != nil {
				return err
			}

			log, stats, err := execlog.Build(events, execlog.Options{
				Pricing:      pricing.Params(),
				DefaultPrice: pricing.DefaultPrice,
			})
			if err != nil {
				return err
			}

			if err := execlog.WriteFile(args[1], log); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d VMs, %d workflows, %d jobs, %d transfers, %d storage states (dropped %d VMs, %d jobs, %d transfers)\n",
				args[1], stats.VMs, len(log.Workflows()), stats.Tasks, stats.Transfers, stats.StorageStateEvents,
				stats.DroppedVMs, stats.DroppedTasks, stats.DroppedTransfers)
			return nil
		},
	}

	cmd.Flags().String("pricing", "", "Pricing config YAML (default simple, 3600 s)")
	return cmd
}

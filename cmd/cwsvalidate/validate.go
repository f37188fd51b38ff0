package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/malawski/cloudworkflowsimulator/config"
	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/internal/cost"
	"github.com/malawski/cloudworkflowsimulator/internal/dag"
	"github.com/malawski/cloudworkflowsimulator/internal/execlog"
	"github.com/malawski/cloudworkflowsimulator/internal/orchestration"
)

func (a *app) newValidateCmd() *cobra.Command {
	var costReport bool

	cmd := &cobra.Command{
		Use:   "validate <execution-log>",
		Short: "Check an execution log and print every violation",
		Long: `Runs the selected validators over an execution log and prints one line per
violation. Exits with status 1 when any violation was found.

DAG files are taken from the workflow lines of the log, relative to --dag-dir.
They are only read when the order or transfers validator is selected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pricing, err := config.LoadPricing(a.cfg.Pricing)
			if err != nil {
				return err
			}

			log, err := execlog.ReadFile(args[0], execlog.ReadOptions{DefaultPrice: pricing.DefaultPrice})
			if err != nil {
				return errors.WithHint(err, "logs are produced by 'cwsvalidate parse'")
			}

			validators, err := orchestration.NewValidators(a.cfg.Validators, orchestration.FactoryOptions{})
			if err != nil {
				return err
			}

			var dags map[contracts.WorkflowID]*contracts.DAG
			if orchestration.NeedsDAGs(validators) {
				dags, err = dag.LoadForWorkflows(a.cfg.DAGDir, log.Workflows())
				if err != nil {
					return errors.WithHint(err, "point --dag-dir at the directory holding the workflow DAG files")
				}
			}

			orch := orchestration.NewOrchestrator(validators, orchestration.NewParallelExecutor(a.cfg.Parallelism))
			result, err := orch.Run(cmd.Context(), &contracts.ValidationInput{Log: log, DAGs: dags})
			if err != nil {
				return err
			}

			if costReport {
				if err := writeCostReport(cmd.ErrOrStderr(), log); err != nil {
					return err
				}
			}

			for _, line := range result.Errors {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			if !result.IsValid() {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("validator", []string{orchestration.AllValidators}, "Validators to run (all, order, transfers, resource, cost, timing)")
	cmd.Flags().String("dag-dir", "", "Directory the workflow DAG filenames are relative to")
	cmd.Flags().Int("parallelism", 4, "Validators run at once")
	cmd.Flags().String("pricing", "", "Pricing config YAML, for the price of legacy VM lines")
	cmd.Flags().BoolVar(&costReport, "cost-report", false, "Print the per-VM cost breakdown to stderr")
	return cmd
}

func writeCostReport(w io.Writer, log *contracts.ExecutionLog) error {
	calc, err := cost.NewCalculatorForParams(cost.NewCatalog(), log.Settings.Pricing)
	if err != nil {
		return err
	}

	b := calc.Breakdown(log.VMs())
	fmt.Fprintf(w, "pricing: %s\n", b.Model)
	for _, item := range b.Items {
		fmt.Fprintf(w, "VM %s: runtime %v, billed units %v, cost %v\n", item.VMID, item.Runtime, item.BilledUnits, item.Cost)
	}
	fmt.Fprintf(w, "total: %v (budget %v)\n", b.Total, log.Settings.Budget)
	return nil
}

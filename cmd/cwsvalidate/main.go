// Command cwsvalidate checks cloud workflow simulator execution logs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malawski/cloudworkflowsimulator/config"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/logger"
)

// errValidationFailed makes the process exit with status 1 after the error
// lines have been printed.
var errValidationFailed = errors.New("validation failed")

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"validator":   "validators",
	"parallelism": "parallelism",
	"pricing":     "pricing",
	"dag-dir":     "dag-dir",
	"log-json":    "log.json",
	"log-level":   "log.level",
}

// app carries the merged configuration to subcommands.
type app struct {
	configFile string
	cfg        *config.CLIConfig
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cwsvalidate",
		Short: "Validate cloud workflow simulator execution logs",
		Long: `cwsvalidate checks that a simulated cloud workflow execution respected
DAG ordering, file transfers, VM capacity, budget and deadline.

Examples:
  cwsvalidate parse sim.out run.log          # Reconstruct an execution log
  cwsvalidate validate run.log --dag-dir dags
  cwsvalidate validate run.log --validator cost --cost-report
  cwsvalidate dag dags/montage_25.dag        # Inspect a DAG
  cwsvalidate serve                          # Start the HTTP API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default ./cwsvalidate.yaml)")
	root.PersistentFlags().Bool("log-json", false, "Log as JSON")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(a.newParseCmd())
	root.AddCommand(a.newValidateCmd())
	root.AddCommand(newDAGCmd())
	root.AddCommand(a.newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// load merges flags, environment and config file, then sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.LoadCLI(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding --%s", name)
		}
	}
	return nil
}

func main() {
	err := newRootCmd().Execute()
	logger.Sync()

	switch {
	case err == nil:
	case errors.Is(err, errValidationFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hints)
		}
		os.Exit(2)
	}
}

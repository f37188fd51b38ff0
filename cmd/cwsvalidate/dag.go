package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/internal/dag"
)

func newDAGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dag <dag-file>",
		Short: "Show task counts, topological order and critical path of a DAG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dag.ParseFile(args[0], "0")
			if err != nil {
				return err
			}

			order, err := dag.TopologicalOrder(d)
			if err != nil {
				return err
			}
			path, length, err := dag.CriticalPath(d)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tasks: %d\n", len(d.Tasks))
			fmt.Fprintf(out, "files: %d\n", len(d.Files))
			fmt.Fprintf(out, "order: %s\n", taskIDs(order))
			fmt.Fprintf(out, "critical path: %s (%v)\n", taskIDs(path), length)
			return nil
		},
	}
}

func taskIDs(tasks []*contracts.DAGTask) string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = string(t.ID)
	}
	return strings.Join(ids, " ")
}

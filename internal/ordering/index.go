// Package ordering checks causal properties of an execution log against the
// workflow DAGs: parents finish before children start, and every declared
// file moves through global storage at the right time.
package ordering

import (
	"cmp"
	"slices"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

type taskKey struct {
	workflow contracts.WorkflowID
	task     contracts.TaskID
}

type transferKey struct {
	file contracts.FileID
	job  contracts.JobID
}

// completedIndex maps DAG nodes to the successful execution of each node.
// A retried task keeps the first successful attempt in log order.
type completedIndex map[taskKey]contracts.Task

func indexCompleted(log *contracts.ExecutionLog) completedIndex {
	idx := make(completedIndex)
	for _, t := range log.CompletedTasks() {
		k := taskKey{workflow: t.WorkflowID, task: t.TaskID}
		if _, seen := idx[k]; !seen {
			idx[k] = t
		}
	}
	return idx
}

func (idx completedIndex) lookup(workflow contracts.WorkflowID, task contracts.TaskID) (contracts.Task, bool) {
	t, ok := idx[taskKey{workflow: workflow, task: task}]
	return t, ok
}

func indexTransfers(log *contracts.ExecutionLog) map[transferKey][]contracts.Transfer {
	idx := make(map[transferKey][]contracts.Transfer)
	for _, tr := range log.Transfers() {
		k := transferKey{file: tr.FileID, job: tr.JobID}
		idx[k] = append(idx[k], tr)
	}
	return idx
}

// sortedDAGs returns the DAGs ordered by workflow id so that error order
// does not depend on map iteration.
func sortedDAGs(dags map[contracts.WorkflowID]*contracts.DAG) []*contracts.DAG {
	out := make([]*contracts.DAG, 0, len(dags))
	for id, d := range dags {
		if d == nil {
			continue
		}
		if d.Workflow != id {
			d = d.WithWorkflow(id)
		}
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *contracts.DAG) int {
		return cmp.Compare(a.Workflow, b.Workflow)
	})
	return out
}

package dag

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // done
)

// Resolver checks the structure of a DAG: every edge must point at a node
// of the same graph, edges must be mirrored in Before/After, and there must
// be no cycle.
//
// Thread-safety: the resolver is stateless.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Validate returns ErrDAGInvalid for dangling or unmirrored edges and
// ErrDAGCycle when the graph is cyclic.
func (r *Resolver) Validate(d *contracts.DAG) error {
	if d == nil {
		return contracts.ErrInvalidInput
	}

	for _, task := range d.Tasks {
		for _, next := range task.After {
			if owned, ok := d.Task(next.ID); !ok || owned != next {
				return errors.Wrapf(contracts.ErrDAGInvalid, "edge %s -> %s leaves the graph", task.ID, next.ID)
			}
			if !contains(next.Before, task) {
				return errors.Wrapf(contracts.ErrDAGInvalid, "edge %s -> %s is not mirrored", task.ID, next.ID)
			}
		}
	}

	colors := make(map[contracts.TaskID]int, len(d.Tasks))
	for _, task := range d.Tasks {
		if colors[task.ID] != white {
			continue
		}
		if cycleAt := findCycle(task, colors); cycleAt != nil {
			return errors.Wrapf(contracts.ErrDAGCycle, "task %s", cycleAt.ID)
		}
	}
	return nil
}

// findCycle runs DFS along successor edges and returns the task closing a
// back edge, or nil.
func findCycle(task *contracts.DAGTask, colors map[contracts.TaskID]int) *contracts.DAGTask {
	colors[task.ID] = gray

	for _, next := range task.After {
		switch colors[next.ID] {
		case gray:
			return next
		case white:
			if found := findCycle(next, colors); found != nil {
				return found
			}
		}
	}

	colors[task.ID] = black
	return nil
}

func contains(tasks []*contracts.DAGTask, t *contracts.DAGTask) bool {
	for _, x := range tasks {
		if x == t {
			return true
		}
	}
	return false
}

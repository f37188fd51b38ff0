package dag

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// taskQueue is a FIFO of DAG tasks.
type taskQueue struct {
	items []*contracts.DAGTask
}

func (q *taskQueue) Enqueue(t *contracts.DAGTask) {
	q.items = append(q.items, t)
}

// Dequeue returns (nil, false) when the queue is empty.
func (q *taskQueue) Dequeue() (*contracts.DAGTask, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

func (q *taskQueue) Len() int {
	return len(q.items)
}

// TopologicalOrder returns the tasks so that every parent precedes its
// children. Ties are broken by insertion order, which makes the result
// deterministic. Returns ErrDAGCycle if not every task can be ordered.
func TopologicalOrder(d *contracts.DAG) ([]*contracts.DAGTask, error) {
	if d == nil {
		return nil, contracts.ErrInvalidInput
	}

	pending := make(map[contracts.TaskID]int, len(d.Tasks))
	var ready taskQueue
	for _, t := range d.Tasks {
		pending[t.ID] = len(t.Before)
		if len(t.Before) == 0 {
			ready.Enqueue(t)
		}
	}

	order := make([]*contracts.DAGTask, 0, len(d.Tasks))
	for ready.Len() > 0 {
		t, _ := ready.Dequeue()
		order = append(order, t)
		for _, next := range t.After {
			pending[next.ID]--
			if pending[next.ID] == 0 {
				ready.Enqueue(next)
			}
		}
	}

	if len(order) != len(d.Tasks) {
		return nil, errors.Wrapf(contracts.ErrDAGCycle, "%d of %d tasks unreachable in topological order",
			len(d.Tasks)-len(order), len(d.Tasks))
	}
	return order, nil
}

// CriticalPath returns the longest makespan-weighted path through the DAG
// and its length.
func CriticalPath(d *contracts.DAG) ([]*contracts.DAGTask, contracts.Seconds, error) {
	order, err := TopologicalOrder(d)
	if err != nil {
		return nil, 0, err
	}
	if len(order) == 0 {
		return nil, 0, nil
	}

	finish := make(map[contracts.TaskID]contracts.Seconds, len(order))
	via := make(map[contracts.TaskID]*contracts.DAGTask, len(order))

	var last *contracts.DAGTask
	for _, t := range order {
		var start contracts.Seconds
		for _, parent := range t.Before {
			if via[t.ID] == nil || finish[parent.ID] > start {
				start = finish[parent.ID]
				via[t.ID] = parent
			}
		}
		finish[t.ID] = start + t.Makespan
		if last == nil || finish[t.ID] > finish[last.ID] {
			last = t
		}
	}

	var path []*contracts.DAGTask
	for t := last; t != nil; t = via[t.ID] {
		path = append([]*contracts.DAGTask{t}, path...)
	}
	return path, finish[last.ID], nil
}

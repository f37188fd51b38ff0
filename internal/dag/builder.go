// Package dag builds, checks and loads workflow task graphs.
package dag

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// Builder assembles a DAG node by node. Tasks keep insertion order.
type Builder struct {
	workflow contracts.WorkflowID
	tasks    []*contracts.DAGTask
	index    map[contracts.TaskID]*contracts.DAGTask
	files    []contracts.DAGFile
}

// NewBuilder creates a builder for the given workflow.
func NewBuilder(workflow contracts.WorkflowID) *Builder {
	return &Builder{
		workflow: workflow,
		index:    make(map[contracts.TaskID]*contracts.DAGTask),
	}
}

// AddTask declares a node. Task IDs must be unique.
func (b *Builder) AddTask(id contracts.TaskID, makespan contracts.Seconds, taskType string) error {
	if id == "" {
		return errors.Wrap(contracts.ErrDAGInvalid, "empty task id")
	}
	if _, exists := b.index[id]; exists {
		return errors.Wrapf(contracts.ErrDAGInvalid, "task %s declared twice", id)
	}
	task := &contracts.DAGTask{ID: id, Makespan: makespan, Type: taskType}
	b.tasks = append(b.tasks, task)
	b.index[id] = task
	return nil
}

// AddFile declares a file.
func (b *Builder) AddFile(name contracts.FileID, size int64) {
	b.files = append(b.files, contracts.DAGFile{Name: name, Size: size})
}

// AddEdge links parent -> child. Both tasks must already be declared.
func (b *Builder) AddEdge(parent, child contracts.TaskID) error {
	from, err := b.lookup(parent)
	if err != nil {
		return err
	}
	to, err := b.lookup(child)
	if err != nil {
		return err
	}
	from.After = append(from.After, to)
	to.Before = append(to.Before, from)
	return nil
}

// AddInputFile records that task needs file before it starts.
func (b *Builder) AddInputFile(task contracts.TaskID, file contracts.FileID) error {
	t, err := b.lookup(task)
	if err != nil {
		return err
	}
	t.FilesNeeded = append(t.FilesNeeded, file)
	return nil
}

// AddOutputFile records that task produces file.
func (b *Builder) AddOutputFile(task contracts.TaskID, file contracts.FileID) error {
	t, err := b.lookup(task)
	if err != nil {
		return err
	}
	t.FilesProduced = append(t.FilesProduced, file)
	return nil
}

// Build returns the DAG after checking it for cycles.
func (b *Builder) Build() (*contracts.DAG, error) {
	d := contracts.NewDAG(b.workflow, b.tasks, b.files)
	if err := NewResolver().Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (b *Builder) lookup(id contracts.TaskID) (*contracts.DAGTask, error) {
	t, ok := b.index[id]
	if !ok {
		return nil, errors.Wrapf(contracts.ErrUnknownTask, "task %s", id)
	}
	return t, nil
}

package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogBuilder(t *testing.T) {
	log := NewLogBuilder(Settings{Deadline: 10, Budget: 5}).
		AddVM(VM{ID: "0", Started: 1, Finished: 4}).
		AddWorkflow(Workflow{ID: "0"}).
		AddTask(Task{ID: "1", Result: ResultOK}).
		AddTask(Task{ID: "2", Result: ResultFailed}).
		AddTask(Task{ID: "3", Result: ResultRetryOK}).
		AddTransfer(Transfer{ID: "9"}).
		AddStorageState(StorageState{Time: 1}).
		Build()

	assert.Equal(t, 10.0, log.Settings.Deadline)
	assert.Equal(t, 3.0, log.VMs()[0].Runtime())
	assert.Len(t, log.Workflows(), 1)
	assert.Len(t, log.Tasks(), 3)
	assert.Len(t, log.Transfers(), 1)
	assert.Len(t, log.StorageStates(), 1)

	var ids []JobID
	for _, task := range log.CompletedTasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []JobID{"1", "3"}, ids)
}

func TestValidationResult_Merge(t *testing.T) {
	a := ValidationResult{Errors: []string{"a1", "a2"}}
	b := ValidationResult{Errors: []string{"b1"}}

	merged := a.Merge(b)
	assert.Equal(t, []string{"a1", "a2", "b1"}, merged.Errors)
	assert.False(t, merged.IsValid())
	assert.Equal(t, []string{"a1", "a2"}, a.Errors)

	assert.True(t, ValidationResult{}.Merge(ValidationResult{}).IsValid())
}

func TestDAG_TaskAndWithWorkflow(t *testing.T) {
	a := &DAGTask{ID: "a", Makespan: 1}
	b := &DAGTask{ID: "b", Makespan: 2, Before: []*DAGTask{a}}
	a.After = []*DAGTask{b}

	d := NewDAG("0", []*DAGTask{a, b}, []DAGFile{{Name: "f", Size: 3}})

	got, ok := d.Task("b")
	assert.True(t, ok)
	assert.Same(t, b, got)
	_, ok = d.Task("zz")
	assert.False(t, ok)

	other := d.WithWorkflow("7")
	assert.Equal(t, WorkflowID("7"), other.Workflow)
	assert.Equal(t, WorkflowID("0"), d.Workflow)
	same, ok := other.Task("a")
	assert.True(t, ok)
	assert.Same(t, a, same)
}

package contracts

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
)

func TestTaskEvent_Resolve(t *testing.T) {
	e := TaskEvent{
		ID:         "1",
		WorkflowID: null.StringFrom("0"),
		TaskID:     null.StringFrom("a"),
		VMID:       null.StringFrom("3"),
		Started:    null.FloatFrom(1),
		Finished:   null.FloatFrom(2),
		Result:     null.StringFrom("RETRY_OK"),
	}

	task, ok := e.Resolve()
	assert.True(t, ok)
	assert.Equal(t, Task{ID: "1", WorkflowID: "0", TaskID: "a", VMID: "3", Started: 1, Finished: 2, Result: ResultRetryOK}, task)

	unfinished := e
	unfinished.Finished = null.Float{}
	_, ok = unfinished.Resolve()
	assert.False(t, ok)

	garbled := e
	garbled.Result = null.StringFrom("??")
	_, ok = garbled.Resolve()
	assert.False(t, ok)
}

func TestTransferEvent_Resolve(t *testing.T) {
	e := TransferEvent{
		ID:        "7",
		VMID:      null.StringFrom("3"),
		Started:   null.FloatFrom(0.5),
		Finished:  null.FloatFrom(1.5),
		Direction: null.StringFrom("UPLOAD"),
		JobID:     null.StringFrom("1"),
		FileID:    null.StringFrom("out.dat"),
	}

	tr, ok := e.Resolve()
	assert.True(t, ok)
	assert.Equal(t, Transfer{ID: "7", VMID: "3", Started: 0.5, Finished: 1.5, Direction: Upload, JobID: "1", FileID: "out.dat"}, tr)

	e.Started = null.Float{}
	_, ok = e.Resolve()
	assert.False(t, ok)
}

func TestVMEvent_Resolve(t *testing.T) {
	vm, ok := VMEvent{ID: "1", Started: null.FloatFrom(0), Finished: null.FloatFrom(10)}.Resolve(1, 0.5)
	assert.True(t, ok)
	assert.Equal(t, VM{ID: "1", Started: 0, Finished: 10, Cores: 1, PriceForBillingUnit: 0.5}, vm)

	vm, ok = VMEvent{
		ID: "2", Started: null.FloatFrom(0), Finished: null.FloatFrom(10),
		Cores: null.IntFrom(4), PriceForBillingUnit: null.FloatFrom(2),
	}.Resolve(1, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 4, vm.Cores)
	assert.Equal(t, 2.0, vm.PriceForBillingUnit)

	vm, ok = VMEvent{ID: "4", Started: null.FloatFrom(0), Finished: null.FloatFrom(10), Cores: null.IntFrom(0)}.Resolve(1, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 1, vm.Cores)

	_, ok = VMEvent{ID: "3", Started: null.FloatFrom(0)}.Resolve(1, 0.5)
	assert.False(t, ok)
}

func TestEventKinds(t *testing.T) {
	assert.Equal(t, "task", TaskEvent{}.Kind().String())
	assert.Equal(t, "transfer", TransferEvent{}.Kind().String())
	assert.Equal(t, "vm", VMEvent{}.Kind().String())
	assert.Equal(t, "workflow", WorkflowEvent{}.Kind().String())
	assert.Equal(t, "settings", SettingsEvent{}.Kind().String())
	assert.Equal(t, "storage_state", StorageStateEvent{}.Kind().String())
}

package fusion

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

func startEvent(id contracts.JobID, started float64) contracts.TaskEvent {
	return contracts.TaskEvent{
		ID:         id,
		WorkflowID: null.StringFrom("1"),
		TaskID:     null.StringFrom("ID0000" + string(id)),
		VMID:       null.StringFrom("7"),
		Started:    null.FloatFrom(started),
	}
}

func finishEvent(id contracts.JobID, finished float64, result string) contracts.TaskEvent {
	return contracts.TaskEvent{
		ID:       id,
		Finished: null.FloatFrom(finished),
		Result:   null.StringFrom(result),
	}
}

func TestFuseTasks_StartAndFinish(t *testing.T) {
	fused := FuseTasks([]contracts.TaskEvent{
		startEvent("1", 3),
		finishEvent("1", 5, "OK"),
	})

	require.Len(t, fused, 1)
	task, ok := fused[0].Resolve()
	require.True(t, ok)
	assert.Equal(t, contracts.Task{
		ID:         "1",
		WorkflowID: "1",
		TaskID:     "ID00001",
		VMID:       "7",
		Started:    3,
		Finished:   5,
		Result:     contracts.ResultOK,
	}, task)
}

func TestFuseTasks_GroupsInterleavedEvents(t *testing.T) {
	fused := FuseTasks([]contracts.TaskEvent{
		startEvent("2", 1),
		startEvent("1", 0),
		finishEvent("2", 4, "RETRY_OK"),
		finishEvent("1", 2, "FAILED"),
	})

	require.Len(t, fused, 2)
	byID := map[contracts.JobID]contracts.TaskEvent{}
	for _, e := range fused {
		byID[e.ID] = e
	}
	assert.Equal(t, 4.0, byID["2"].Finished.Float64)
	assert.Equal(t, "RETRY_OK", byID["2"].Result.String)
	assert.Equal(t, 0.0, byID["1"].Started.Float64)
	assert.Equal(t, "FAILED", byID["1"].Result.String)
}

func TestFuseTasks_IncompleteEventIsKept(t *testing.T) {
	fused := FuseTasks([]contracts.TaskEvent{startEvent("9", 10)})

	require.Len(t, fused, 1)
	assert.False(t, fused[0].Finished.Valid)
	_, ok := fused[0].Resolve()
	assert.False(t, ok)
}

func TestFuseTasks_ConflictFavorsLastFolded(t *testing.T) {
	fused := FuseTasks([]contracts.TaskEvent{
		{ID: "1", Started: null.FloatFrom(1)},
		{ID: "1", Started: null.FloatFrom(2)},
		{ID: "1", Started: null.Float{}, Finished: null.FloatFrom(9)},
	})

	require.Len(t, fused, 1)
	assert.Equal(t, 2.0, fused[0].Started.Float64)
	assert.Equal(t, 9.0, fused[0].Finished.Float64)
}

func TestFuseTasks_Idempotent(t *testing.T) {
	once := FuseTasks([]contracts.TaskEvent{
		startEvent("1", 0), finishEvent("1", 2, "OK"),
		startEvent("2", 1), finishEvent("2", 3, "OK"),
	})
	twice := FuseTasks(once)

	assert.ElementsMatch(t, once, twice)
}

func TestFuseTasks_CompletenessOverManyParts(t *testing.T) {
	parts := []contracts.TaskEvent{
		{ID: "5", WorkflowID: null.StringFrom("w")},
		{ID: "5", TaskID: null.StringFrom("t")},
		{ID: "5", VMID: null.StringFrom("v")},
		{ID: "5", Started: null.FloatFrom(1)},
		{ID: "5", Finished: null.FloatFrom(2)},
		{ID: "5", Result: null.StringFrom("OK")},
	}

	fused := FuseTasks(parts)

	require.Len(t, fused, 1)
	_, ok := fused[0].Resolve()
	assert.True(t, ok)
}

func TestFuseTransfers_FinishLineCarriesOnlyTime(t *testing.T) {
	fused := FuseTransfers([]contracts.TransferEvent{
		{
			ID:        "11",
			VMID:      null.StringFrom("3"),
			Started:   null.FloatFrom(1.5),
			Direction: null.StringFrom("DOWNLOAD"),
			JobID:     null.StringFrom("4"),
			FileID:    null.StringFrom("in.txt"),
		},
		{ID: "11", Finished: null.FloatFrom(2.5)},
	})

	require.Len(t, fused, 1)
	tr, ok := fused[0].Resolve()
	require.True(t, ok)
	assert.Equal(t, contracts.Download, tr.Direction)
	assert.Equal(t, 2.5, tr.Finished)
	assert.Equal(t, contracts.FileID("in.txt"), tr.FileID)
}

func TestFuseVMs(t *testing.T) {
	fused := FuseVMs([]contracts.VMEvent{
		{ID: "1", Finished: null.FloatFrom(100)},
		{ID: "1", Started: null.FloatFrom(0), Cores: null.IntFrom(4)},
	})

	require.Len(t, fused, 1)
	vm, ok := fused[0].Resolve(1, 2.5)
	require.True(t, ok)
	assert.Equal(t, contracts.VM{ID: "1", Started: 0, Finished: 100, Cores: 4, PriceForBillingUnit: 2.5}, vm)
}

func TestFuseSettings(t *testing.T) {
	fused := FuseSettings([]contracts.SettingsEvent{
		{ID: 0, Budget: null.FloatFrom(300)},
		{ID: 0, Deadline: null.FloatFrom(3600)},
	})

	require.Len(t, fused, 1)
	assert.Equal(t, 300.0, fused[0].Budget.Float64)
	assert.Equal(t, 3600.0, fused[0].Deadline.Float64)
}

func TestFuse_Empty(t *testing.T) {
	assert.Nil(t, FuseTasks(nil))
}

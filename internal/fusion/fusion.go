// Package fusion merges partial event records that describe the same
// entity. A start line and a finish line of a job carry disjoint fields;
// fusing them yields one record with both.
package fusion

import (
	"cmp"
	"slices"

	"github.com/guregu/null/v6"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// MergeFunc folds next into acc.
type MergeFunc[E any] func(acc, next E) E

// Fuse groups events by key and folds each group left to right with merge.
// Events sharing a key keep their relative input order inside the fold.
// Groups are returned ordered by key; callers must not rely on input order
// being preserved. Fuse never drops a group, even when fields stay null.
func Fuse[E any, K cmp.Ordered](events []E, key func(E) K, merge MergeFunc[E]) []E {
	if len(events) == 0 {
		return nil
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b E) int {
		return cmp.Compare(key(a), key(b))
	})

	var fused []E
	acc := sorted[0]
	for _, e := range sorted[1:] {
		if key(e) == key(acc) {
			acc = merge(acc, e)
			continue
		}
		fused = append(fused, acc)
		acc = e
	}
	return append(fused, acc)
}

// FuseTasks fuses partial job records by job ID.
func FuseTasks(events []contracts.TaskEvent) []contracts.TaskEvent {
	return Fuse(events, func(e contracts.TaskEvent) contracts.JobID { return e.ID }, MergeTasks)
}

// FuseTransfers fuses partial transfer records by transfer ID.
func FuseTransfers(events []contracts.TransferEvent) []contracts.TransferEvent {
	return Fuse(events, func(e contracts.TransferEvent) contracts.TransferID { return e.ID }, MergeTransfers)
}

// FuseVMs fuses partial VM records by VM ID.
func FuseVMs(events []contracts.VMEvent) []contracts.VMEvent {
	return Fuse(events, func(e contracts.VMEvent) contracts.VMID { return e.ID }, MergeVMs)
}

// FuseSettings fuses the budget and deadline lines.
func FuseSettings(events []contracts.SettingsEvent) []contracts.SettingsEvent {
	return Fuse(events, func(e contracts.SettingsEvent) int { return e.ID }, MergeSettings)
}

// MergeTasks merges two records of the same job. A non-null field of next
// replaces the one in acc, so conflicting values resolve to the most
// recently folded record.
func MergeTasks(acc, next contracts.TaskEvent) contracts.TaskEvent {
	return contracts.TaskEvent{
		ID:         acc.ID,
		WorkflowID: pickString(acc.WorkflowID, next.WorkflowID),
		TaskID:     pickString(acc.TaskID, next.TaskID),
		VMID:       pickString(acc.VMID, next.VMID),
		Started:    pickFloat(acc.Started, next.Started),
		Finished:   pickFloat(acc.Finished, next.Finished),
		Result:     pickString(acc.Result, next.Result),
	}
}

// MergeTransfers merges two records of the same transfer.
func MergeTransfers(acc, next contracts.TransferEvent) contracts.TransferEvent {
	return contracts.TransferEvent{
		ID:        acc.ID,
		VMID:      pickString(acc.VMID, next.VMID),
		Started:   pickFloat(acc.Started, next.Started),
		Finished:  pickFloat(acc.Finished, next.Finished),
		Direction: pickString(acc.Direction, next.Direction),
		JobID:     pickString(acc.JobID, next.JobID),
		FileID:    pickString(acc.FileID, next.FileID),
	}
}

// MergeVMs merges two records of the same VM.
func MergeVMs(acc, next contracts.VMEvent) contracts.VMEvent {
	return contracts.VMEvent{
		ID:                  acc.ID,
		Started:             pickFloat(acc.Started, next.Started),
		Finished:            pickFloat(acc.Finished, next.Finished),
		Cores:               pickInt(acc.Cores, next.Cores),
		PriceForBillingUnit: pickFloat(acc.PriceForBillingUnit, next.PriceForBillingUnit),
	}
}

// MergeSettings merges settings lines.
func MergeSettings(acc, next contracts.SettingsEvent) contracts.SettingsEvent {
	return contracts.SettingsEvent{
		ID:       acc.ID,
		Deadline: pickFloat(acc.Deadline, next.Deadline),
		Budget:   pickFloat(acc.Budget, next.Budget),
	}
}

func pickString(acc, next null.String) null.String {
	if next.Valid {
		return next
	}
	return acc
}

func pickFloat(acc, next null.Float) null.Float {
	if next.Valid {
		return next
	}
	return acc
}

func pickInt(acc, next null.Int) null.Int {
	if next.Valid {
		return next
	}
	return acc
}

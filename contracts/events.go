package contracts

import (
	"github.com/guregu/null/v6"
)

// EventKind tags a partial event.
type EventKind int

const (
	KindTask EventKind = iota
	KindTransfer
	KindVM
	KindWorkflow
	KindSettings
	KindStorageState
)

func (k EventKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindTransfer:
		return "transfer"
	case KindVM:
		return "vm"
	case KindWorkflow:
		return "workflow"
	case KindSettings:
		return "settings"
	case KindStorageState:
		return "storage_state"
	default:
		return "unknown"
	}
}

// Event is one record produced from a single trace line. Start and finish
// of the same entity arrive as separate events with disjoint fields set.
type Event interface {
	Kind() EventKind
}

// TaskEvent is a partial job record keyed by ID.
type TaskEvent struct {
	ID         JobID
	WorkflowID null.String
	TaskID     null.String
	VMID       null.String
	Started    null.Float
	Finished   null.Float
	Result     null.String
}

// TransferEvent is a partial transfer record keyed by ID.
type TransferEvent struct {
	ID        TransferID
	VMID      null.String
	Started   null.Float
	Finished  null.Float
	Direction null.String
	JobID     null.String
	FileID    null.String
}

// VMEvent is a partial VM record keyed by ID.
type VMEvent struct {
	ID                  VMID
	Started             null.Float
	Finished            null.Float
	Cores               null.Int
	PriceForBillingUnit null.Float
}

// WorkflowEvent is complete on a single line.
type WorkflowEvent struct {
	Workflow Workflow
}

// SettingsEvent is a partial settings record; budget and deadline are
// logged on separate lines that share ID 0.
type SettingsEvent struct {
	ID       int
	Deadline null.Float
	Budget   null.Float
}

// StorageStateEvent is complete on a single line.
type StorageStateEvent struct {
	State StorageState
}

func (TaskEvent) Kind() EventKind         { return KindTask }
func (TransferEvent) Kind() EventKind     { return KindTransfer }
func (VMEvent) Kind() EventKind           { return KindVM }
func (WorkflowEvent) Kind() EventKind     { return KindWorkflow }
func (SettingsEvent) Kind() EventKind     { return KindSettings }
func (StorageStateEvent) Kind() EventKind { return KindStorageState }

// Resolve converts a fused task event into a Task. It reports false when a
// field is still missing, which marks an interrupted job.
func (e TaskEvent) Resolve() (Task, bool) {
	if !e.WorkflowID.Valid || !e.TaskID.Valid || !e.VMID.Valid ||
		!e.Started.Valid || !e.Finished.Valid || !e.Result.Valid {
		return Task{}, false
	}
	result, err := ParseResult(e.Result.String)
	if err != nil {
		return Task{}, false
	}
	return Task{
		ID:         e.ID,
		WorkflowID: WorkflowID(e.WorkflowID.String),
		TaskID:     TaskID(e.TaskID.String),
		VMID:       VMID(e.VMID.String),
		Started:    e.Started.Float64,
		Finished:   e.Finished.Float64,
		Result:     result,
	}, true
}

// Resolve converts a fused transfer event into a Transfer.
func (e TransferEvent) Resolve() (Transfer, bool) {
	if !e.VMID.Valid || !e.Started.Valid || !e.Finished.Valid ||
		!e.Direction.Valid || !e.JobID.Valid || !e.FileID.Valid {
		return Transfer{}, false
	}
	dir, err := ParseDirection(e.Direction.String)
	if err != nil {
		return Transfer{}, false
	}
	return Transfer{
		ID:        e.ID,
		VMID:      VMID(e.VMID.String),
		Started:   e.Started.Float64,
		Finished:  e.Finished.Float64,
		Direction: dir,
		JobID:     JobID(e.JobID.String),
		FileID:    FileID(e.FileID.String),
	}, true
}

// Resolve converts a fused VM event into a VM. Cores and price fall back
// to the given defaults when the log does not carry them; a non-positive
// core count is treated as missing.
func (e VMEvent) Resolve(defaultCores int, defaultPrice float64) (VM, bool) {
	if !e.Started.Valid || !e.Finished.Valid {
		return VM{}, false
	}
	cores := defaultCores
	if e.Cores.Valid && e.Cores.Int64 > 0 {
		cores = int(e.Cores.Int64)
	}
	price := defaultPrice
	if e.PriceForBillingUnit.Valid {
		price = e.PriceForBillingUnit.Float64
	}
	return VM{
		ID:                  e.ID,
		Started:             e.Started.Float64,
		Finished:            e.Finished.Float64,
		Cores:               cores,
		PriceForBillingUnit: price,
	}, true
}

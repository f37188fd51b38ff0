// Package contracts defines the core types and interfaces of the execution
// log validator.
package contracts

// JobID identifies one execution of a DAG task (unique per execution log).
type JobID string

// TaskID identifies a DAG node (unique within a workflow).
type TaskID string

// WorkflowID identifies a workflow instance.
type WorkflowID string

// VMID identifies a virtual machine.
type VMID string

// TransferID identifies a global storage transfer.
type TransferID string

// FileID identifies a DAG file by its name.
type FileID string

// Seconds is a simulation timestamp or duration in seconds.
type Seconds = float64

// Package execlog reconstructs execution logs from trace events and stores
// them in the line-oriented intermediate format.
package execlog

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/internal/fusion"
	"github.com/malawski/cloudworkflowsimulator/logger"
)

// DefaultCores is used for VMs whose trace does not state their capacity.
const DefaultCores = 1

// Options supply what a trace does not carry.
type Options struct {
	Pricing      contracts.PricingParams
	DefaultPrice float64
}

// Stats counts what reconstruction dropped.
type Stats struct {
	Tasks              int
	Transfers          int
	VMs                int
	DroppedTasks       int
	DroppedTransfers   int
	DroppedVMs         int
	StorageStateEvents int
}

// Build fuses trace events into an execution log. Jobs and transfers that
// never finished are dropped, as are VMs missing a start or termination.
// Returns ErrFormat when the trace has no budget or deadline.
func Build(events []contracts.Event, opts Options) (*contracts.ExecutionLog, Stats, error) {
	var (
		tasks     []contracts.TaskEvent
		transfers []contracts.TransferEvent
		vms       []contracts.VMEvent
		settings  []contracts.SettingsEvent
		workflows []contracts.Workflow
		states    []contracts.StorageState
	)
	for _, e := range events {
		switch e := e.(type) {
		case contracts.TaskEvent:
			tasks = append(tasks, e)
		case contracts.TransferEvent:
			transfers = append(transfers, e)
		case contracts.VMEvent:
			vms = append(vms, e)
		case contracts.SettingsEvent:
			settings = append(settings, e)
		case contracts.WorkflowEvent:
			workflows = append(workflows, e.Workflow)
		case contracts.StorageStateEvent:
			states = append(states, e.State)
		}
	}

	fusedSettings := fusion.FuseSettings(settings)
	if len(fusedSettings) == 0 || !fusedSettings[0].Budget.Valid || !fusedSettings[0].Deadline.Valid {
		return nil, Stats{}, errors.Wrap(contracts.ErrFormat, "trace has no budget and deadline lines")
	}

	b := contracts.NewLogBuilder(contracts.Settings{
		Deadline: fusedSettings[0].Deadline.Float64,
		Budget:   fusedSettings[0].Budget.Float64,
		Pricing:  opts.Pricing,
	})
	var stats Stats

	for _, vm := range fusion.FuseVMs(vms) {
		resolved, ok := vm.Resolve(DefaultCores, opts.DefaultPrice)
		if !ok {
			stats.DroppedVMs++
			logger.Logger.Debugw("dropping incomplete VM", "vm", vm.ID)
			continue
		}
		b.AddVM(resolved)
		stats.VMs++
	}
	for _, w := range workflows {
		b.AddWorkflow(w)
	}
	for _, t := range fusion.FuseTasks(tasks) {
		resolved, ok := t.Resolve()
		if !ok {
			stats.DroppedTasks++
			logger.Logger.Debugw("dropping unfinished job", "job", t.ID)
			continue
		}
		b.AddTask(resolved)
		stats.Tasks++
	}
	for _, tr := range fusion.FuseTransfers(transfers) {
		resolved, ok := tr.Resolve()
		if !ok {
			stats.DroppedTransfers++
			logger.Logger.Debugw("dropping unfinished transfer", "transfer", tr.ID)
			continue
		}
		b.AddTransfer(resolved)
		stats.Transfers++
	}
	for _, s := range states {
		b.AddStorageState(s)
	}
	stats.StorageStateEvents = len(states)

	logger.Logger.Infow("execution log reconstructed",
		"vms", stats.VMs, "tasks", stats.Tasks, "transfers", stats.Transfers,
		"dropped_vms", stats.DroppedVMs, "dropped_tasks", stats.DroppedTasks,
		"dropped_transfers", stats.DroppedTransfers)
	return b.Build(), stats, nil
}

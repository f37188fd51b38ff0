// Package resource checks that jobs and transfers respect the VM fleet:
// they run on known VMs, inside the VM lifetime, and never on more slots
// than the VM has cores.
package resource

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

type eventKind int

const (
	kindJob eventKind = iota
	kindTransfer
)

// event is a task or a transfer occupying one slot of a VM.
type event struct {
	kind     eventKind
	id       string
	started  contracts.Seconds
	finished contracts.Seconds
}

func (e event) label() string {
	if e.kind == kindJob {
		return "Job " + e.id
	}
	return "Transfer " + e.id
}

type vmEvents struct {
	jobs      []event
	transfers []event
}

func (v vmEvents) all() []event {
	return slices.Concat(v.jobs, v.transfers)
}

// Validator is the "resource" validator.
type Validator struct{}

// NewValidator creates the "resource" validator.
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Name() string { return "resource" }

// Validate reports, per VM id in ascending order: events on unknown VMs,
// events outside the VM lifetime, then at most one oversubscription error.
// Every attempt of a job counts, including failed ones.
func (v *Validator) Validate(in *contracts.ValidationInput) contracts.ValidationResult {
	if in == nil || in.Log == nil {
		return contracts.ValidationResult{}
	}

	byVM := groupByVM(in.Log)
	vms := make(map[contracts.VMID]contracts.VM, len(in.Log.VMs()))
	for _, vm := range in.Log.VMs() {
		vms[vm.ID] = vm
	}

	ids := make([]contracts.VMID, 0, len(byVM))
	for id := range byVM {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs []string
	for _, id := range ids {
		events := byVM[id]
		vm, known := vms[id]
		if !known {
			for _, e := range events.all() {
				errs = append(errs, fmt.Sprintf("%s was executed on non-existing VM %s", e.label(), id))
			}
			continue
		}

		for _, e := range events.all() {
			if !withinLifecycle(e, vm) {
				errs = append(errs, fmt.Sprintf("%s was executed out of VM %s lifecycle (%v - %v outside %v - %v)",
					e.label(), id, e.started, e.finished, vm.Started, vm.Finished))
			}
		}

		cores := max(vm.Cores, 1)
		if first, second, over := findOversubscription(events.all(), cores); over {
			errs = append(errs, fmt.Sprintf("VM %s with %d cores was oversubscribed: %s started at %v while %s was still running",
				id, cores, second.label(), second.started, first.label()))
		}
	}
	return contracts.ValidationResult{Errors: errs}
}

func groupByVM(log *contracts.ExecutionLog) map[contracts.VMID]vmEvents {
	byVM := make(map[contracts.VMID]vmEvents)
	for _, t := range log.Tasks() {
		g := byVM[t.VMID]
		g.jobs = append(g.jobs, event{kind: kindJob, id: string(t.ID), started: t.Started, finished: t.Finished})
		byVM[t.VMID] = g
	}
	for _, tr := range log.Transfers() {
		g := byVM[tr.VMID]
		g.transfers = append(g.transfers, event{kind: kindTransfer, id: string(tr.ID), started: tr.Started, finished: tr.Finished})
		byVM[tr.VMID] = g
	}
	return byVM
}

func withinLifecycle(e event, vm contracts.VM) bool {
	return vm.Started <= e.started && e.finished <= vm.Finished
}

type markerType int

// Ends sort before starts so that a slot freed at t can be reused at t.
const (
	markerEnd markerType = iota
	markerStart
)

type marker struct {
	at    contracts.Seconds
	typ   markerType
	index int
}

// findOversubscription sweeps the start and end markers of events sharing
// one VM and returns the first start that found every core busy, together
// with one of the events already running at that instant. Events that end
// no later than they start never occupy a slot. A VM has at least one core.
func findOversubscription(events []event, cores int) (running, starting event, found bool) {
	cores = max(cores, 1)
	markers := make([]marker, 0, 2*len(events))
	for i, e := range events {
		markers = append(markers,
			marker{at: e.started, typ: markerStart, index: i},
			marker{at: e.finished, typ: markerEnd, index: i})
	}
	slices.SortFunc(markers, func(a, b marker) int {
		return cmp.Or(
			cmp.Compare(a.at, b.at),
			cmp.Compare(a.typ, b.typ),
			cmp.Compare(a.index, b.index),
		)
	})

	active := make(map[int]struct{})
	ended := make(map[int]bool, len(events))
	for _, m := range markers {
		if m.typ == markerEnd {
			delete(active, m.index)
			ended[m.index] = true
			continue
		}
		if ended[m.index] {
			continue
		}
		if len(active) >= cores {
			return events[lowest(active)], events[m.index], true
		}
		active[m.index] = struct{}{}
	}
	return event{}, event{}, false
}

func lowest(set map[int]struct{}) int {
	low := -1
	for i := range set {
		if low < 0 || i < low {
			low = i
		}
	}
	return low
}

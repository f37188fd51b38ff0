package ordering

import (
	"fmt"
	"slices"

	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// TransferValidator checks that every file a task needs was downloaded to
// its VM before it started and every file it produces was uploaded from
// its VM after it finished. Tasks missing from the log are skipped.
type TransferValidator struct{}

// NewTransferValidator creates the "transfers" validator.
func NewTransferValidator() *TransferValidator {
	return &TransferValidator{}
}

func (v *TransferValidator) Name() string { return "transfers" }

func (v *TransferValidator) Validate(in *contracts.ValidationInput) contracts.ValidationResult {
	if in == nil || in.Log == nil {
		return contracts.ValidationResult{}
	}

	c := &transferCheck{
		done:      indexCompleted(in.Log),
		transfers: indexTransfers(in.Log),
	}
	for _, d := range sortedDAGs(in.DAGs) {
		for _, node := range d.Tasks {
			run, ok := c.done.lookup(d.Workflow, node.ID)
			if !ok {
				continue
			}
			for _, file := range node.FilesNeeded {
				c.checkDownload(d, node, run, file)
			}
			for _, file := range node.FilesProduced {
				c.checkUpload(d, node, run, file)
			}
		}
	}
	return contracts.ValidationResult{Errors: c.errs}
}

type transferCheck struct {
	done      completedIndex
	transfers map[transferKey][]contracts.Transfer
	errs      []string
}

func (c *transferCheck) report(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

// single returns the only transfer of file for job, reporting a missing or
// ambiguous transfer otherwise.
func (c *transferCheck) single(verb string, wf contracts.WorkflowID, node *contracts.DAGTask, run contracts.Task, file contracts.FileID) (contracts.Transfer, bool) {
	found := c.transfers[transferKey{file: file, job: run.ID}]
	switch len(found) {
	case 0:
		c.report("File %s was never %s for task %s (job %s) in workflow %s", file, verb, node.ID, run.ID, wf)
		return contracts.Transfer{}, false
	case 1:
		return found[0], true
	default:
		c.report("File %s was %s %d times for task %s (job %s) in workflow %s", file, verb, len(found), node.ID, run.ID, wf)
		return contracts.Transfer{}, false
	}
}

func (c *transferCheck) checkDownload(d *contracts.DAG, node *contracts.DAGTask, run contracts.Task, file contracts.FileID) {
	tr, ok := c.single("downloaded", d.Workflow, node, run, file)
	if !ok {
		return
	}
	if tr.Direction != contracts.Download {
		c.report("Transfer %s of input file %s for task %s in workflow %s has direction %s, expected DOWNLOAD",
			tr.ID, file, node.ID, d.Workflow, tr.Direction)
	}
	if tr.VMID != run.VMID {
		c.report("Transfer %s of input file %s for task %s in workflow %s ran on VM %s, task ran on VM %s",
			tr.ID, file, node.ID, d.Workflow, tr.VMID, run.VMID)
	}
	if tr.Finished > run.Started {
		c.report("Transfer %s of input file %s finished (%v) after task %s in workflow %s started (%v)",
			tr.ID, file, tr.Finished, node.ID, d.Workflow, run.Started)
	}

	// The producer's upload must reach global storage before the download begins.
	for _, parent := range node.Before {
		if !slices.Contains(parent.FilesProduced, file) {
			continue
		}
		parentRun, ok := c.done.lookup(d.Workflow, parent.ID)
		if !ok {
			continue
		}
		uploads := c.transfers[transferKey{file: file, job: parentRun.ID}]
		if len(uploads) != 1 || uploads[0].Direction != contracts.Upload {
			continue
		}
		if uploads[0].Finished > tr.Started {
			c.report("Transfer %s of file %s started (%v) before upload %s by task %s finished (%v) in workflow %s",
				tr.ID, file, tr.Started, uploads[0].ID, parent.ID, uploads[0].Finished, d.Workflow)
		}
	}
}

func (c *transferCheck) checkUpload(d *contracts.DAG, node *contracts.DAGTask, run contracts.Task, file contracts.FileID) {
	tr, ok := c.single("uploaded", d.Workflow, node, run, file)
	if !ok {
		return
	}
	if tr.Direction != contracts.Upload {
		c.report("Transfer %s of output file %s for task %s in workflow %s has direction %s, expected UPLOAD",
			tr.ID, file, node.ID, d.Workflow, tr.Direction)
	}
	if tr.VMID != run.VMID {
		c.report("Transfer %s of output file %s for task %s in workflow %s ran on VM %s, task ran on VM %s",
			tr.ID, file, node.ID, d.Workflow, tr.VMID, run.VMID)
	}
	if run.Finished > tr.Started {
		c.report("Transfer %s of output file %s started (%v) before task %s in workflow %s finished (%v)",
			tr.ID, file, tr.Started, node.ID, d.Workflow, run.Finished)
	}
}

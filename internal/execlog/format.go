package execlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write stores log in the intermediate format:
//
//	<deadline> <budget> <model> <billing_time> <first_billing_time>
//	<N_vm>
//	<vm_id> <started> <finished> <cores> <price>
//	<N_workflow>
//	<workflow_id> <priority> [<filename>]
//	<N_task>
//	<job_id> <workflow> <task_id> <vm> <started> <finished> <result>
//	<N_transfer>
//	<transfer_id> <vm> <started> <finished> <direction> <job_id> <file_id>
//
// Storage states are not stored.
func Write(w io.Writer, log *contracts.ExecutionLog) error {
	bw := bufio.NewWriter(w)
	s := log.Settings
	model := s.Pricing.Model
	if model == "" {
		model = contracts.PricingSimple
	}
	fmt.Fprintf(bw, "%s %s %s %s %s\n", formatFloat(s.Deadline), formatFloat(s.Budget), model,
		formatFloat(s.Pricing.BillingTimeInSeconds), formatFloat(s.Pricing.FirstBillingTimeInSeconds))

	fmt.Fprintf(bw, "%d\n", len(log.VMs()))
	for _, vm := range log.VMs() {
		fmt.Fprintf(bw, "%s %s %s %d %s\n", vm.ID, formatFloat(vm.Started), formatFloat(vm.Finished),
			vm.Cores, formatFloat(vm.PriceForBillingUnit))
	}

	fmt.Fprintf(bw, "%d\n", len(log.Workflows()))
	for _, wf := range log.Workflows() {
		if wf.Filename == "" {
			fmt.Fprintf(bw, "%s %d\n", wf.ID, wf.Priority)
			continue
		}
		fmt.Fprintf(bw, "%s %d %s\n", wf.ID, wf.Priority, wf.Filename)
	}

	fmt.Fprintf(bw, "%d\n", len(log.Tasks()))
	for _, t := range log.Tasks() {
		fmt.Fprintf(bw, "%s %s %s %s %s %s %s\n", t.ID, t.WorkflowID, t.TaskID, t.VMID,
			formatFloat(t.Started), formatFloat(t.Finished), t.Result)
	}

	fmt.Fprintf(bw, "%d\n", len(log.Transfers()))
	for _, tr := range log.Transfers() {
		fmt.Fprintf(bw, "%s %s %s %s %s %s %s\n", tr.ID, tr.VMID, formatFloat(tr.Started),
			formatFloat(tr.Finished), tr.Direction, tr.JobID, tr.FileID)
	}

	return errors.Wrap(bw.Flush(), "writing execution log")
}

// WriteFile stores log at path.
func WriteFile(path string, log *contracts.ExecutionLog) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := Write(f, log); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

// ReadOptions supply defaults for the legacy layout.
type ReadOptions struct {
	// DefaultPrice prices VMs written without a price when the header does
	// not carry one either.
	DefaultPrice float64
}

// lineReader yields whitespace-split lines and tracks the line number.
type lineReader struct {
	scanner *bufio.Scanner
	lineNo  int
}

func (r *lineReader) next(what string) ([]string, error) {
	for r.scanner.Scan() {
		r.lineNo++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading execution log")
	}
	return nil, r.errorf("unexpected end of input, expected %s", what)
}

func (r *lineReader) errorf(format string, args ...any) error {
	return errors.Wrapf(contracts.ErrFormat, "line %d: %s", r.lineNo, fmt.Sprintf(format, args...))
}

func (r *lineReader) count(section string) (int, error) {
	rec, err := r.next(section + " count")
	if err != nil {
		return 0, err
	}
	if len(rec) != 1 {
		return 0, r.errorf("expected %s count, got %q", section, strings.Join(rec, " "))
	}
	n, err := strconv.Atoi(rec[0])
	if err != nil || n < 0 {
		return 0, r.errorf("invalid %s count %q", section, rec[0])
	}
	return n, nil
}

func (r *lineReader) float(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.errorf("invalid %s %q", field, s)
	}
	return v, nil
}

// Read parses the intermediate format. The legacy header
// "<deadline> <budget> <vm_cost_per_hour>" is read as hourly simple pricing
// with that price as the VM default, and legacy VM lines
// "<id> <started> <finished>" get one core.
func Read(in io.Reader, opts ReadOptions) (*contracts.ExecutionLog, error) {
	r := &lineReader{scanner: bufio.NewScanner(in)}
	r.scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	settings, defaultPrice, err := r.header(opts.DefaultPrice)
	if err != nil {
		return nil, err
	}
	b := contracts.NewLogBuilder(settings)

	n, err := r.count("VM")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		vm, err := r.vm(defaultPrice)
		if err != nil {
			return nil, err
		}
		b.AddVM(vm)
	}

	if n, err = r.count("workflow"); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		rec, err := r.next("workflow")
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			return nil, r.errorf("workflow line needs at least 2 fields, got %d", len(rec))
		}
		priority, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, r.errorf("invalid workflow priority %q", rec[1])
		}
		b.AddWorkflow(contracts.Workflow{
			ID:       contracts.WorkflowID(rec[0]),
			Priority: priority,
			Filename: strings.Join(rec[2:], " "),
		})
	}

	if n, err = r.count("task"); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		t, err := r.task()
		if err != nil {
			return nil, err
		}
		b.AddTask(t)
	}

	if n, err = r.count("transfer"); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		tr, err := r.transfer()
		if err != nil {
			return nil, err
		}
		b.AddTransfer(tr)
	}

	if rec, err := r.next("end of input"); err == nil {
		return nil, r.errorf("trailing data %q", strings.Join(rec, " "))
	}
	return b.Build(), nil
}

// ReadFile parses the execution log stored at path.
func ReadFile(path string, opts ReadOptions) (*contracts.ExecutionLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	log, err := Read(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return log, nil
}

func (r *lineReader) header(defaultPrice float64) (contracts.Settings, float64, error) {
	rec, err := r.next("header")
	if err != nil {
		return contracts.Settings{}, 0, err
	}
	if len(rec) != 3 && len(rec) != 5 {
		return contracts.Settings{}, 0, r.errorf("header needs 3 or 5 fields, got %d", len(rec))
	}

	var s contracts.Settings
	if s.Deadline, err = r.float("deadline", rec[0]); err != nil {
		return contracts.Settings{}, 0, err
	}
	if s.Budget, err = r.float("budget", rec[1]); err != nil {
		return contracts.Settings{}, 0, err
	}

	if len(rec) == 3 {
		price, err := r.float("VM cost per hour", rec[2])
		if err != nil {
			return contracts.Settings{}, 0, err
		}
		s.Pricing = contracts.PricingParams{Model: contracts.PricingSimple, BillingTimeInSeconds: 3600}
		return s, price, nil
	}

	s.Pricing.Model = contracts.PricingModelKind(rec[2])
	if s.Pricing.BillingTimeInSeconds, err = r.float("billing time", rec[3]); err != nil {
		return contracts.Settings{}, 0, err
	}
	if s.Pricing.FirstBillingTimeInSeconds, err = r.float("first billing time", rec[4]); err != nil {
		return contracts.Settings{}, 0, err
	}
	return s, defaultPrice, nil
}

func (r *lineReader) vm(defaultPrice float64) (contracts.VM, error) {
	rec, err := r.next("VM")
	if err != nil {
		return contracts.VM{}, err
	}
	if len(rec) != 3 && len(rec) != 5 {
		return contracts.VM{}, r.errorf("VM line needs 3 or 5 fields, got %d", len(rec))
	}
	vm := contracts.VM{ID: contracts.VMID(rec[0]), Cores: DefaultCores, PriceForBillingUnit: defaultPrice}
	if vm.Started, err = r.float("VM start", rec[1]); err != nil {
		return contracts.VM{}, err
	}
	if vm.Finished, err = r.float("VM termination", rec[2]); err != nil {
		return contracts.VM{}, err
	}
	if len(rec) == 5 {
		if vm.Cores, err = strconv.Atoi(rec[3]); err != nil || vm.Cores <= 0 {
			return contracts.VM{}, r.errorf("invalid VM cores %q", rec[3])
		}
		if vm.PriceForBillingUnit, err = r.float("VM price", rec[4]); err != nil {
			return contracts.VM{}, err
		}
	}
	return vm, nil
}

func (r *lineReader) task() (contracts.Task, error) {
	rec, err := r.next("task")
	if err != nil {
		return contracts.Task{}, err
	}
	if len(rec) != 7 {
		return contracts.Task{}, r.errorf("task line needs 7 fields, got %d", len(rec))
	}
	t := contracts.Task{
		ID:         contracts.JobID(rec[0]),
		WorkflowID: contracts.WorkflowID(rec[1]),
		TaskID:     contracts.TaskID(rec[2]),
		VMID:       contracts.VMID(rec[3]),
	}
	if t.Started, err = r.float("task start", rec[4]); err != nil {
		return contracts.Task{}, err
	}
	if t.Finished, err = r.float("task finish", rec[5]); err != nil {
		return contracts.Task{}, err
	}
	if t.Result, err = contracts.ParseResult(rec[6]); err != nil {
		return contracts.Task{}, errors.Wrapf(err, "line %d", r.lineNo)
	}
	return t, nil
}

func (r *lineReader) transfer() (contracts.Transfer, error) {
	rec, err := r.next("transfer")
	if err != nil {
		return contracts.Transfer{}, err
	}
	if len(rec) != 7 {
		return contracts.Transfer{}, r.errorf("transfer line needs 7 fields, got %d", len(rec))
	}
	tr := contracts.Transfer{
		ID:     contracts.TransferID(rec[0]),
		VMID:   contracts.VMID(rec[1]),
		JobID:  contracts.JobID(rec[5]),
		FileID: contracts.FileID(rec[6]),
	}
	if tr.Started, err = r.float("transfer start", rec[2]); err != nil {
		return contracts.Transfer{}, err
	}
	if tr.Finished, err = r.float("transfer finish", rec[3]); err != nil {
		return contracts.Transfer{}, err
	}
	if tr.Direction, err = contracts.ParseDirection(rec[4]); err != nil {
		return contracts.Transfer{}, errors.Wrapf(err, "line %d", r.lineNo)
	}
	return tr, nil
}

package contracts

// Task is one fully resolved job execution.
type Task struct {
	ID         JobID
	WorkflowID WorkflowID
	TaskID     TaskID
	VMID       VMID
	Started    Seconds
	Finished   Seconds
	Result     Result
}

// Transfer is one fully resolved global storage transfer.
type Transfer struct {
	ID        TransferID
	VMID      VMID
	Started   Seconds
	Finished  Seconds
	Direction Direction
	JobID     JobID
	FileID    FileID
}

// VM is a provisioned machine with its lifetime and capacity.
type VM struct {
	ID                  VMID
	Started             Seconds
	Finished            Seconds
	Cores               int
	PriceForBillingUnit float64
}

// Runtime returns how long the VM was provisioned.
func (vm VM) Runtime() Seconds {
	return vm.Finished - vm.Started
}

// Workflow is a workflow instance submitted to the simulator.
type Workflow struct {
	ID       WorkflowID
	Priority int
	Filename string
}

// PricingParams selects and parametrizes the VM pricing model.
type PricingParams struct {
	Model                     PricingModelKind
	BillingTimeInSeconds      Seconds
	FirstBillingTimeInSeconds Seconds
}

// Settings holds the experiment constraints.
type Settings struct {
	Deadline Seconds
	Budget   float64
	Pricing  PricingParams
}

// StorageState is a snapshot of the global storage load.
type StorageState struct {
	Time       Seconds
	Readers    int
	Writers    int
	ReadSpeed  float64
	WriteSpeed float64
}

// ExecutionLog is the reconstructed record of one experiment. It is built
// once and read-only afterwards: slices returned by its accessors must not
// be modified.
type ExecutionLog struct {
	Settings Settings

	vms           []VM
	workflows     []Workflow
	tasks         []Task
	transfers     []Transfer
	storageStates []StorageState
}

// LogBuilder accumulates records per kind, keeping insertion order within a kind.
type LogBuilder struct {
	log ExecutionLog
}

// NewLogBuilder creates a builder for an execution log with the given settings.
func NewLogBuilder(settings Settings) *LogBuilder {
	return &LogBuilder{log: ExecutionLog{Settings: settings}}
}

func (b *LogBuilder) AddVM(vm VM) *LogBuilder {
	b.log.vms = append(b.log.vms, vm)
	return b
}

func (b *LogBuilder) AddWorkflow(w Workflow) *LogBuilder {
	b.log.workflows = append(b.log.workflows, w)
	return b
}

func (b *LogBuilder) AddTask(t Task) *LogBuilder {
	b.log.tasks = append(b.log.tasks, t)
	return b
}

func (b *LogBuilder) AddTransfer(t Transfer) *LogBuilder {
	b.log.transfers = append(b.log.transfers, t)
	return b
}

func (b *LogBuilder) AddStorageState(s StorageState) *LogBuilder {
	b.log.storageStates = append(b.log.storageStates, s)
	return b
}

// Build returns the execution log. The builder must not be used afterwards.
func (b *LogBuilder) Build() *ExecutionLog {
	log := b.log
	return &log
}

func (l *ExecutionLog) VMs() []VM                     { return l.vms }
func (l *ExecutionLog) Workflows() []Workflow         { return l.workflows }
func (l *ExecutionLog) Tasks() []Task                 { return l.tasks }
func (l *ExecutionLog) Transfers() []Transfer         { return l.transfers }
func (l *ExecutionLog) StorageStates() []StorageState { return l.storageStates }

// CompletedTasks returns the jobs that finished successfully.
func (l *ExecutionLog) CompletedTasks() []Task {
	var completed []Task
	for _, t := range l.tasks {
		if t.Result.Succeeded() {
			completed = append(completed, t)
		}
	}
	return completed
}

// ValidationInput is everything a validator may read.
type ValidationInput struct {
	Log  *ExecutionLog
	DAGs map[WorkflowID]*DAG
}

// ValidationResult is the outcome of one or more validators.
type ValidationResult struct {
	Errors []string
}

// IsValid reports whether no error was found.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Merge appends the errors of other after the errors of r.
func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	errs := make([]string, 0, len(r.Errors)+len(other.Errors))
	errs = append(errs, r.Errors...)
	errs = append(errs, other.Errors...)
	return ValidationResult{Errors: errs}
}

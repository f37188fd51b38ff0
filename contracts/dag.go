package contracts

// DAG is the task graph of one workflow. It owns its nodes; After and
// Before are non-owning edge references.
type DAG struct {
	Workflow WorkflowID
	Tasks    []*DAGTask
	Files    []DAGFile

	index map[TaskID]*DAGTask
}

// DAGTask is a node of the workflow graph.
type DAGTask struct {
	ID            TaskID
	Makespan      Seconds
	Type          string
	After         []*DAGTask // successors
	Before        []*DAGTask // predecessors
	FilesNeeded   []FileID
	FilesProduced []FileID
}

// DAGFile is a file declared by the workflow.
type DAGFile struct {
	Name FileID
	Size int64
}

// NewDAG wraps already linked tasks and files. Tasks keep their order.
func NewDAG(workflow WorkflowID, tasks []*DAGTask, files []DAGFile) *DAG {
	index := make(map[TaskID]*DAGTask, len(tasks))
	for _, t := range tasks {
		index[t.ID] = t
	}
	return &DAG{
		Workflow: workflow,
		Tasks:    tasks,
		Files:    files,
		index:    index,
	}
}

// Task looks up a node by ID.
func (d *DAG) Task(id TaskID) (*DAGTask, bool) {
	t, ok := d.index[id]
	return t, ok
}

// WithWorkflow returns a shallow copy of the DAG bound to another workflow
// instance. Nodes are shared, so the copy is read-only too.
func (d *DAG) WithWorkflow(id WorkflowID) *DAG {
	c := *d
	c.Workflow = id
	return &c
}

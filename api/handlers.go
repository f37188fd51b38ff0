package api

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/internal/audit"
	"github.com/malawski/cloudworkflowsimulator/internal/dag"
	"github.com/malawski/cloudworkflowsimulator/internal/execlog"
	"github.com/malawski/cloudworkflowsimulator/internal/orchestration"
	"github.com/malawski/cloudworkflowsimulator/logger"
)

// maxRequestBodySize limits the size of incoming request bodies (32MB).
const maxRequestBodySize = 32 * 1024 * 1024

// Options configures validation requests.
type Options struct {
	Factory orchestration.FactoryOptions

	// DefaultPrice prices VMs of legacy logs that carry no price.
	DefaultPrice float64

	// Retention controls how long reports are kept in memory.
	Retention time.Duration
}

// Handlers contains the HTTP handler methods for the API.
type Handlers struct {
	store *ReportStore
	opts  Options
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *ReportStore, opts Options) *Handlers {
	return &Handlers{
		store: store,
		opts:  opts,
	}
}

// HandleCreateValidation handles POST /api/v1/validations.
func (h *Handlers) HandleCreateValidation(w http.ResponseWriter, r *http.Request) {
	// Parse request body with size limit to prevent memory exhaustion
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize+1))
	if err != nil {
		WriteError(w, errors.Wrap(contracts.ErrInvalidInput, "failed to read request body"))
		return
	}
	if len(body) > maxRequestBodySize {
		WriteError(w, errors.Wrapf(contracts.ErrInvalidInput, "request body too large (max %d bytes)", maxRequestBodySize))
		return
	}

	var req CreateValidationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, errors.Wrap(contracts.ErrInvalidInput, "invalid JSON"))
		return
	}
	if strings.TrimSpace(req.Log) == "" {
		WriteError(w, errors.Wrap(contracts.ErrInvalidInput, "log is required"))
		return
	}

	// Resolve validators first so a typo fails before parsing a large log
	validators, err := orchestration.NewValidators(req.Validators, h.opts.Factory)
	if err != nil {
		WriteError(w, err)
		return
	}
	orch := orchestration.NewOrchestrator(validators, orchestration.NewParallelExecutor(h.opts.Factory.MaxParallelism))

	in, err := h.buildInput(&req, orchestration.NeedsDAGs(validators))
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := orch.Run(r.Context(), in)
	if err != nil {
		WriteError(w, err)
		return
	}

	report := h.store.Add(result)
	if removed := h.store.Prune(h.opts.Retention); removed > 0 {
		logger.Logger.Debugw("pruned expired reports", "removed", removed)
	}
	audit.Log("validation stored", "id", report.ID.String(), "errors", len(result.Errors))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/api/v1/validations/"+report.ID.String())
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, ReportToResponse(report))
}

// HandleGetValidation handles GET /api/v1/validations/{id}.
func (h *Handlers) HandleGetValidation(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteError(w, errors.Wrapf(contracts.ErrReportNotFound, "report %s", raw))
		return
	}

	report, err := h.store.Get(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ReportToResponse(report))
}

// HandleListValidators handles GET /api/v1/validators.
func (h *Handlers) HandleListValidators(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ValidatorsResponse{Validators: orchestration.DefaultValidatorNames})
}

func (h *Handlers) buildInput(req *CreateValidationRequest, needDAGs bool) (*contracts.ValidationInput, error) {
	log, err := execlog.Read(strings.NewReader(req.Log), execlog.ReadOptions{DefaultPrice: h.opts.DefaultPrice})
	if err != nil {
		return nil, err
	}

	dags := make(map[contracts.WorkflowID]*contracts.DAG, len(req.DAGs))
	for id, text := range req.dagInputs() {
		d, err := dag.Parse(strings.NewReader(text), id)
		if err != nil {
			return nil, errors.Wrapf(err, "DAG of workflow %s", id)
		}
		dags[id] = d
	}

	if needDAGs {
		if missing := missingDAGs(log, dags); len(missing) > 0 {
			return nil, errors.Wrapf(contracts.ErrInvalidInput, "no DAG for workflows %s", strings.Join(missing, ", "))
		}
	}

	return &contracts.ValidationInput{Log: log, DAGs: dags}, nil
}

// missingDAGs lists the workflows referenced by the log that have no DAG,
// sorted and without duplicates.
func missingDAGs(log *contracts.ExecutionLog, dags map[contracts.WorkflowID]*contracts.DAG) []string {
	var missing []string
	add := func(id contracts.WorkflowID) {
		if _, ok := dags[id]; !ok {
			missing = append(missing, string(id))
		}
	}
	for _, w := range log.Workflows() {
		add(w.ID)
	}
	for _, t := range log.Tasks() {
		add(t.WorkflowID)
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Logger.Warnw("failed to write response", "error", err)
	}
}

// timeNowFunc is a variable for testing time-dependent code.
var timeNowFunc = time.Now

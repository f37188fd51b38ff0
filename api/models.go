// Package api provides the HTTP API for validating execution logs.
package api

import (
	"github.com/malawski/cloudworkflowsimulator/contracts"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateValidationRequest is the request body for POST /api/v1/validations.
type CreateValidationRequest struct {
	// Log is an execution log in the intermediate format.
	Log string `json:"log"`
	// DAGs maps workflow ids to DAG text.
	DAGs       map[string]string `json:"dags,omitempty"`
	Validators []string          `json:"validators,omitempty"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ValidationResponse is the response body for validation endpoints.
type ValidationResponse struct {
	ID        string   `json:"id"`
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors"`
	CreatedAt int64    `json:"created_at"`
}

// ValidatorsResponse lists the validators the service knows.
type ValidatorsResponse struct {
	Validators []string `json:"validators"`
}

// ErrorDTO represents an error in the response.
type ErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReportToResponse converts a stored report to its wire form.
func ReportToResponse(r Report) ValidationResponse {
	errs := r.Result.Errors
	if errs == nil {
		errs = []string{}
	}
	return ValidationResponse{
		ID:        r.ID.String(),
		Valid:     r.Result.IsValid(),
		Errors:    errs,
		CreatedAt: r.CreatedAt.Unix(),
	}
}

func (req *CreateValidationRequest) dagInputs() map[contracts.WorkflowID]string {
	out := make(map[contracts.WorkflowID]string, len(req.DAGs))
	for id, text := range req.DAGs {
		out[contracts.WorkflowID(id)] = text
	}
	return out
}

package contracts

import (
	"strings"

	"github.com/malawski/cloudworkflowsimulator/errors"
)

// Result is the outcome of a job.
type Result int

const (
	ResultUnknown Result = iota
	ResultOK
	ResultRetryOK
	ResultFailed
	ResultRetryFailed
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultRetryOK:
		return "RETRY_OK"
	case ResultFailed:
		return "FAILED"
	case ResultRetryFailed:
		return "RETRY_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Succeeded reports whether the job produced its outputs.
func (r Result) Succeeded() bool {
	return r == ResultOK || r == ResultRetryOK
}

// ParseResult parses the textual form produced by Result.String.
func ParseResult(s string) (Result, error) {
	switch strings.ToUpper(s) {
	case "OK":
		return ResultOK, nil
	case "RETRY_OK":
		return ResultRetryOK, nil
	case "FAILED":
		return ResultFailed, nil
	case "RETRY_FAILED":
		return ResultRetryFailed, nil
	default:
		return ResultUnknown, errors.Wrapf(ErrFormat, "unknown job result %q", s)
	}
}

// Direction tells whether a transfer moves a file to or from global storage.
type Direction int

const (
	DirectionUnknown Direction = iota
	Upload
	Download
)

func (d Direction) String() string {
	switch d {
	case Upload:
		return "UPLOAD"
	case Download:
		return "DOWNLOAD"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses UPLOAD or DOWNLOAD.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(s) {
	case "UPLOAD":
		return Upload, nil
	case "DOWNLOAD":
		return Download, nil
	default:
		return DirectionUnknown, errors.Wrapf(ErrFormat, "unknown transfer direction %q", s)
	}
}

// PricingModelKind selects how VM runtime is billed.
type PricingModelKind string

const (
	// PricingSimple bills every started billing unit.
	PricingSimple PricingModelKind = "simple"
	// PricingGoogle bills a minimum first period, then per billing unit.
	PricingGoogle PricingModelKind = "google"
)

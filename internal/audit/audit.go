// Package audit records what the validation engine did, one structured
// entry per step, on the global logger.
package audit

import (
	"time"

	"github.com/malawski/cloudworkflowsimulator/logger"
)

// ValidatorRun logs the outcome of one validator.
func ValidatorRun(name string, errors int, took time.Duration) {
	logger.Logger.Infow("validator finished",
		"audit", true,
		"validator", name,
		"errors", errors,
		"duration", took)
}

// Log writes a free-form audit entry with key/value pairs.
func Log(msg string, keysAndValues ...any) {
	logger.Logger.Infow(msg, append([]any{"audit", true}, keysAndValues...)...)
}

package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

func names(vs []contracts.Validator) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}
	return out
}

func TestNewValidators(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty means all", nil, DefaultValidatorNames},
		{"all", []string{"all"}, DefaultValidatorNames},
		{"subset keeps requested order", []string{"cost", "order"}, []string{"cost", "order"}},
		{"case and spaces are ignored", []string{" Resource "}, []string{"resource"}},
		{"duplicates run once", []string{"timing", "all"}, []string{"timing", "order", "transfers", "resource", "cost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := NewValidators(tt.input, FactoryOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(vs))
		})
	}
}

func TestNewValidators_Unknown(t *testing.T) {
	_, err := NewValidators([]string{"order", "vibes"}, FactoryOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrUnknownValidator))
	assert.Contains(t, err.Error(), "vibes")
}

func TestNewOrchestratorWithOptions_Unknown(t *testing.T) {
	o, err := NewOrchestratorWithOptions([]string{"nope"}, FactoryOptions{})
	assert.Nil(t, o)
	assert.True(t, errors.Is(err, contracts.ErrUnknownValidator))
}

func TestNewOrchestratorWithDefaults(t *testing.T) {
	assert.NotNil(t, NewOrchestratorWithDefaults())
}

func TestNeedsDAGs(t *testing.T) {
	tests := []struct {
		names []string
		want  bool
	}{
		{[]string{"all"}, true},
		{[]string{"order"}, true},
		{[]string{"cost", "transfers"}, true},
		{[]string{"cost", "resource", "timing"}, false},
	}

	for _, tt := range tests {
		vs, err := NewValidators(tt.names, FactoryOptions{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, NeedsDAGs(vs), "%v", tt.names)
	}
	assert.False(t, NeedsDAGs(nil))
}

package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/errors"
)

func TestResult_RoundTrip(t *testing.T) {
	for _, r := range []Result{ResultOK, ResultRetryOK, ResultFailed, ResultRetryFailed} {
		got, err := ParseResult(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseResult("retry_ok")
	require.NoError(t, err)
	assert.Equal(t, ResultRetryOK, got)
}

func TestResult_Succeeded(t *testing.T) {
	assert.True(t, ResultOK.Succeeded())
	assert.True(t, ResultRetryOK.Succeeded())
	assert.False(t, ResultFailed.Succeeded())
	assert.False(t, ResultRetryFailed.Succeeded())
	assert.False(t, ResultUnknown.Succeeded())
}

func TestParseResult_Unknown(t *testing.T) {
	_, err := ParseResult("MAYBE")
	assert.True(t, errors.Is(err, ErrFormat))
	assert.Equal(t, "UNKNOWN", ResultUnknown.String())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("upload")
	require.NoError(t, err)
	assert.Equal(t, Upload, d)

	d, err = ParseDirection(Download.String())
	require.NoError(t, err)
	assert.Equal(t, Download, d)

	_, err = ParseDirection("SIDEWAYS")
	assert.True(t, errors.Is(err, ErrFormat))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

func TestLoader_LoadFromBytes_Google(t *testing.T) {
	data := []byte(`
model: google
billingTimeInSeconds: 60
firstBillingTimeInSeconds: 600
priceForBillingUnit: 0.02
`)

	cfg, err := NewLoader().LoadFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, contracts.PricingParams{
		Model:                     contracts.PricingGoogle,
		BillingTimeInSeconds:      60,
		FirstBillingTimeInSeconds: 600,
	}, cfg.Params())
	assert.Equal(t, 0.02, cfg.DefaultPrice)
}

func TestLoader_LoadFromBytes_KeepsDefaults(t *testing.T) {
	cfg, err := NewLoader().LoadFromBytes([]byte("priceForBillingUnit: 1.5\n"))
	require.NoError(t, err)

	assert.Equal(t, "simple", cfg.Model)
	assert.Equal(t, 3600.0, cfg.BillingTimeInSeconds)
	assert.Equal(t, 1.5, cfg.DefaultPrice)
}

func TestLoader_LoadFromBytes_EmptyData(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte{})
	assert.True(t, errors.Is(err, ErrConfigEmpty))
}

func TestLoader_LoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("model: [simple"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestLoader_LoadFromBytes_Invalid(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("model: google\nbillingTimeInSeconds: 60\n"))
	assert.True(t, errors.Is(err, ErrFirstBillingTime))
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: simple\nbillingTimeInSeconds: 60\n"), 0o600))

	cfg, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.BillingTimeInSeconds)
}

func TestLoader_LoadFromFile_Missing(t *testing.T) {
	_, err := NewLoader().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadPricing_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadPricing("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPricing(), *cfg)
}

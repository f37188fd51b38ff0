package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/malawski/cloudworkflowsimulator/errors"
)

// EnvPrefix prefixes environment variables read by the CLI.
const EnvPrefix = "CWS"

// CLIConfig holds the cwsvalidate settings. Flags, CWS_* environment
// variables and an optional cwsvalidate.yaml (or .toml) are merged by viper.
type CLIConfig struct {
	Validators  []string  `mapstructure:"validators"`
	Parallelism int       `mapstructure:"parallelism"`
	Pricing     string    `mapstructure:"pricing"`
	DAGDir      string    `mapstructure:"dag-dir"`
	Log         LogConfig `mapstructure:"log"`
}

// LogConfig selects the log encoding and level.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// SetDefaults configures default values for all CLI options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("validators", []string{"all"})
	v.SetDefault("parallelism", 4)
	v.SetDefault("pricing", "")
	v.SetDefault("dag-dir", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// NewViper returns a viper instance wired to the CWS_ environment and to
// configFile. With an empty configFile, cwsvalidate.{yaml,toml} in the
// working directory is read when present.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
		return v, nil
	}

	v.SetConfigName("cwsvalidate")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}
	return v, nil
}

// LoadCLI unmarshals the merged CLI settings.
func LoadCLI(v *viper.Viper) (*CLIConfig, error) {
	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	return &cfg, nil
}

package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

// SimConfig is the YAML-configurable surface of a simulation run, loaded
// the way the reference repo's LoadConfig loads NovaSqlConfig: a
// mapstructure-tagged struct unmarshalled through viper, with CLI flags
// taking precedence over whatever the file sets (see cmd/vmemsim/main.go).
type SimConfig struct {
	Simulation struct {
		NumRounds int    `mapstructure:"num_rounds"`
		Algorithm string `mapstructure:"algorithm"`
		K         int    `mapstructure:"k_param"`
	} `mapstructure:"simulation"`
	Workload struct {
		TraceDir   string  `mapstructure:"trace_dir"`
		Locality   float64 `mapstructure:"locality"`
		Sequential bool    `mapstructure:"sequential"`
	} `mapstructure:"workload"`
	Debug bool `mapstructure:"debug"`
}

// LoadConfig reads a YAML simulation config file at path.
func LoadConfig(path string) (*SimConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg SimConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns the baseline config used when no -config flag is
// given, matching the original simulator's implicit defaults (uniform
// random workload, no k param).
func DefaultConfig() *SimConfig {
	cfg := &SimConfig{}
	cfg.Simulation.NumRounds = 100
	cfg.Simulation.Algorithm = "NRU"
	cfg.Workload.TraceDir = "."
	cfg.Workload.Locality = 0
	return cfg
}

package config

import (
	"fmt"
	"os"

	"github.com/katalvlaran/dfgraph/em"
	"gopkg.in/yaml.v3"
)

// EMConfig mirrors em.Config in YAML-friendly field names. Load keeps
// the values as parsed; ToEMConfig replaces zero MaxIterations/Tolerance
// (and zero Workers when Parallel is set) with the package defaults
// rather than rejecting unset fields.
type EMConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	Parallel      bool    `yaml:"parallel"`
	Workers       int     `yaml:"workers"`
}

// Default EM-loop settings, used to fill in zero fields after Load.
const (
	DefaultMaxIterations = 50
	DefaultTolerance     = 1e-6
	DefaultWorkers       = 4
)

// ToEMConfig converts c to an em.Config, applying defaults for unset
// (zero-valued) fields.
func (c EMConfig) ToEMConfig() em.Config {
	maxIter := c.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	workers := c.Workers
	if c.Parallel && workers <= 0 {
		workers = DefaultWorkers
	}
	return em.Config{
		MaxIterations: maxIter,
		Tolerance:     tol,
		Parallel:      c.Parallel,
		Workers:       workers,
	}
}

// Load reads and parses an EMConfig from a YAML file at path.
func Load(path string) (EMConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EMConfig{}, fmt.Errorf("config.Load: %w", err)
	}

	var cfg EMConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EMConfig{}, fmt.Errorf("config.Load: %s: %w", path, err)
	}
	return cfg, nil
}

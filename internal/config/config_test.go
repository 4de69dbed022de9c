package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/dfgraph/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "em.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parallel: true\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Parallel)

	emCfg := cfg.ToEMConfig()
	require.Equal(t, config.DefaultMaxIterations, emCfg.MaxIterations)
	require.InDelta(t, config.DefaultTolerance, emCfg.Tolerance, 1e-12)
	require.Equal(t, config.DefaultWorkers, emCfg.Workers)
}

func TestLoad_ExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "em.yaml")
	content := "max_iterations: 10\ntolerance: 0.001\nparallel: true\nworkers: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	emCfg := cfg.ToEMConfig()
	require.Equal(t, 10, emCfg.MaxIterations)
	require.InDelta(t, 0.001, emCfg.Tolerance, 1e-12)
	require.Equal(t, 8, emCfg.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

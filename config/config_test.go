package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "python", cfg.ProbLog.Python)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, filepath.Join(cfg.WorkDir, "born.db"), cfg.Store)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvPython, "")
	t.Setenv(EnvDirectory, "")
	t.Setenv(EnvWorkDir, "")

	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "born.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "born.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
problog:
  directory: /opt/problog
concurrency: 4
skip_unsupported: true
log_level: debug
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/opt/problog", cfg.ProbLog.Directory)
		assert.Equal(t, "python", cfg.ProbLog.Python)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.True(t, cfg.SkipUnsupported)
		assert.False(t, cfg.FilterEL)
		assert.Equal(t, Default().WorkDir, cfg.WorkDir)

		l, err := cfg.Level()
		require.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, l)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvPython, "python3")
		t.Setenv(EnvDirectory, "/usr/local/problog")
		t.Setenv(EnvWorkDir, "/tmp/born")

		cfg, err := Load(filepath.Join(t.TempDir(), "born.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "python3", cfg.ProbLog.Python)
		assert.Equal(t, "/usr/local/problog", cfg.ProbLog.Directory)
		assert.Equal(t, "/tmp/born", cfg.WorkDir)
		assert.Equal(t, filepath.Join("/tmp/born", "born.db"), cfg.Store)
	})

	t.Run("work directory moves default paths", func(t *testing.T) {
		work := t.TempDir()
		t.Setenv(EnvWorkDir, work)

		cfg, err := Load(filepath.Join(t.TempDir(), "born.yaml"))
		require.NoError(t, err)
		assert.Equal(t, work, cfg.WorkDir)
		assert.Equal(t, filepath.Join(work, "born.db"), cfg.Store)
		assert.Equal(t, filepath.Join(work, "problog"), cfg.ProbLog.Directory)
	})

	t.Run("work directory keeps explicit paths", func(t *testing.T) {
		t.Setenv(EnvWorkDir, "/tmp/born")
		path := filepath.Join(t.TempDir(), "born.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
problog:
  directory: /opt/problog
store: /var/lib/born/runs.db
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/born", cfg.WorkDir)
		assert.Equal(t, "/var/lib/born/runs.db", cfg.Store)
		assert.Equal(t, "/opt/problog", cfg.ProbLog.Directory)
	})

	t.Run("work directory in the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "born.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workdir: /srv/born\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/srv/born", "born.db"), cfg.Store)
		assert.Equal(t, filepath.Join("/srv/born", "problog"), cfg.ProbLog.Directory)
	})

	invalid := []struct {
		title string
		data  string
	}{
		{title: "syntax", data: "problog: [\n"},
		{title: "concurrency", data: "concurrency: 0\n"},
		{title: "log level", data: "log_level: loud\n"},
		{title: "workdir", data: "workdir: ''\n"},
	}
	for _, tt := range invalid {
		t.Run(tt.title, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "born.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_Save(t *testing.T) {
	t.Setenv(EnvPython, "")
	t.Setenv(EnvDirectory, "")
	t.Setenv(EnvWorkDir, "")

	path := filepath.Join(t.TempDir(), "nested", "born.yaml")
	cfg := Default()
	cfg.Concurrency = 3
	cfg.FilterEL = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

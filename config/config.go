// Package config holds the settings of the born tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the born tool.
type Config struct {
	ProbLog ProbLogConfig `yaml:"problog"`

	// WorkDir holds the input and output files of the engine.
	WorkDir string `yaml:"workdir"`

	// Store is the path of the run history database.
	Store string `yaml:"store"`

	// Concurrency is the number of examples an experiment processes at once.
	Concurrency int `yaml:"concurrency"`

	SkipUnsupported bool   `yaml:"skip_unsupported"`
	FilterEL        bool   `yaml:"filter_el"`
	LogLevel        string `yaml:"log_level"`
}

// ProbLogConfig locates the ProbLog installation.
type ProbLogConfig struct {
	Python    string `yaml:"python"`
	Directory string `yaml:"directory"`
}

// Environment variables which override the configuration file.
const (
	EnvPython    = "BORN_PYTHON"
	EnvDirectory = "BORN_PROBLOG_DIRECTORY"
	EnvWorkDir   = "BORN_WORKDIR"
)

// DefaultWorkDir is the working directory under the home directory.
const DefaultWorkDir = ".born"

// Default returns the default configuration.
func Default() *Config {
	work := DefaultWorkDir
	if home, err := os.UserHomeDir(); err == nil {
		work = filepath.Join(home, DefaultWorkDir)
	}
	return &Config{
		ProbLog: ProbLogConfig{
			Python:    "python",
			Directory: problogDirectory(work),
		},
		WorkDir:     work,
		Store:       storePath(work),
		Concurrency: 1,
		LogLevel:    "info",
	}
}

func problogDirectory(work string) string {
	return filepath.Join(work, "problog")
}

func storePath(work string) string {
	return filepath.Join(work, "born.db")
}

// Load reads the configuration at path on top of the defaults.
// A missing file means the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.applyEnvOverrides()
			cfg.followWorkDir()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.followWorkDir()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvPython); v != "" {
		c.ProbLog.Python = v
	}
	if v := os.Getenv(EnvDirectory); v != "" {
		c.ProbLog.Directory = v
	}
	if v := os.Getenv(EnvWorkDir); v != "" {
		c.WorkDir = v
	}
}

// followWorkDir moves the paths which still have their default values under a
// working directory which was moved by the file or the environment.
func (c *Config) followWorkDir() {
	def := Default()
	if c.WorkDir == def.WorkDir {
		return
	}
	if c.Store == def.Store {
		c.Store = storePath(c.WorkDir)
	}
	if c.ProbLog.Directory == def.ProbLog.Directory {
		c.ProbLog.Directory = problogDirectory(c.WorkDir)
	}
}

// Validate checks the values which have no sensible fallback.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.WorkDir == "" {
		return errors.New("workdir must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level.
func (c *Config) Level() (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return l, fmt.Errorf("invalid log_level: %w", err)
	}
	return l, nil
}

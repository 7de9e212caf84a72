// Package problog runs logic programs with probabilistic facts through a ProbLog engine.
package problog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Defaults of CLIEngine.
const (
	DefaultPython = "python"
	CLIScript     = "problog-cli.py"
	OutputOption  = "-o"
)

// Engine evaluates the program in inputFile and writes the results into outputFile.
type Engine interface {
	Evaluate(ctx context.Context, inputFile, outputFile string) error
}

// ExitError is an error about an engine process which exited with a non-zero code.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("problog exited with code %d", e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// CLIEngine runs the ProbLog command line script in Directory as a separate process.
type CLIEngine struct {
	// Python is the interpreter. The zero value means DefaultPython.
	Python string

	// Directory is the ProbLog installation which contains CLIScript.
	Directory string

	Logger *zap.Logger
}

// Command returns the command line which evaluates inputFile into outputFile.
func (e *CLIEngine) Command(inputFile, outputFile string) []string {
	python := e.Python
	if python == "" {
		python = DefaultPython
	}
	return []string{python, filepath.Join(e.Directory, CLIScript), inputFile, OutputOption, outputFile}
}

// Evaluate runs `python <dir>/problog-cli.py <inputFile> -o <outputFile>` and waits for it.
func (e *CLIEngine) Evaluate(ctx context.Context, inputFile, outputFile string) error {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	args := e.Command(inputFile, outputFile)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("execute problog", zap.Strings("command", args))
	start := time.Now()
	err := cmd.Run()
	logger.Debug("problog finished", zap.Duration("elapsed", time.Since(start)), zap.Error(err))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	if err != nil {
		return fmt.Errorf("execute problog: %w", err)
	}
	return nil
}

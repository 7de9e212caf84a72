package problog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/born-reasoner/born/syntax"
	"github.com/born-reasoner/born/term"
)

// NoResults is the result of a run which left no output file.
const NoResults = "No results."

// Processor feeds programs to an Engine through files in WorkDir.
// Every call to Process uses its own pair of files, so a Processor can be shared between goroutines.
type Processor struct {
	Engine  Engine
	WorkDir string
	Logger  *zap.Logger
}

// Process writes input line by line into an input file, evaluates it and
// returns the content of the output file with every line terminated by a newline.
// Both files are removed afterwards.
func (p *Processor) Process(ctx context.Context, input io.Reader) (string, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	id := ulid.Make().String()
	logger = logger.With(zap.String("run", id))
	start := time.Now()
	step := func(msg string) {
		logger.Debug(msg, zap.Duration("elapsed", time.Since(start)))
	}

	if err := os.MkdirAll(p.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("create working directory: %w", err)
	}
	inputFile := filepath.Join(p.WorkDir, "input-"+id+".txt")
	outputFile := filepath.Join(p.WorkDir, "output-"+id+".txt")
	defer func() {
		for _, f := range []string{inputFile, outputFile} {
			if err := os.Remove(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("failed to remove work file", zap.String("file", f), zap.Error(err))
			}
		}
	}()

	step("create input file")
	if err := writeLines(inputFile, input); err != nil {
		return "", err
	}

	step("evaluate")
	if err := p.Engine.Evaluate(ctx, inputFile, outputFile); err != nil {
		return "", err
	}

	step("read output file")
	f, err := os.Open(outputFile)
	if errors.Is(err, fs.ErrNotExist) {
		step("no output file")
		return NoResults, nil
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	if err := copyLines(&sb, f); err != nil {
		return "", fmt.Errorf("read output: %w", err)
	}
	step("done")
	return sb.String(), nil
}

func writeLines(name string, r io.Reader) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create input file: %w", err)
	}
	if err := copyLines(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write input file: %w", err)
	}
	return f.Close()
}

func copyLines(w io.Writer, r io.Reader) error {
	bw := bufio.NewWriter(w)
	var werr error
	err := syntax.ReadLines(r, func(line string, _ int) {
		if werr != nil {
			return
		}
		if _, werr = bw.WriteString(line); werr == nil {
			werr = bw.WriteByte('\n')
		}
	})
	if err != nil {
		return err
	}
	if werr != nil {
		return werr
	}
	return bw.Flush()
}

// Assemble writes the engine input: the program, the network and the query, in this order.
// Every block ends with a newline.
func Assemble(w io.Writer, program []term.Clause, network, query string) error {
	if err := term.WriteProgram(w, program, term.DefaultWriteOptions); err != nil {
		return err
	}
	for _, block := range []string{network, query} {
		if block == "" {
			continue
		}
		if _, err := io.WriteString(w, block); err != nil {
			return err
		}
		if !strings.HasSuffix(block, "\n") {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

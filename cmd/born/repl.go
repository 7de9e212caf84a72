package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/born-reasoner/born/formula"
	"github.com/born-reasoner/born/term"
)

const (
	prompt             = "?- "
	continuationPrompt = "|  "
)

// replCmd reads terms and prints them as query clauses
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read terms interactively and print their query clauses",
	Long: `Reads a term per full stop, possibly over several lines, and prints the
query clause which asks for it in canonical form. Clauses with a body are
printed as they are. Type halt. or press Ctrl-D to leave.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdin.Fd())
	if terminal.IsTerminal(fd) {
		oldState, err := terminal.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer func() {
			_ = terminal.Restore(fd, oldState)
		}()
	}

	t := terminal.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, cmd.OutOrStdout()}, prompt)
	return repl(t)
}

func repl(t *terminal.Terminal) error {
	defer fmt.Fprint(t, "\n")

	var buf strings.Builder
	for {
		if err := handleLine(&buf, t); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func handleLine(buf *strings.Builder, t *terminal.Terminal) error {
	if buf.Len() == 0 {
		t.SetPrompt(prompt)
	} else {
		t.SetPrompt(continuationPrompt)
	}

	line, err := t.ReadLine()
	if err != nil {
		if err == io.EOF {
			return err
		}
		logger.Warn("failed to read line", zap.Error(err))
		buf.Reset()
		return nil
	}
	_, _ = buf.WriteString(line)

	text := strings.TrimSpace(buf.String())
	if text == "" {
		buf.Reset()
		return nil
	}
	if !strings.HasSuffix(text, ".") {
		// Returns without resetting buf.
		_, _ = buf.WriteRune('\n')
		return nil
	}
	buf.Reset()

	if text == "halt." {
		return io.EOF
	}

	out, err := answer(text)
	if err != nil {
		_, err = fmt.Fprintf(t, "error: %v\n", err)
		return err
	}
	_, err = fmt.Fprintln(t, out)
	return err
}

// answer returns the query clause for the term in text along with its kind.
// Clauses which are not a single term are returned as they are.
func answer(text string) (string, error) {
	if t, err := term.ParseTerm(text); err == nil {
		c := term.NewClause(t)
		kind := kindOf(c)
		if !c.IsQuery() {
			c = formula.Query(t)
		}
		return fmt.Sprintf("%s\t%% %s", c, kind), nil
	}

	c, err := term.ParseClause(text)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\t%% %s", c, kindOf(c)), nil
}

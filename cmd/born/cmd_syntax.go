package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-reasoner/born/formula"
	"github.com/born-reasoner/born/syntax"
	"github.com/born-reasoner/born/term"
)

var (
	rawTokens bool
	classify  bool
)

// tokenizeCmd prints the tokens of a file
var tokenizeCmd = &cobra.Command{
	Use:   "tokenize FILE",
	Short: "Print the tokens of a clause file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

// parseCmd prints the clauses of a file in canonical form
var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a clause file and print its clauses in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	tokenizeCmd.Flags().BoolVar(&rawTokens, "raw", false, "Keep blank and comment tokens")
	parseCmd.Flags().BoolVar(&classify, "classify", false, "Print the kind of every clause")
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var tokens []syntax.Token
	if rawTokens {
		err = syntax.ReadLines(f, func(line string, n int) {
			tokens = append(tokens, syntax.Tokenize(line, n)...)
		})
		if err != nil {
			return err
		}
	} else {
		tokens, err = syntax.TokenizeReader(f)
		if err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	for _, t := range tokens {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", t.Line, t); err != nil {
			return err
		}
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tokens, err := syntax.TokenizeReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var clauses []term.Clause
	p := term.NewParser(tokens)
	for p.More() {
		line := tokens[p.Offset()].Line
		c, err := p.Clause()
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		for _, v := range p.Singletons() {
			logger.Warn("singleton variable",
				zap.String("file", args[0]),
				zap.Int("line", line),
				zap.Stringer("variable", v),
			)
		}
		clauses = append(clauses, c)
	}
	logger.Debug("parsed clauses", zap.String("file", args[0]), zap.Int("clauses", len(clauses)))

	w := cmd.OutOrStdout()
	if !classify {
		return term.WriteProgram(w, clauses, term.DefaultWriteOptions)
	}
	for _, c := range clauses {
		if _, err := fmt.Fprintf(w, "%-24s %s\n", kindOf(c), c); err != nil {
			return err
		}
	}
	return nil
}

// kindOf names the shape of c, e.g. subsumption for sub(a, b).
func kindOf(c term.Clause) string {
	f := formula.ClassifyClause(c)
	if r, ok := f.(formula.RuleFormula); ok && len(r.Body) == 0 {
		f = formula.Classify(r.Head)
	}
	name := fmt.Sprintf("%T", f)
	name = strings.TrimPrefix(name, "formula.")
	return strings.TrimSuffix(name, "Formula")
}

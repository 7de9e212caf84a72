// Package network reads the random variables of Bayesian networks written as ProbLog programs.
//
//	0.3::burglary.
//	0.2::earthquake.
//	0.9::alarm :- burglary, earthquake.
//	0.4::red ; 0.6::green.
package network

import (
	"errors"
	"fmt"
	"io"

	"github.com/cockroachdb/apd"

	"github.com/born-reasoner/born/syntax"
	"github.com/born-reasoner/born/term"
)

// ErrInvalidProbability is wrapped by errors about probabilities outside [0, 1].
var ErrInvalidProbability = errors.New("invalid probability")

// ProbabilityError is an error about a probability outside [0, 1].
type ProbabilityError struct {
	Name  string
	Value string
	Line  int
}

func (e *ProbabilityError) Error() string {
	return fmt.Sprintf("probability %s of %s at line %d is not in [0, 1]", e.Value, e.Name, e.Line)
}

func (e *ProbabilityError) Unwrap() error {
	return ErrInvalidProbability
}

// Variable is a random variable of a network.
type Variable struct {
	Name string

	// Probability is nil for variables without an annotation.
	Probability *apd.Decimal

	// Line is the line of the first appearance.
	Line int
}

// Heads which are not variables.
var directives = map[term.Atom]struct{}{
	"query":    {},
	"evidence": {},
}

var (
	zero = apd.New(0, 0)
	one  = apd.New(1, 0)
)

// Variables returns the variables defined by the heads of the statements in r,
// in the order of their first appearance.
func Variables(r io.Reader) ([]Variable, error) {
	tokens, err := syntax.TokenizeReader(r)
	if err != nil {
		return nil, err
	}

	s := scanner{tokens: tokens, seen: map[string]struct{}{}}
	for s.more() {
		if err := s.statement(); err != nil {
			return nil, err
		}
	}
	return s.vars, nil
}

type scanner struct {
	tokens []syntax.Token
	pos    int
	seen   map[string]struct{}
	vars   []Variable
}

func (s *scanner) more() bool {
	return s.pos < len(s.tokens)
}

func (s *scanner) at(i int, k syntax.TokenKind, vals ...string) bool {
	if i >= len(s.tokens) {
		return false
	}
	t := s.tokens[i]
	if t.Kind != k {
		return false
	}
	for _, v := range vals {
		if t.Val == v {
			return true
		}
	}
	return len(vals) == 0
}

func (s *scanner) eof() error {
	return fmt.Errorf("%w: %w", term.ErrSyntax, term.ErrUnexpectedEOF)
}

func (s *scanner) expect(k syntax.TokenKind, val string) error {
	if !s.more() {
		return s.eof()
	}
	if !s.at(s.pos, k, val) {
		return &term.UnexpectedTokenError{
			ExpectedKind: k,
			ExpectedVals: []string{val},
			Actual:       s.tokens[s.pos],
		}
	}
	s.pos++
	return nil
}

// statement reads `[P::]head {; [P::]head} [:- body].`.
func (s *scanner) statement() error {
	for {
		if err := s.head(); err != nil {
			return err
		}
		if !s.at(s.pos, syntax.TokenPunct, ";") {
			break
		}
		s.pos++
	}

	if s.at(s.pos, syntax.TokenOperator, syntax.If) {
		s.pos++
		if err := s.skipBody(); err != nil {
			return err
		}
	}

	return s.expect(syntax.TokenPunct, ".")
}

func (s *scanner) head() error {
	if !s.more() {
		return s.eof()
	}

	prob, err := s.probability()
	if err != nil {
		return err
	}
	if !s.more() {
		return s.eof()
	}

	line := s.tokens[s.pos].Line
	p := term.NewParser(s.tokens[s.pos:])
	h, err := p.Term()
	if err != nil {
		return err
	}
	s.pos += p.Offset()

	if f, ok := h.(*term.Compound); ok {
		if _, ok := directives[f.Functor]; ok {
			return nil
		}
	}

	name := h.String()
	if prob != "" {
		d, _, err := apd.NewFromString(prob)
		if err != nil {
			return fmt.Errorf("probability of %s at line %d: %w", name, line, err)
		}
		if d.Cmp(zero) < 0 || d.Cmp(one) > 0 {
			return &ProbabilityError{Name: name, Value: prob, Line: line}
		}
		s.add(Variable{Name: name, Probability: d, Line: line})
		return nil
	}
	s.add(Variable{Name: name, Line: line})
	return nil
}

func (s *scanner) add(v Variable) {
	if _, ok := s.seen[v.Name]; ok {
		return
	}
	s.seen[v.Name] = struct{}{}
	s.vars = append(s.vars, v)
}

// probability reads `digits [. digits] ::` if present and returns the digits.
// The lexer splits decimals into digits, a full stop and digits; they are put back together here.
func (s *scanner) probability() (string, error) {
	if !s.at(s.pos, syntax.TokenIdent) || !isDigits(s.tokens[s.pos].Val) {
		return "", nil
	}

	i := s.pos
	value := s.tokens[i].Val
	i++
	if s.decimalPoint(i) {
		value += "." + s.tokens[i+1].Val
		i += 2
	}

	for j := 0; j < 2; j++ {
		if i >= len(s.tokens) {
			return "", s.eof()
		}
		if !s.at(i, syntax.TokenPunct, ":") {
			return "", &term.UnexpectedTokenError{
				ExpectedKind: syntax.TokenPunct,
				ExpectedVals: []string{":"},
				Actual:       s.tokens[i],
				Reason:       "probability annotation",
			}
		}
		i++
	}

	s.pos = i
	return value, nil
}

// skipBody advances to the full stop which ends the statement.
func (s *scanner) skipBody() error {
	for s.more() {
		if s.at(s.pos, syntax.TokenPunct, ".") && !s.decimalPoint(s.pos) {
			return nil
		}
		s.pos++
	}
	return s.eof()
}

func (s *scanner) decimalPoint(i int) bool {
	if i == 0 || i+1 >= len(s.tokens) {
		return false
	}
	prev, point, next := s.tokens[i-1], s.tokens[i], s.tokens[i+1]
	return point.Kind == syntax.TokenPunct && point.Val == "." &&
		prev.Kind == syntax.TokenIdent && isDigits(prev.Val) &&
		next.Kind == syntax.TokenIdent && isDigits(next.Val) &&
		syntax.Adjacent(prev, point) && syntax.Adjacent(point, next)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

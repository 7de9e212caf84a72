package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/born-reasoner/born/syntax"
)

// Parser turns tokens into clauses.
// It expects tokens with blanks and comments already removed, as syntax.TokenizeReader returns them.
type Parser struct {
	Vars   []VariableWithCount
	tokens []syntax.Token
	pos    int
}

// VariableWithCount is a variable of the last parsed clause and the number of its occurrences.
type VariableWithCount struct {
	Variable Variable
	Count    int
}

// NewParser creates a Parser.
func NewParser(tokens []syntax.Token) *Parser {
	return &Parser{tokens: tokens}
}

// More checks if there are tokens left.
func (p *Parser) More() bool {
	return p.pos < len(p.tokens)
}

// Offset returns the number of consumed tokens.
func (p *Parser) Offset() int {
	return p.pos
}

func (p *Parser) peek() (syntax.Token, bool) {
	if !p.More() {
		return syntax.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) eof() error {
	line := 0
	if n := len(p.tokens); n > 0 {
		line = p.tokens[n-1].Line
	}
	return fmt.Errorf("%w: %w after line %d", ErrSyntax, ErrUnexpectedEOF, line)
}

func (p *Parser) expect(k syntax.TokenKind, vals ...string) (syntax.Token, error) {
	t, ok := p.peek()
	if !ok {
		return syntax.Token{}, p.eof()
	}

	if t.Kind != k {
		return t, &UnexpectedTokenError{
			ExpectedKind: k,
			ExpectedVals: vals,
			Actual:       t,
		}
	}

	if len(vals) > 0 {
		for _, v := range vals {
			if v == t.Val {
				return t, nil
			}
		}
		return t, &UnexpectedTokenError{
			ExpectedKind: k,
			ExpectedVals: vals,
			Actual:       t,
		}
	}

	return t, nil
}

func (p *Parser) accept(k syntax.TokenKind, vals ...string) (syntax.Token, error) {
	t, err := p.expect(k, vals...)
	if err != nil {
		return t, err
	}
	p.pos++
	return t, nil
}

// Clause parses a clause followed by a full stop. It returns io.EOF if there are no tokens left.
func (p *Parser) Clause() (Clause, error) {
	if !p.More() {
		return Clause{}, io.EOF
	}

	// reset Vars
	for i := range p.Vars {
		p.Vars[i] = VariableWithCount{}
	}
	p.Vars = p.Vars[:0]

	head, err := p.term()
	if err != nil {
		return Clause{}, err
	}

	var body []Term
	if _, err := p.accept(syntax.TokenOperator, syntax.If); err == nil {
		body, err = p.conjunction()
		if err != nil {
			return Clause{}, err
		}
	}

	if _, err := p.accept(syntax.TokenPunct, "."); err != nil {
		if e, ok := err.(*UnexpectedTokenError); ok && body == nil {
			e.ExpectedVals = []string{".", syntax.If}
		}
		return Clause{}, err
	}

	return NewClause(head, body...), nil
}

// Term parses a single term. A full stop is not consumed.
func (p *Parser) Term() (Term, error) {
	return p.term()
}

func (p *Parser) conjunction() ([]Term, error) {
	var ts []Term
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
		if _, err := p.accept(syntax.TokenPunct, ","); err != nil {
			return ts, nil
		}
	}
}

func (p *Parser) term() (Term, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.eof()
	}

	switch {
	case t.Kind == syntax.TokenQuoted:
		name, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return p.arguments(Atom(name))
	case t.Kind == syntax.TokenIdent, isUnderscore(t):
		name := p.name()
		if !isVariableStart(name) {
			return p.arguments(Atom(name))
		}
		v, err := NewVariable(name)
		if err != nil {
			return nil, &UnexpectedTokenError{Actual: t, Reason: err.Error()}
		}
		p.count(v)
		return v, nil
	default:
		return nil, &UnexpectedTokenError{Actual: t, Reason: "expected a term"}
	}
}

// name reads an identifier. The lexer splits identifiers at underscores, so
// identifiers and underscores right next to each other are joined back together.
func (p *Parser) name() string {
	var sb strings.Builder
	prev := p.tokens[p.pos]
	_, _ = sb.WriteString(prev.Val)
	p.pos++
	for ; p.pos < len(p.tokens); p.pos++ {
		t := p.tokens[p.pos]
		if !syntax.Adjacent(prev, t) || !(t.Kind == syntax.TokenIdent || isUnderscore(t)) {
			break
		}
		if !isUnderscore(prev) && !isUnderscore(t) {
			break
		}
		_, _ = sb.WriteString(t.Val)
		prev = t
	}
	return sb.String()
}

// quoted reads a quoted constant. Adjacent quoted constants stand for one
// constant with a doubled apostrophe, e.g. 'don''t'.
func (p *Parser) quoted() (string, error) {
	var sb strings.Builder
	for first := true; ; first = false {
		t := p.tokens[p.pos]
		if len(t.Val) < 2 || t.Val[len(t.Val)-1] != '\'' {
			return "", &UnexpectedTokenError{Actual: t, Reason: "unterminated quoted constant"}
		}
		if !first {
			_ = sb.WriteByte('\'')
		}
		_, _ = sb.WriteString(t.Val[1 : len(t.Val)-1])
		p.pos++

		n, ok := p.peek()
		if !ok || n.Kind != syntax.TokenQuoted || !syntax.Adjacent(t, n) {
			return sb.String(), nil
		}
	}
}

func (p *Parser) arguments(functor Atom) (Term, error) {
	if _, err := p.accept(syntax.TokenPunct, "("); err != nil {
		return functor, nil
	}

	var args []Term
	for {
		a, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		t, err := p.accept(syntax.TokenPunct, ",", ")")
		if err != nil {
			return nil, err
		}
		if t.Val == ")" {
			return functor.Apply(args...), nil
		}
	}
}

// Singletons returns the variables which occur once in the last parsed clause, leaving out
// variables which start with an underscore.
func (p *Parser) Singletons() []Variable {
	var ret []Variable
	for _, e := range p.Vars {
		if e.Count == 1 && !strings.HasPrefix(string(e.Variable), "_") {
			ret = append(ret, e.Variable)
		}
	}
	return ret
}

func (p *Parser) count(v Variable) {
	for i, e := range p.Vars {
		if e.Variable == v {
			p.Vars[i].Count++
			return
		}
	}
	p.Vars = append(p.Vars, VariableWithCount{Variable: v, Count: 1})
}

func isUnderscore(t syntax.Token) bool {
	return t.Kind == syntax.TokenPunct && t.Val == "_"
}

func isVariableStart(name string) bool {
	return name != "" && (name[0] == '_' || ('A' <= name[0] && name[0] <= 'Z'))
}

// ParseClauses reads every clause in r.
func ParseClauses(r io.Reader) ([]Clause, error) {
	tokens, err := syntax.TokenizeReader(r)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	var ret []Clause
	for {
		c, err := p.Clause()
		switch err {
		case nil:
			ret = append(ret, c)
		case io.EOF:
			return ret, nil
		default:
			return nil, err
		}
	}
}

// ParseClause parses s which has to contain exactly one clause.
func ParseClause(s string) (Clause, error) {
	p := NewParser(syntax.TokenizeString(s))
	c, err := p.Clause()
	switch err {
	case nil:
		break
	case io.EOF:
		return Clause{}, p.eof()
	default:
		return Clause{}, err
	}
	if t, ok := p.peek(); ok {
		return Clause{}, &UnexpectedTokenError{Actual: t, Reason: "expected end of input"}
	}
	return c, nil
}

// ParseTerm parses s which has to contain exactly one term, optionally followed by a full stop.
func ParseTerm(s string) (Term, error) {
	p := NewParser(syntax.TokenizeString(s))
	t, err := p.Term()
	if err != nil {
		return nil, err
	}
	_, _ = p.accept(syntax.TokenPunct, ".")
	if n, ok := p.peek(); ok {
		return nil, &UnexpectedTokenError{Actual: n, Reason: "expected end of input"}
	}
	return t, nil
}

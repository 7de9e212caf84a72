package term

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-reasoner/born/syntax"
)

var (
	// ErrInvalidVariableName is an error that signifies a variable name not starting with a capital letter or an underscore.
	ErrInvalidVariableName = errors.New("invalid variable name")

	// ErrSyntax is an error that signifies clause text which doesn't parse.
	ErrSyntax = errors.New("syntax error")

	// ErrUnexpectedEOF is an error that signifies clause text ending in the middle of a clause.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrMultilineAtom is an error that signifies an atom with a line break.
	// Clause text is read line by line, so such an atom can't be written in a way that reads back.
	ErrMultilineAtom = errors.New("atom spans more than one line")

	// ErrMissingHead is an error that signifies a clause without a head.
	ErrMissingHead = errors.New("clause has no head")
)

// InvalidVariableNameError is an error that signifies a variable name not starting with a capital letter or an underscore.
type InvalidVariableNameError struct {
	Name string
}

func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("invalid variable name: '%s'. A variable name must start with a capital letter or with an underscore ('_')", e.Name)
}

func (e *InvalidVariableNameError) Unwrap() error {
	return ErrInvalidVariableName
}

// UnexpectedTokenError is an error that signifies a token the parser can't accept at its position.
type UnexpectedTokenError struct {
	ExpectedKind syntax.TokenKind
	ExpectedVals []string
	Actual       syntax.Token
	Reason       string
}

func (e *UnexpectedTokenError) Error() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "unexpected token at line %d: %s", e.Actual.Line, e.Actual)
	if len(e.ExpectedVals) > 0 {
		_, _ = fmt.Fprintf(&sb, ", expected %s", strings.Join(e.ExpectedVals, " or "))
	}
	if e.Reason != "" {
		_, _ = fmt.Fprintf(&sb, " (%s)", e.Reason)
	}
	return sb.String()
}

// Is makes every UnexpectedTokenError an ErrSyntax.
func (e *UnexpectedTokenError) Is(target error) bool {
	return target == ErrSyntax
}

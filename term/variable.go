package term

import (
	"fmt"
	"io"
	"regexp"
)

// Variable is a logic variable.
type Variable string

var variablePattern = regexp.MustCompile(`\A[A-Z_][A-Za-z0-9_]*\z`)

// NewVariable returns a variable named name.
// The name has to start with a capital letter or an underscore.
func NewVariable(name string) (Variable, error) {
	if !variablePattern.MatchString(name) {
		return "", &InvalidVariableNameError{Name: name}
	}
	return Variable(name), nil
}

// MustVariable is like NewVariable but panics on an invalid name.
func MustVariable(name string) Variable {
	v, err := NewVariable(name)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Variable) String() string {
	return string(v)
}

// Kind returns KindVariable.
func (v Variable) Kind() Kind {
	return KindVariable
}

// WriteTerm writes the variable into w.
func (v Variable) WriteTerm(w io.Writer, _ WriteOptions) error {
	_, err := fmt.Fprint(w, string(v))
	return err
}

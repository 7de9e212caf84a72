package term

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Atom is a constant.
type Atom string

// NewAtom returns an atom named name.
func NewAtom(name string) Atom {
	return Atom(name)
}

var unquotedAtomPattern = regexp.MustCompile(`\A[a-z][A-Za-z0-9_]*\z`)

// String returns the atom as it is written. An atom which can't be written is shown Go-quoted.
func (a Atom) String() string {
	var sb strings.Builder
	if err := a.WriteTerm(&sb, DefaultWriteOptions); err != nil {
		return fmt.Sprintf("%q", string(a))
	}
	return sb.String()
}

// Kind returns KindConstant.
func (a Atom) Kind() Kind {
	return KindConstant
}

// WriteTerm writes the atom into w. Atoms with a line break are ErrMultilineAtom.
func (a Atom) WriteTerm(w io.Writer, opts WriteOptions) error {
	if strings.ContainsAny(string(a), "\r\n") {
		return fmt.Errorf("%w: %q", ErrMultilineAtom, string(a))
	}
	if !opts.Quoted || unquotedAtomPattern.MatchString(string(a)) {
		_, err := fmt.Fprint(w, string(a))
		return err
	}
	_, err := fmt.Fprint(w, quote(string(a)))
	return err
}

// Apply returns a Compound which Functor is the Atom and Args are the arguments. If the arguments are empty,
// then returns itself.
func (a Atom) Apply(args ...Term) Term {
	if len(args) == 0 {
		return a
	}
	return &Compound{
		Functor: a,
		Args:    args,
	}
}

// quote doubles apostrophes since the lexer has no escape sequences.
func quote(s string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "''"))
}

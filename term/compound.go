package term

import (
	"fmt"
	"io"
	"strings"
)

// Compound is a functor applied to one or more arguments.
// Neither Functor nor Args may be modified once the compound is shared.
type Compound struct {
	Functor Atom
	Args    []Term
}

// NewCompound returns functor applied to a copy of args.
// Without args it returns the Atom functor, so a 0-ary compound and a constant are the same term.
func NewCompound(functor string, args ...Term) Term {
	if len(args) == 0 {
		return Atom(functor)
	}
	return Atom(functor).Apply(append([]Term(nil), args...)...)
}

func (c *Compound) String() string {
	var sb strings.Builder
	if err := c.WriteTerm(&sb, DefaultWriteOptions); err == nil {
		return sb.String()
	}
	sb.Reset()
	_, _ = sb.WriteString(c.Functor.String())
	_ = sb.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			_, _ = sb.WriteString(", ")
		}
		_, _ = sb.WriteString(arg.String())
	}
	_ = sb.WriteByte(')')
	return sb.String()
}

// Kind returns KindCompound.
func (c *Compound) Kind() Kind {
	return KindCompound
}

// Arity returns the number of arguments.
func (c *Compound) Arity() int {
	return len(c.Args)
}

// Indicator returns the principal functor in the form of name/arity.
func (c *Compound) Indicator() string {
	return fmt.Sprintf("%s/%d", c.Functor, len(c.Args))
}

// WriteTerm writes the compound into w.
func (c *Compound) WriteTerm(w io.Writer, opts WriteOptions) error {
	if err := c.Functor.WriteTerm(w, opts); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "("); err != nil {
		return err
	}
	for i, arg := range c.Args {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return err
			}
		}
		if err := arg.WriteTerm(w, opts); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

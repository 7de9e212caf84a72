package term

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/born-reasoner/born/syntax"
)

// AtomQuery is the functor of query clauses.
const AtomQuery = Atom("query")

// Clause is a Horn clause: Head holds if every term in Body holds. An empty Body makes it a fact.
type Clause struct {
	Head Term
	Body []Term
}

// NewClause returns a clause with a copy of body.
func NewClause(head Term, body ...Term) Clause {
	var b []Term
	if len(body) > 0 {
		b = append(b, body...)
	}
	return Clause{Head: head, Body: b}
}

// IsFact checks if c has an empty body.
func (c Clause) IsFact() bool {
	return len(c.Body) == 0
}

// IsQuery checks if c is in the form of query(T) with an empty body.
func (c Clause) IsQuery() bool {
	h, ok := c.Head.(*Compound)
	return ok && h.Functor == AtomQuery && len(h.Args) == 1 && c.IsFact()
}

// Equal checks if c and o have equal heads and pairwise equal bodies in the same order.
func (c Clause) Equal(o Clause) bool {
	if !Equal(c.Head, o.Head) || len(c.Body) != len(o.Body) {
		return false
	}
	for i := range c.Body {
		if !Equal(c.Body[i], o.Body[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash of c. Equal clauses have the same hash.
func (c Clause) Hash() uint64 {
	h := fnv.New64a()
	writeHash(h, c.Head)
	for _, b := range c.Body {
		writeHash(h, b)
	}
	return h.Sum64()
}

// String returns the clause as it is written, or an empty string for a clause without a head.
func (c Clause) String() string {
	if c.Head == nil {
		return ""
	}
	var sb strings.Builder
	if err := WriteClause(&sb, c, DefaultWriteOptions); err == nil {
		return sb.String()
	}
	sb.Reset()
	_, _ = sb.WriteString(c.Head.String())
	for i, b := range c.Body {
		if i == 0 {
			_, _ = sb.WriteString(" " + syntax.If + " ")
		} else {
			_, _ = sb.WriteString(", ")
		}
		_, _ = sb.WriteString(b.String())
	}
	_ = sb.WriteByte('.')
	return sb.String()
}

// WriteClause writes c into w in the form of `head :- b1, b2.` or `head.`.
func WriteClause(w io.Writer, c Clause, opts WriteOptions) error {
	if c.Head == nil {
		return ErrMissingHead
	}
	if err := c.Head.WriteTerm(w, opts); err != nil {
		return err
	}
	for i, b := range c.Body {
		sep := ", "
		if i == 0 {
			sep = " " + syntax.If + " "
		}
		if _, err := fmt.Fprint(w, sep); err != nil {
			return err
		}
		if err := b.WriteTerm(w, opts); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ".")
	return err
}

// WriteProgram writes clauses into w, one per line.
func WriteProgram(w io.Writer, clauses []Clause, opts WriteOptions) error {
	for _, c := range clauses {
		if err := WriteClause(w, c, opts); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

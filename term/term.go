package term

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
)

// Term is a node of a first-order term tree. Terms are immutable once built.
type Term interface {
	fmt.Stringer
	Kind() Kind
	WriteTerm(io.Writer, WriteOptions) error
}

// Kind tells variables, constants and compounds apart.
type Kind byte

const (
	// KindVariable is the kind of Variable.
	KindVariable Kind = iota

	// KindConstant is the kind of Atom.
	KindConstant

	// KindCompound is the kind of *Compound.
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindCompound:
		return "compound"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// WriteOptions describes options to write terms.
type WriteOptions struct {
	Quoted bool
}

// DefaultWriteOptions quotes atoms which wouldn't read back as the same atom otherwise.
var DefaultWriteOptions = WriteOptions{
	Quoted: true,
}

// Equal checks if a and b are structurally the same: same kind, same name, same arity and equal arguments.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Variable:
		b, ok := b.(Variable)
		return ok && a == b
	case Atom:
		b, ok := b.(Atom)
		return ok && a == b
	case *Compound:
		b, ok := b.(*Compound)
		if !ok || a.Functor != b.Functor || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a structural hash of t. Equal terms have the same hash.
func Hash(t Term) uint64 {
	h := fnv.New64a()
	writeHash(h, t)
	return h.Sum64()
}

func writeHash(w io.Writer, t Term) {
	var n [binary.MaxVarintLen64]byte
	switch t := t.(type) {
	case Variable:
		_, _ = w.Write([]byte{byte(KindVariable)})
		_, _ = io.WriteString(w, string(t))
		_, _ = w.Write([]byte{0})
	case Atom:
		_, _ = w.Write([]byte{byte(KindConstant)})
		_, _ = io.WriteString(w, string(t))
		_, _ = w.Write([]byte{0})
	case *Compound:
		_, _ = w.Write([]byte{byte(KindCompound)})
		_, _ = io.WriteString(w, string(t.Functor))
		_, _ = w.Write([]byte{0})
		_, _ = w.Write(n[:binary.PutUvarint(n[:], uint64(len(t.Args)))])
		for _, a := range t.Args {
			writeHash(w, a)
		}
	}
}

// Variables returns the variables in t in order of first occurrence.
func Variables(t Term) []Variable {
	var (
		ret  []Variable
		seen = map[Variable]struct{}{}
	)
	var walk func(Term)
	walk = func(t Term) {
		switch t := t.(type) {
		case Variable:
			if _, ok := seen[t]; ok {
				return
			}
			seen[t] = struct{}{}
			ret = append(ret, t)
		case *Compound:
			for _, a := range t.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return ret
}

// Write writes t into w.
func Write(w io.Writer, t Term, opts WriteOptions) error {
	return t.WriteTerm(w, opts)
}

// Package formula builds the terms and clauses which stand for description logic constructs.
//
// The vocabulary is fixed: top, con/1, role/1, sub/2, subs/2, and/2, exists/2 and query/1.
// Every function is pure and performs no simplification; and(a, a) stays and(a, a).
package formula

import (
	"github.com/born-reasoner/born/term"
)

// Functors of the fixed vocabulary.
const (
	AtomTop    = term.Atom("top")
	AtomCon    = term.Atom("con")
	AtomRole   = term.Atom("role")
	AtomSub    = term.Atom("sub")
	AtomSubs   = term.Atom("subs")
	AtomAnd    = term.Atom("and")
	AtomExists = term.Atom("exists")
	AtomQuery  = term.AtomQuery
)

// Constant returns a new constant.
func Constant(name string) term.Term {
	return term.NewAtom(name)
}

// Var returns a new variable. The name has to start with a capital letter or an underscore.
func Var(name string) (term.Variable, error) {
	return term.NewVariable(name)
}

// Fun applies the functor name to args.
func Fun(name string, args ...term.Term) term.Term {
	return term.NewCompound(name, args...)
}

// Top returns the universal concept.
func Top() term.Term {
	return AtomTop
}

// Concept declares c as a concept name.
func Concept(c term.Term) term.Term {
	return AtomCon.Apply(c)
}

// Role declares r as a role name.
func Role(r term.Term) term.Term {
	return AtomRole.Apply(r)
}

// Subsumption states that sub is subsumed by sup.
func Subsumption(sub, sup term.Term) term.Term {
	return AtomSub.Apply(sub, sup)
}

// SubsumptionSet is the subsumption over complex concepts.
// It is kept apart from Subsumption; which one to emit is up to the translation.
func SubsumptionSet(sub, sup term.Term) term.Term {
	return AtomSubs.Apply(sub, sup)
}

// Conjunction returns the intersection of l and r.
func Conjunction(l, r term.Term) term.Term {
	return AtomAnd.Apply(l, r)
}

// Existential returns the existential restriction of c over the role prop.
func Existential(prop, c term.Term) term.Term {
	return AtomExists.Apply(prop, c)
}

// Rule returns the clause head :- body.
func Rule(head term.Term, body ...term.Term) term.Clause {
	return term.NewClause(head, body...)
}

// Fact returns the clause head with an empty body.
func Fact(head term.Term) term.Clause {
	return term.NewClause(head)
}

// Query wraps q into the query clause query(q).
func Query(q term.Term) term.Clause {
	return term.NewClause(AtomQuery.Apply(q))
}

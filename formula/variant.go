package formula

import (
	"fmt"

	"github.com/born-reasoner/born/term"
)

// Formula is one of the known shapes of a term or a clause:
// TopFormula, ConceptFormula, RoleFormula, SubsumptionFormula, SubsumptionSetFormula,
// ConjunctionFormula, ExistentialFormula, RuleFormula, QueryFormula, VariableFormula or RawCompound.
type Formula interface {
	fmt.Stringer
	formula()
}

// TopFormula is top.
type TopFormula struct{}

// ConceptFormula is con(Name).
type ConceptFormula struct {
	Name term.Term
}

// RoleFormula is role(Name).
type RoleFormula struct {
	Name term.Term
}

// SubsumptionFormula is sub(Sub, Sup).
type SubsumptionFormula struct {
	Sub, Sup term.Term
}

// SubsumptionSetFormula is subs(Sub, Sup).
type SubsumptionSetFormula struct {
	Sub, Sup term.Term
}

// ConjunctionFormula is and(Left, Right).
type ConjunctionFormula struct {
	Left, Right term.Term
}

// ExistentialFormula is exists(Property, Concept).
type ExistentialFormula struct {
	Property, Concept term.Term
}

// RuleFormula is Head :- Body, or a fact if Body is empty.
type RuleFormula struct {
	Head term.Term
	Body []term.Term
}

// QueryFormula is the query clause query(Goal).
type QueryFormula struct {
	Goal term.Term
}

// VariableFormula is a bare variable.
type VariableFormula struct {
	Variable term.Variable
}

// RawCompound is anything outside the fixed vocabulary. Atoms other than top have no Args.
type RawCompound struct {
	Functor term.Atom
	Args    []term.Term
}

func (TopFormula) formula()            {}
func (ConceptFormula) formula()        {}
func (RoleFormula) formula()           {}
func (SubsumptionFormula) formula()    {}
func (SubsumptionSetFormula) formula() {}
func (ConjunctionFormula) formula()    {}
func (ExistentialFormula) formula()    {}
func (RuleFormula) formula()           {}
func (QueryFormula) formula()          {}
func (VariableFormula) formula()       {}
func (RawCompound) formula()           {}

// Term returns top.
func (TopFormula) Term() term.Term { return Top() }

// Term returns con(Name).
func (f ConceptFormula) Term() term.Term { return Concept(f.Name) }

// Term returns role(Name).
func (f RoleFormula) Term() term.Term { return Role(f.Name) }

// Term returns sub(Sub, Sup).
func (f SubsumptionFormula) Term() term.Term { return Subsumption(f.Sub, f.Sup) }

// Term returns subs(Sub, Sup).
func (f SubsumptionSetFormula) Term() term.Term { return SubsumptionSet(f.Sub, f.Sup) }

// Term returns and(Left, Right).
func (f ConjunctionFormula) Term() term.Term { return Conjunction(f.Left, f.Right) }

// Term returns exists(Property, Concept).
func (f ExistentialFormula) Term() term.Term { return Existential(f.Property, f.Concept) }

// Term returns the variable.
func (f VariableFormula) Term() term.Term { return f.Variable }

// Term returns Functor applied to Args.
func (f RawCompound) Term() term.Term { return f.Functor.Apply(f.Args...) }

// Clause returns Head :- Body.
func (f RuleFormula) Clause() term.Clause { return Rule(f.Head, f.Body...) }

// Clause returns query(Goal).
func (f QueryFormula) Clause() term.Clause { return Query(f.Goal) }

func (f TopFormula) String() string            { return f.Term().String() }
func (f ConceptFormula) String() string        { return f.Term().String() }
func (f RoleFormula) String() string           { return f.Term().String() }
func (f SubsumptionFormula) String() string    { return f.Term().String() }
func (f SubsumptionSetFormula) String() string { return f.Term().String() }
func (f ConjunctionFormula) String() string    { return f.Term().String() }
func (f ExistentialFormula) String() string    { return f.Term().String() }
func (f VariableFormula) String() string       { return f.Term().String() }
func (f RawCompound) String() string           { return f.Term().String() }
func (f RuleFormula) String() string           { return f.Clause().String() }
func (f QueryFormula) String() string          { return f.Clause().String() }

// Classify returns the variant t is in. Terms outside the fixed vocabulary,
// including known functors with an unexpected arity, are RawCompound.
// It returns nil for a nil term.
func Classify(t term.Term) Formula {
	switch t := t.(type) {
	case term.Variable:
		return VariableFormula{Variable: t}
	case term.Atom:
		if t == AtomTop {
			return TopFormula{}
		}
		return RawCompound{Functor: t}
	case *term.Compound:
		switch a := t.Args; {
		case t.Functor == AtomCon && len(a) == 1:
			return ConceptFormula{Name: a[0]}
		case t.Functor == AtomRole && len(a) == 1:
			return RoleFormula{Name: a[0]}
		case t.Functor == AtomSub && len(a) == 2:
			return SubsumptionFormula{Sub: a[0], Sup: a[1]}
		case t.Functor == AtomSubs && len(a) == 2:
			return SubsumptionSetFormula{Sub: a[0], Sup: a[1]}
		case t.Functor == AtomAnd && len(a) == 2:
			return ConjunctionFormula{Left: a[0], Right: a[1]}
		case t.Functor == AtomExists && len(a) == 2:
			return ExistentialFormula{Property: a[0], Concept: a[1]}
		default:
			return RawCompound{Functor: t.Functor, Args: t.Args}
		}
	default:
		return nil
	}
}

// ClassifyClause returns QueryFormula for query clauses and RuleFormula otherwise.
func ClassifyClause(c term.Clause) Formula {
	if c.IsQuery() {
		return QueryFormula{Goal: c.Head.(*term.Compound).Args[0]}
	}
	return RuleFormula{Head: c.Head, Body: c.Body}
}

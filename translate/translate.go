// Package translate turns EL ontologies into logic programs over the fixed vocabulary of package formula.
package translate

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/born-reasoner/born/formula"
	"github.com/born-reasoner/born/ontology"
	"github.com/born-reasoner/born/term"
)

// ErrUnsupportedAxiom is wrapped by errors about axioms without a translation.
var ErrUnsupportedAxiom = errors.New("unsupported axiom")

// UnsupportedAxiomError is an error about an axiom without a translation.
type UnsupportedAxiomError struct {
	Axiom ontology.Axiom
}

func (e *UnsupportedAxiomError) Error() string {
	return fmt.Sprintf("unsupported axiom: %s", e.Axiom)
}

func (e *UnsupportedAxiomError) Unwrap() error {
	return ErrUnsupportedAxiom
}

// Translator translates ontologies into clauses.
type Translator struct {
	Logger *zap.Logger

	// SkipUnsupported makes Translate log and skip axioms outside EL instead of failing.
	SkipUnsupported bool
}

// Translate returns the clauses for o. Declarations of every class and role
// come first, in the order they are first mentioned, followed by one or two
// facts per axiom.
//
//	A ⊑ B           sub(a, b).
//	A ⊓ ∃r.B ⊑ C    subs(and(a, exists(r, b)), c).
//	A ≡ B           sub(a, b). sub(b, a).
//	r ⊑ s           sub(r, s).
func (t *Translator) Translate(o *ontology.Ontology) ([]term.Clause, error) {
	logger := t.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := program{declared: map[string]struct{}{}}
	for _, a := range o.Axioms {
		switch a := a.(type) {
		case *ontology.Declaration:
			switch a.Kind {
			case ontology.EntityRole:
				p.role(ontology.Role(a.Name))
			default:
				p.concept(ontology.NamedConcept(a.Name))
			}
		case *ontology.GCIConstraint:
			p.subsumption(a.C, a.D)
		case *ontology.Equivalence:
			p.subsumption(a.C, a.D)
			p.subsumption(a.D, a.C)
		case *ontology.RoleInclusion:
			if len(a.LHS) != 1 {
				if err := t.unsupported(logger, a); err != nil {
					return nil, err
				}
				continue
			}
			p.facts = append(p.facts, formula.Fact(formula.Subsumption(p.role(a.LHS[0]), p.role(a.RHS))))
		default:
			if err := t.unsupported(logger, a); err != nil {
				return nil, err
			}
		}
	}

	ret := append(p.declarations, p.facts...)
	logger.Debug("translated ontology",
		zap.String("iri", o.IRI),
		zap.Int("axioms", len(o.Axioms)),
		zap.Int("declarations", len(p.declarations)),
		zap.Int("clauses", len(ret)),
	)
	return ret, nil
}

func (t *Translator) unsupported(logger *zap.Logger, a ontology.Axiom) error {
	if !t.SkipUnsupported {
		return &UnsupportedAxiomError{Axiom: a}
	}
	logger.Warn("skipping unsupported axiom", zap.Stringer("axiom", a))
	return nil
}

type program struct {
	declared     map[string]struct{}
	declarations []term.Clause
	facts        []term.Clause
}

func (p *program) declare(kind, name string, decl func(term.Term) term.Term) term.Term {
	a := Name(name)
	key := kind + "/" + string(a)
	if _, ok := p.declared[key]; !ok {
		p.declared[key] = struct{}{}
		p.declarations = append(p.declarations, formula.Fact(decl(a)))
	}
	return a
}

func (p *program) role(r ontology.Role) term.Term {
	return p.declare("role", string(r), formula.Role)
}

func (p *program) concept(c ontology.Concept) term.Term {
	switch c := c.(type) {
	case ontology.TopConcept:
		return formula.Top()
	case ontology.NamedConcept:
		return p.declare("con", string(c), formula.Concept)
	case *ontology.Conjunction:
		return formula.Conjunction(p.concept(c.C), p.concept(c.D))
	case *ontology.ExistentialConcept:
		r := p.role(c.R)
		return formula.Existential(r, p.concept(c.C))
	default:
		panic(fmt.Sprintf("unknown concept: %T", c))
	}
}

func (p *program) subsumption(sub, sup ontology.Concept) {
	s, t := p.concept(sub), p.concept(sup)
	if ontology.IsAtomic(sub) && ontology.IsAtomic(sup) {
		p.facts = append(p.facts, formula.Fact(formula.Subsumption(s, t)))
		return
	}
	p.facts = append(p.facts, formula.Fact(formula.SubsumptionSet(s, t)))
}

// Name returns the atom for an entity name. For IRIs, it is the part after
// the last '#' or, if there is none, after the last '/'.
func Name(iri string) term.Atom {
	name := iri
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		name = iri[i+1:]
	} else if i := strings.LastIndexByte(iri, '/'); i >= 0 {
		name = iri[i+1:]
	}
	if name == "" {
		name = iri
	}
	return term.NewAtom(name)
}

// Program returns the text of clauses, one per line.
func Program(clauses []term.Clause) string {
	var sb strings.Builder
	_ = term.WriteProgram(&sb, clauses, term.DefaultWriteOptions)
	return sb.String()
}

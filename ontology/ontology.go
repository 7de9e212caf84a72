// Package ontology is an in-memory model of the EL axioms a translation into clauses understands.
//
// Loading real ontology documents is left to other libraries; DecodeYAML reads a
// plain axiom listing instead.
package ontology

import (
	"fmt"
	"strings"
)

//// Concepts ////

// Concept is the interface for all concept definitions.
type Concept interface {
	fmt.Stringer
	concept()
}

// TopConcept is the Top concept ⊤.
type TopConcept struct{}

// Top is the only value of TopConcept anyone needs.
var Top = TopConcept{}

func (TopConcept) String() string {
	return "⊤"
}

// NamedConcept is a concept name A, usually an IRI.
type NamedConcept string

func (name NamedConcept) String() string {
	return string(name)
}

// Role is a role name r, usually an IRI.
type Role string

func (role Role) String() string {
	return string(role)
}

// Conjunction is a concept of the form C ⊓ D.
type Conjunction struct {
	C, D Concept
}

// NewConjunction returns a new conjunction given C and D.
func NewConjunction(c, d Concept) *Conjunction {
	return &Conjunction{C: c, D: d}
}

func (conjunction *Conjunction) String() string {
	return fmt.Sprintf("(%v ⊓ %v)", conjunction.C, conjunction.D)
}

// ExistentialConcept is a concept of the form ∃r.C.
type ExistentialConcept struct {
	R Role
	C Concept
}

// NewExistentialConcept returns a new existential concept of the form ∃r.C.
func NewExistentialConcept(r Role, c Concept) *ExistentialConcept {
	return &ExistentialConcept{R: r, C: c}
}

func (existential *ExistentialConcept) String() string {
	return fmt.Sprintf("∃ %v.%v", existential.R, existential.C)
}

func (TopConcept) concept()          {}
func (NamedConcept) concept()        {}
func (*Conjunction) concept()        {}
func (*ExistentialConcept) concept() {}

// IsAtomic checks if c is a concept name or ⊤.
func IsAtomic(c Concept) bool {
	switch c.(type) {
	case TopConcept, NamedConcept:
		return true
	default:
		return false
	}
}

//// Axioms ////

// Axiom is the interface for all axioms.
type Axiom interface {
	fmt.Stringer
	axiom()
}

// EntityKind tells declared classes and roles apart.
type EntityKind byte

const (
	// EntityClass is a declared concept name.
	EntityClass EntityKind = iota

	// EntityRole is a declared role name.
	EntityRole
)

func (k EntityKind) String() string {
	switch k {
	case EntityClass:
		return "class"
	case EntityRole:
		return "role"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Declaration declares Name as a class or a role.
type Declaration struct {
	Name string
	Kind EntityKind
}

func (d *Declaration) String() string {
	return fmt.Sprintf("Declaration(%s %s)", d.Kind, d.Name)
}

// GCIConstraint is a general concept inclusion of the form C ⊑ D.
type GCIConstraint struct {
	C, D Concept
}

// NewGCIConstraint returns a new general concept inclusion C ⊑ D.
func NewGCIConstraint(c, d Concept) *GCIConstraint {
	return &GCIConstraint{C: c, D: d}
}

func (gci *GCIConstraint) String() string {
	return fmt.Sprintf("%v ⊑ %v", gci.C, gci.D)
}

// Equivalence is a concept equivalence C ≡ D.
type Equivalence struct {
	C, D Concept
}

func (eq *Equivalence) String() string {
	return fmt.Sprintf("%v ≡ %v", eq.C, eq.D)
}

// RoleInclusion is a role inclusion of the form r1 o ... o rk ⊑ r.
type RoleInclusion struct {
	// LHS contains the left-hand side r1 o ... o rk.
	LHS []Role
	// RHS is the right-hand side r.
	RHS Role
}

// NewRoleInclusion returns a new role inclusion r1 o ... o rk ⊑ r.
func NewRoleInclusion(lhs []Role, rhs Role) *RoleInclusion {
	return &RoleInclusion{LHS: lhs, RHS: rhs}
}

func (ri *RoleInclusion) String() string {
	strs := make([]string, len(ri.LHS))
	for i, r := range ri.LHS {
		strs[i] = r.String()
	}
	return fmt.Sprintf("%s ⊑ %s", strings.Join(strs, " o "), ri.RHS)
}

// Unsupported is an axiom outside EL, kept verbatim.
type Unsupported struct {
	Text string
}

func (u *Unsupported) String() string {
	return u.Text
}

func (*Declaration) axiom()   {}
func (*GCIConstraint) axiom() {}
func (*Equivalence) axiom()   {}
func (*RoleInclusion) axiom() {}
func (*Unsupported) axiom()   {}

// Ontology is an IRI and its axioms in document order.
type Ontology struct {
	IRI    string
	Axioms []Axiom
}

// FilteredSuffix is appended to the IRI of a filtered ontology.
const FilteredSuffix = "-filtered"

// IsEL checks if a is an axiom the translation into clauses supports.
// Role chains are not supported, only r ⊑ s.
func IsEL(a Axiom) bool {
	switch a := a.(type) {
	case *Declaration, *GCIConstraint, *Equivalence:
		return true
	case *RoleInclusion:
		return len(a.LHS) == 1
	default:
		return false
	}
}

// Filter returns a new ontology with the axioms accepted by accept.
func Filter(o *Ontology, accept func(Axiom) bool) *Ontology {
	ret := Ontology{IRI: o.IRI + FilteredSuffix}
	for _, a := range o.Axioms {
		if accept(a) {
			ret.Axioms = append(ret.Axioms, a)
		}
	}
	return &ret
}

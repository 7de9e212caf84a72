package ontology

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidAxiom is wrapped by errors about malformed axiom listings.
var ErrInvalidAxiom = errors.New("invalid axiom")

// AxiomError is an error about a malformed entry of an axiom listing.
type AxiomError struct {
	Line   int
	Reason string
}

func (e *AxiomError) Error() string {
	return fmt.Sprintf("invalid axiom at line %d: %s", e.Line, e.Reason)
}

func (e *AxiomError) Unwrap() error {
	return ErrInvalidAxiom
}

func axiomError(n *yaml.Node, format string, args ...interface{}) error {
	return &AxiomError{Line: n.Line, Reason: fmt.Sprintf(format, args...)}
}

// Names which stand for ⊤ in axiom listings.
var topNames = map[string]struct{}{
	"top":       {},
	"owl:Thing": {},
	"⊤":         {},
}

// DecodeYAML reads an ontology from an axiom listing:
//
//	iri: http://example.org/onto
//	axioms:
//	  - declare: {class: A}
//	  - declare: {role: r}
//	  - subclass: {sub: A, sup: {and: [B, {exists: {role: r, filler: C}}]}}
//	  - equivalent: {left: A, right: B}
//	  - subrole: {sub: r, sup: s}
//	  - unsupported: DisjointClasses(A B)
//
// The sub side of subrole may be a list of roles which stands for a role chain.
// An empty listing is an empty ontology.
func DecodeYAML(r io.Reader) (*Ontology, error) {
	var doc struct {
		IRI    string      `yaml:"iri"`
		Axioms []axiomNode `yaml:"axioms"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Ontology{}, nil
		}
		return nil, fmt.Errorf("decode ontology: %w", err)
	}

	o := Ontology{IRI: doc.IRI, Axioms: make([]Axiom, len(doc.Axioms))}
	for i, a := range doc.Axioms {
		o.Axioms[i] = a.Axiom
	}
	return &o, nil
}

type axiomNode struct {
	Axiom
}

func (a *axiomNode) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return axiomError(n, "expected a mapping with a single key")
	}
	key, val := n.Content[0], n.Content[1]
	switch key.Value {
	case "declare":
		var d struct {
			Class string `yaml:"class"`
			Role  string `yaml:"role"`
		}
		if err := val.Decode(&d); err != nil {
			return err
		}
		switch {
		case d.Class != "" && d.Role == "":
			a.Axiom = &Declaration{Name: d.Class, Kind: EntityClass}
		case d.Role != "" && d.Class == "":
			a.Axiom = &Declaration{Name: d.Role, Kind: EntityRole}
		default:
			return axiomError(val, "declare needs exactly one of class or role")
		}
	case "subclass":
		var s struct {
			Sub conceptNode `yaml:"sub"`
			Sup conceptNode `yaml:"sup"`
		}
		if err := val.Decode(&s); err != nil {
			return err
		}
		if s.Sub.Concept == nil || s.Sup.Concept == nil {
			return axiomError(val, "subclass needs sub and sup")
		}
		a.Axiom = NewGCIConstraint(s.Sub.Concept, s.Sup.Concept)
	case "equivalent":
		var e struct {
			Left  conceptNode `yaml:"left"`
			Right conceptNode `yaml:"right"`
		}
		if err := val.Decode(&e); err != nil {
			return err
		}
		if e.Left.Concept == nil || e.Right.Concept == nil {
			return axiomError(val, "equivalent needs left and right")
		}
		a.Axiom = &Equivalence{C: e.Left.Concept, D: e.Right.Concept}
	case "subrole":
		var s struct {
			Sub roleChain `yaml:"sub"`
			Sup Role      `yaml:"sup"`
		}
		if err := val.Decode(&s); err != nil {
			return err
		}
		if len(s.Sub) == 0 || s.Sup == "" {
			return axiomError(val, "subrole needs sub and sup")
		}
		a.Axiom = NewRoleInclusion(s.Sub, s.Sup)
	case "unsupported":
		if val.Kind != yaml.ScalarNode {
			return axiomError(val, "unsupported takes the axiom text")
		}
		a.Axiom = &Unsupported{Text: val.Value}
	default:
		return axiomError(key, "unknown axiom %q", key.Value)
	}
	return nil
}

type conceptNode struct {
	Concept
}

func (c *conceptNode) UnmarshalYAML(n *yaml.Node) error {
	concept, err := decodeConcept(n)
	if err != nil {
		return err
	}
	c.Concept = concept
	return nil
}

func decodeConcept(n *yaml.Node) (Concept, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			return nil, axiomError(n, "empty concept name")
		}
		if _, ok := topNames[n.Value]; ok {
			return Top, nil
		}
		return NamedConcept(n.Value), nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, axiomError(n, "expected and or exists")
		}
		key, val := n.Content[0], n.Content[1]
		switch key.Value {
		case "and":
			if val.Kind != yaml.SequenceNode || len(val.Content) < 2 {
				return nil, axiomError(val, "and needs a list of at least two concepts")
			}
			var ret Concept
			for _, e := range val.Content {
				c, err := decodeConcept(e)
				if err != nil {
					return nil, err
				}
				if ret == nil {
					ret = c
					continue
				}
				ret = NewConjunction(ret, c)
			}
			return ret, nil
		case "exists":
			var e struct {
				Role   Role        `yaml:"role"`
				Filler conceptNode `yaml:"filler"`
			}
			if err := val.Decode(&e); err != nil {
				return nil, err
			}
			if e.Role == "" || e.Filler.Concept == nil {
				return nil, axiomError(val, "exists needs role and filler")
			}
			return NewExistentialConcept(e.Role, e.Filler.Concept), nil
		default:
			return nil, axiomError(key, "unknown concept constructor %q", key.Value)
		}
	default:
		return nil, axiomError(n, "expected a concept")
	}
}

type roleChain []Role

func (c *roleChain) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == "" {
			return axiomError(n, "empty role name")
		}
		*c = roleChain{Role(n.Value)}
		return nil
	case yaml.SequenceNode:
		var roles []Role
		if err := n.Decode(&roles); err != nil {
			return err
		}
		*c = roles
		return nil
	default:
		return axiomError(n, "expected a role or a list of roles")
	}
}

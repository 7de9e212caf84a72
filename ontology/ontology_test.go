package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcept_String(t *testing.T) {
	c := NewConjunction(NamedConcept("A"), NewExistentialConcept("r", Top))
	assert.Equal(t, "(A ⊓ ∃ r.⊤)", c.String())
	assert.True(t, IsAtomic(Top))
	assert.True(t, IsAtomic(NamedConcept("A")))
	assert.False(t, IsAtomic(c))
}

func TestAxiom_String(t *testing.T) {
	tests := []struct {
		axiom Axiom
		want  string
	}{
		{axiom: &Declaration{Name: "A", Kind: EntityClass}, want: "Declaration(class A)"},
		{axiom: &Declaration{Name: "r", Kind: EntityRole}, want: "Declaration(role r)"},
		{axiom: NewGCIConstraint(NamedConcept("A"), NamedConcept("B")), want: "A ⊑ B"},
		{axiom: &Equivalence{C: NamedConcept("A"), D: NamedConcept("B")}, want: "A ≡ B"},
		{axiom: NewRoleInclusion([]Role{"r", "s"}, "t"), want: "r o s ⊑ t"},
		{axiom: &Unsupported{Text: "DisjointClasses(A B)"}, want: "DisjointClasses(A B)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.axiom.String())
		})
	}
	assert.Equal(t, "unknown(7)", EntityKind(7).String())
}

func TestIsEL(t *testing.T) {
	assert.True(t, IsEL(&Declaration{Name: "A"}))
	assert.True(t, IsEL(NewGCIConstraint(Top, NamedConcept("A"))))
	assert.True(t, IsEL(&Equivalence{C: Top, D: Top}))
	assert.True(t, IsEL(NewRoleInclusion([]Role{"r"}, "s")))
	assert.False(t, IsEL(NewRoleInclusion([]Role{"r", "s"}, "t")))
	assert.False(t, IsEL(&Unsupported{Text: "x"}))
}

func TestFilter(t *testing.T) {
	o := &Ontology{
		IRI: "http://example.org/onto",
		Axioms: []Axiom{
			&Declaration{Name: "A"},
			&Unsupported{Text: "DisjointClasses(A B)"},
			NewRoleInclusion([]Role{"r", "s"}, "t"),
			NewGCIConstraint(NamedConcept("A"), Top),
		},
	}

	f := Filter(o, IsEL)
	assert.Equal(t, "http://example.org/onto-filtered", f.IRI)
	assert.Equal(t, []Axiom{o.Axioms[0], o.Axioms[3]}, f.Axioms)
	assert.Len(t, o.Axioms, 4)

	assert.Empty(t, Filter(o, func(Axiom) bool { return false }).Axioms)
}

func TestDecodeYAML(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		o, err := DecodeYAML(strings.NewReader(`
iri: http://example.org/onto
axioms:
  - declare: {class: A}
  - declare: {role: r}
  - subclass: {sub: A, sup: {and: [B, C, {exists: {role: r, filler: owl:Thing}}]}}
  - equivalent: {left: A, right: top}
  - subrole: {sub: r, sup: s}
  - subrole: {sub: [r, s], sup: t}
  - unsupported: DisjointClasses(A B)
`))
		require.NoError(t, err)
		assert.Equal(t, &Ontology{
			IRI: "http://example.org/onto",
			Axioms: []Axiom{
				&Declaration{Name: "A", Kind: EntityClass},
				&Declaration{Name: "r", Kind: EntityRole},
				NewGCIConstraint(
					NamedConcept("A"),
					NewConjunction(
						NewConjunction(NamedConcept("B"), NamedConcept("C")),
						NewExistentialConcept("r", Top),
					),
				),
				&Equivalence{C: NamedConcept("A"), D: Top},
				NewRoleInclusion([]Role{"r"}, "s"),
				NewRoleInclusion([]Role{"r", "s"}, "t"),
				&Unsupported{Text: "DisjointClasses(A B)"},
			},
		}, o)
	})

	t.Run("empty", func(t *testing.T) {
		o, err := DecodeYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, &Ontology{}, o)
	})

	errs := []struct {
		title string
		input string
	}{
		{title: "unknown axiom", input: "axioms:\n  - disjoint: {left: A, right: B}\n"},
		{title: "two keys", input: "axioms:\n  - {declare: {class: A}, subrole: {sub: r, sup: s}}\n"},
		{title: "declare both", input: "axioms:\n  - declare: {class: A, role: r}\n"},
		{title: "declare none", input: "axioms:\n  - declare: {}\n"},
		{title: "missing sup", input: "axioms:\n  - subclass: {sub: A}\n"},
		{title: "missing right", input: "axioms:\n  - equivalent: {left: A}\n"},
		{title: "single and", input: "axioms:\n  - subclass: {sub: {and: [A]}, sup: B}\n"},
		{title: "unknown constructor", input: "axioms:\n  - subclass: {sub: {or: [A, B]}, sup: B}\n"},
		{title: "exists without role", input: "axioms:\n  - subclass: {sub: {exists: {filler: A}}, sup: B}\n"},
		{title: "concept list", input: "axioms:\n  - subclass: {sub: [A, B], sup: B}\n"},
		{title: "empty subrole", input: "axioms:\n  - subrole: {sup: s}\n"},
		{title: "unsupported mapping", input: "axioms:\n  - unsupported: {a: b}\n"},
	}
	for _, tt := range errs {
		t.Run(tt.title, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidAxiom)
			var ae *AxiomError
			if assert.ErrorAs(t, err, &ae) {
				assert.Greater(t, ae.Line, 0)
			}
		})
	}

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeYAML(strings.NewReader("axioms: [\n"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidAxiom)
	})
}

func TestAxiomError_Error(t *testing.T) {
	err := &AxiomError{Line: 3, Reason: "empty role name"}
	assert.Equal(t, "invalid axiom at line 3: empty role name", err.Error())
}

package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-reasoner/born/syntax"
	"github.com/born-reasoner/born/term"
)

func TestConstructor(t *testing.T) {
	a, b := Constant("a"), Constant("b")

	tests := []struct {
		title   string
		term    term.Term
		functor term.Atom
		args    []term.Term
	}{
		{title: "concept", term: Concept(a), functor: "con", args: []term.Term{a}},
		{title: "role", term: Role(a), functor: "role", args: []term.Term{a}},
		{title: "subsumption", term: Subsumption(a, b), functor: "sub", args: []term.Term{a, b}},
		{title: "subsumption set", term: SubsumptionSet(a, b), functor: "subs", args: []term.Term{a, b}},
		{title: "conjunction", term: Conjunction(a, b), functor: "and", args: []term.Term{a, b}},
		{title: "existential", term: Existential(a, b), functor: "exists", args: []term.Term{a, b}},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			c, ok := tt.term.(*term.Compound)
			require.True(t, ok)
			assert.Equal(t, tt.functor, c.Functor)
			assert.Equal(t, tt.args, c.Args)
		})
	}

	t.Run("top", func(t *testing.T) {
		assert.Equal(t, term.Atom("top"), Top())
		assert.Equal(t, term.KindConstant, Top().Kind())
	})

	t.Run("no simplification", func(t *testing.T) {
		assert.Equal(t, "and(a, a)", Conjunction(a, a).String())
	})
}

func TestSubsumptionSet(t *testing.T) {
	c1, c2 := Constant("con1"), Constant("con2")
	sub, subs := Subsumption(c1, c2), SubsumptionSet(c1, c2)
	assert.Equal(t, "sub/2", sub.(*term.Compound).Indicator())
	assert.Equal(t, "subs/2", subs.(*term.Compound).Indicator())
	assert.False(t, term.Equal(sub, subs))
	assert.NotEqual(t, term.Hash(sub), term.Hash(subs))
}

func TestQuery(t *testing.T) {
	x, err := Var("X")
	require.NoError(t, err)

	for _, q := range []term.Term{Constant("a"), x, Subsumption(Constant("a"), x), Top()} {
		t.Run(q.String(), func(t *testing.T) {
			c := Query(q)
			assert.Empty(t, c.Body)
			assert.True(t, c.IsQuery())
			assert.True(t, term.Equal(Fun("query", q), c.Head))
		})
	}
}

func TestVar(t *testing.T) {
	_, err := Var("x")
	assert.ErrorIs(t, err, term.ErrInvalidVariableName)
}

func TestRule(t *testing.T) {
	x, _ := Var("X")
	c := Rule(Fun("p", x), Fun("q", x), Fun("r", x))
	assert.Equal(t, "p(X) :- q(X), r(X).", c.String())
	assert.True(t, Fact(Concept(Constant("a"))).IsFact())
}

func vocabulary() []term.Clause {
	a, b, r := Constant("a"), Constant("B"), Constant("has part")
	x, _ := Var("X")
	return []term.Clause{
		Fact(Top()),
		Fact(Concept(a)),
		Fact(Role(r)),
		Fact(Subsumption(a, b)),
		Fact(SubsumptionSet(Conjunction(a, Existential(r, Top())), b)),
		Rule(Subsumption(x, Top()), Concept(x)),
		Query(Subsumption(a, Existential(r, b))),
		Query(x),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, c := range vocabulary() {
		t.Run(c.String(), func(t *testing.T) {
			got, err := term.ParseClause(c.String())
			require.NoError(t, err)
			if diff := cmp.Diff(c, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	for _, c := range vocabulary() {
		t.Run(c.String(), func(t *testing.T) {
			first := syntax.TokenizeString(c.String())
			text := c.String()
			for i := 0; i < 3; i++ {
				again, err := term.ParseClause(text)
				require.NoError(t, err)
				text = again.String()
				assert.Equal(t, first, syntax.TokenizeString(text))
			}
		})
	}
}

package network

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-reasoner/born/term"
)

func TestVariables(t *testing.T) {
	vars, err := Variables(strings.NewReader(`% alarm network
0.3::burglary.
0.2::earthquake.
0.9::alarm :- burglary, earthquake.
0.8::alarm :- burglary, \+earthquake.
0.4::red ; 0.6::green.
1::sure.
calls(john) :- alarm, 0.5 < 1.
hears_alarm.
'Mary calls' :- alarm.
query(alarm).
evidence(calls(john), true).
`))
	require.NoError(t, err)

	type variable struct {
		name string
		prob string
		line int
	}
	want := []variable{
		{name: "burglary", prob: "0.3", line: 2},
		{name: "earthquake", prob: "0.2", line: 3},
		{name: "alarm", prob: "0.9", line: 4},
		{name: "red", prob: "0.4", line: 6},
		{name: "green", prob: "0.6", line: 6},
		{name: "sure", prob: "1", line: 7},
		{name: "calls(john)", line: 8},
		{name: "hears_alarm", line: 9},
		{name: "'Mary calls'", line: 10},
	}
	got := make([]variable, len(vars))
	for i, v := range vars {
		got[i] = variable{name: v.Name, line: v.Line}
		if v.Probability != nil {
			got[i].prob = v.Probability.String()
		}
	}
	assert.Equal(t, want, got)
}

func TestVariables_empty(t *testing.T) {
	vars, err := Variables(strings.NewReader("% nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestVariables_probability(t *testing.T) {
	for _, input := range []string{"1.5::a.", "2::a.", "0.5::b.\n1.01::a :- b."} {
		t.Run(input, func(t *testing.T) {
			_, err := Variables(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrInvalidProbability)
			var pe *ProbabilityError
			if assert.ErrorAs(t, err, &pe) {
				assert.Equal(t, "a", pe.Name)
			}
		})
	}

	t.Run("message", func(t *testing.T) {
		_, err := Variables(strings.NewReader("\n1.5::a."))
		assert.EqualError(t, err, "probability 1.5 of a at line 2 is not in [0, 1]")
	})

	t.Run("bounds", func(t *testing.T) {
		vars, err := Variables(strings.NewReader("0::a.\n1.0::b.\n0.0001::c."))
		require.NoError(t, err)
		assert.Len(t, vars, 3)
	})
}

func TestVariables_syntax(t *testing.T) {
	tests := []struct {
		title string
		input string
		eof   bool
	}{
		{title: "missing full stop", input: "0.3::a", eof: true},
		{title: "missing body end", input: "a :- b, c", eof: true},
		{title: "missing head", input: "0.3::", eof: true},
		{title: "single colon", input: "0.3:a."},
		{title: "bad head", input: "0.3::(a)."},
		{title: "garbage after head", input: "a b."},
		{title: "spaced decimal point", input: "0 .3::a."},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			_, err := Variables(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, term.ErrSyntax)
			if tt.eof {
				assert.ErrorIs(t, err, term.ErrUnexpectedEOF)
			}
		})
	}
}

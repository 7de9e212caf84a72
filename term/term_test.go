package term

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	a, b := Atom("a"), Atom("b")
	x := MustVariable("X")

	t.Run("reflexive", func(t *testing.T) {
		for _, t1 := range []Term{a, x, NewCompound("f", a, x), NewCompound("g", NewCompound("f", a))} {
			assert.True(t, Equal(t1, t1))
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		f1, f2 := NewCompound("f", a, b), NewCompound("f", a, b)
		assert.True(t, Equal(f1, f2))
		assert.True(t, Equal(f2, f1))
		assert.False(t, Equal(a, b))
		assert.False(t, Equal(b, a))
	})

	t.Run("arity", func(t *testing.T) {
		assert.False(t, Equal(NewCompound("f", a, b), NewCompound("f", a)))
		assert.False(t, Equal(NewCompound("f", a), NewCompound("f", a, b)))
	})

	t.Run("kind", func(t *testing.T) {
		assert.False(t, Equal(Atom("X"), x))
		assert.False(t, Equal(x, Atom("X")))
		assert.False(t, Equal(Atom("f"), NewCompound("f", a)))
	})

	t.Run("functor", func(t *testing.T) {
		assert.False(t, Equal(NewCompound("f", a), NewCompound("g", a)))
	})

	t.Run("arguments", func(t *testing.T) {
		assert.False(t, Equal(NewCompound("f", a, b), NewCompound("f", b, a)))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, Equal(nil, a))
		assert.False(t, Equal(a, nil))
	})
}

func TestHash(t *testing.T) {
	a, b := Atom("a"), Atom("b")
	assert.Equal(t, Hash(NewCompound("f", a, b)), Hash(NewCompound("f", a, b)))
	assert.NotEqual(t, Hash(NewCompound("f", a, b)), Hash(NewCompound("f", b, a)))
	assert.NotEqual(t, Hash(Atom("X")), Hash(MustVariable("X")))
	assert.NotEqual(t, Hash(NewCompound("f", NewCompound("g", a), b)), Hash(NewCompound("f", NewCompound("g", a, b))))
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindVariable, MustVariable("X").Kind())
	assert.Equal(t, KindConstant, Atom("a").Kind())
	assert.Equal(t, KindCompound, NewCompound("f", Atom("a")).Kind())
	assert.Equal(t, KindConstant, NewCompound("f").Kind())

	assert.Equal(t, "variable", KindVariable.String())
	assert.Equal(t, "constant", KindConstant.String())
	assert.Equal(t, "compound", KindCompound.String())
	assert.Equal(t, "unknown(9)", Kind(9).String())
}

func TestVariables(t *testing.T) {
	x, y := MustVariable("X"), MustVariable("Y")
	assert.Equal(t, []Variable{x, y}, Variables(NewCompound("f", x, NewCompound("g", y, x))))
	assert.Empty(t, Variables(Atom("a")))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, NewCompound("sub", Atom("A"), Atom("b")), WriteOptions{}))
	assert.Equal(t, "sub(A, b)", buf.String())
}

package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Precedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":   "(1 + (2 * 3))",
		"(1 + 2) * 3": "((1 + 2) * 3)",
		"-x^2":        "-(x ^ 2)",
		"2^3^2":       "(2 ^ (3 ^ 2))",
		"2**-1":       "(2 ^ -1)",
		"x % 3 - 1":   "((x % 3) - 1)",
		"sin(x)/x":    "(sin(x) / x)",
		"1.5e3 * x":   "(1500 * x)",
	}
	for src, want := range cases {
		e, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, e.String(), src)
	}
}

func TestParse_Rejects(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"__import__('os')",
		"y + 1",
		"pi * x",
		"sin x",
		"sin(x",
		"(x + 1",
		"x + ",
		"x 2",
		"2x",
		"x; 1",
		"x == 1",
		"1..2",
		"abs(x)",
		"lambda: 1",
		"x[0]",
	}
	for _, src := range bad {
		_, err := Parse(src)
		assert.Error(t, err, "%q should not parse", src)
	}
}

func TestParse_Limits(t *testing.T) {
	_, err := Parse(strings.Repeat("x+", MaxLength) + "x")
	assert.ErrorContains(t, err, "longer than")

	deep := strings.Repeat("(", MaxDepth+1) + "x" + strings.Repeat(")", MaxDepth+1)
	_, err = Parse(deep)
	assert.ErrorContains(t, err, "nested deeper")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParse_KeepsSource(t *testing.T) {
	e := MustParse("x ^ 2")
	assert.Equal(t, "x ^ 2", e.Source())
	assert.Equal(t, Binary{Op: '^', Left: Variable{}, Right: Number{Value: 2}}, e.Root())
}

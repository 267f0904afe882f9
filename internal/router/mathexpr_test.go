// In file: internal/router/mathexpr_test.go
package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMathExpr(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"what is five plus three", "5+3"},
		{"10 to the power of 2", "10**2"},
		{"2 raised to the power of 8", "2**8"},
		{"seven times six", "7*6"},
		{"100 divided by 4", "100/4"},
		{"twelve divide by three", "12/3"},
		{"15 mod 4", "15%4"},
		{"20 modulo 6", "20%6"},
		{"9 squared", "9**2"},
		{"3 cubed", "3**3"},
		{"what's 4 multiplied by 5", "4*5"},
		{"open parenthesis 1 plus 2 close parenthesis times 3", "(1+2)*3"},
		{"calculate 6 minus 2", "6-2"},
		{"3 加 5", "3+5"},
		{"10 除以 2", "10/2"},
		{"8 all over 2", "8/2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeMathExpr(tc.in), "input: %s", tc.in)
	}
}

func TestNormalizeMathExprSquaredDoesNotDoubleOperators(t *testing.T) {
	// "to the power of" followed by "plus"-style noise must not leave "**+".
	got := NormalizeMathExpr("2 to the power of plus 3")
	assert.NotContains(t, got, "**+")
}

func TestNormalizeMathExprCollapsesDuplicateOperators(t *testing.T) {
	// Noise substitution can produce doubled operators; runs of + - /
	// collapse to one, while "**" stays intact.
	assert.Equal(t, "1+2", NormalizeMathExpr("1 plus plus 2"))
	assert.Equal(t, "9-4", NormalizeMathExpr("9 minus minus 4"))
	assert.Equal(t, "4**2", NormalizeMathExpr("4 to the power of 2"))
}

func TestNormalizeMathExprIsTotal(t *testing.T) {
	// Any input yields some string, possibly empty or operator-free.
	for _, in := range []string{
		"",
		"hello there",
		"what is the meaning of life",
		"!!!###$$$",
		"天气怎么样",
	} {
		assert.NotPanics(t, func() {
			_ = NormalizeMathExpr(in)
		})
	}
	assert.Equal(t, "", NormalizeMathExpr("hello there"))
}

func TestNormalizeMathExprWordBoundaries(t *testing.T) {
	// "one" inside "someone" and "ten" inside "often" must not be touched.
	assert.Equal(t, "", NormalizeMathExpr("someone often says hello"))
}

func TestHasMathOperator(t *testing.T) {
	assert.True(t, HasMathOperator("5+3"))
	assert.True(t, HasMathOperator("10**2"))
	assert.True(t, HasMathOperator("15%4"))
	assert.False(t, HasMathOperator("523"))
	assert.False(t, HasMathOperator(""))
	assert.False(t, HasMathOperator("()"))
}

func TestNormalizeMathExprOnlyMathCharacters(t *testing.T) {
	got := NormalizeMathExpr("what is five plus three")
	assert.Regexp(t, `^[0-9.+\-*/%()]*$`, got)
}

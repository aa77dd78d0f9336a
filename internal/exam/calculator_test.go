package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	cases := map[string]float64{
		"1 + 2":              3,
		"2 * (3 + 4)":        14,
		"-5 + 10":            5,
		"12600 / 60":         210,
		"0.25 * 400":         100,
		"  (1000 - 250) * 2": 1500,
	}
	for expr, want := range cases {
		got, err := Evaluate(expr)
		require.NoError(t, err, expr)
		assert.InDelta(t, want, got, 1e-9, expr)
	}
}

func TestEvaluateRejectsNonArithmetic(t *testing.T) {
	for _, expr := range []string{"", "os.Exit(1)", "x + 1", `"a" + "b"`, "1 % 2", "1 << 3", "func() {}"} {
		_, err := Evaluate(expr)
		assert.ErrorIs(t, err, ErrInvalidExpression, expr)
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := Evaluate("4 / (2 - 2)")
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestEvaluateRejectsOverflow(t *testing.T) {
	_, err := Evaluate("1e308 * 10")
	assert.ErrorIs(t, err, ErrInvalidExpression)
}

package expr

import (
	"math/big"
	"testing"

	"github.com/jsphweid/scoretool/model"
	"github.com/stretchr/testify/assert"
)

func TestEvalNumericPassthrough(t *testing.T) {
	assert := assert.New(t)

	r, err := Eval(9)
	assert.NoError(err)
	assert.Equal("9", r.RatString())

	r, err = Eval(9.5)
	assert.NoError(err)
	assert.Equal(9.5, ToFloat64(r))
}

func TestEvalSimpleFraction(t *testing.T) {
	r, err := Eval("1/3")
	assert.NoError(t, err)
	assert.Equal(t, big.NewRat(1, 3).RatString(), r.RatString())
}

func TestEvalRoundTripLaw(t *testing.T) {
	// "9 + 1/3" * 480 == 4480 exactly, no floating-point drift.
	r, err := Eval("9 + 1/3")
	assert.NoError(t, err)

	ticks := new(big.Rat).Mul(r, big.NewRat(480, 1))
	assert.True(t, ticks.IsInt())
	assert.Equal(t, "4480", ticks.RatString())
}

func TestEvalPrecedenceAndAssociativity(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":     "7",
		"(1 + 2) * 3":   "9",
		"10 - 2 - 3":    "5",
		"10 / 2 / 5":    "1",
		"-3 + 5":        "2",
		"-2 * -(1 + 1)": "4",
		"  1   +   1 ":  "2",
		"1.5 + 0.5":     "2",
	}
	for input, want := range cases {
		r, err := Eval(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, r.RatString(), input)
	}
}

func TestEvalRejectsNegativeResult(t *testing.T) {
	_, err := Eval("-(3 + 1)")
	assert.Error(t, err)
	e, ok := model.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, model.CodeMalformedExpression, e.Code)
}

func TestEvalRejectsDivisionByZero(t *testing.T) {
	_, err := Eval("1/0")
	assert.Error(t, err)
	e, ok := model.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, model.CodeMalformedExpression, e.Code)
}

func TestEvalRejectsUnknownTokens(t *testing.T) {
	for _, bad := range []string{"1 + ", "abc", "1 ** 2", "1 + (2", "1)2"} {
		_, err := Eval(bad)
		assert.Error(t, err, bad)
	}
}

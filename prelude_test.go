package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_prelude(t *testing.T) {
	toks, err := Lex("prelude", prelude)
	require.NoError(t, err, "the prelude must lex")
	assert.False(t, pending(prelude), "every prelude definition is closed")
	assert.NotEmpty(t, toks)

	var testCases vmTestCases
	withPrelude := func(name, src string) vmTestCase {
		return vmTest(name).withOptions(WithPrelude(true)).withSource("t", src)
	}
	testCases = append(testCases,
		withPrelude("nip", `1 2 nip`).expectStack(num("1")).expectWord("nip", sym("swap"), sym("drop")),
		withPrelude("tuck", `1 2 tuck`).expectStack(num("2"), num("1"), num("2")),
		withPrelude("dup2", `1 2 dup2`).expectStack(num("1"), num("2"), num("1"), num("2")),
		withPrelude("drop2", `1 2 3 drop2`).expectStack(num("1")),
		withPrelude("negate", `5 negate`).expectStack(num("-5")),
		withPrelude("square", `-3 square`).expectStack(num("9")),
		withPrelude("inc dec", `1 inc inc dec`).expectStack(num("2")),
		withPrelude("output", `1 .. 2 print space 3 print cr`).expectOutput("1\n2\n 3\n\n"),
		withPrelude("redefine", `: square 0 ; 4 square`).expectStack(num("4"), num("0")),
		withPrelude("errors point at the source", `nip`).
			expectError(ErrStackUnderflow).
			expectErrorString(`t:1:1: in nip: stack underflow "swap"`),
		vmTest("without prelude").withSource("t", `1 2 nip`).expectError(ErrNameNotFound),
	)
	testCases.run(t)
}

func Test_prelude_dictionary(t *testing.T) {
	vm, err := Eval(context.Background(), "t", ``, nil, WithPrelude(true))
	require.NoError(t, err)
	defined := strings.Count(prelude, ":")
	assert.Equal(t, len(builtins)+defined, vm.dict.Len())
}

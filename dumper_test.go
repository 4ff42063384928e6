package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_vmDumper(t *testing.T) {
	var out strings.Builder
	vm, err := Eval(context.Background(), "t", `: double dup + ; 42 constant answer 1 text words`, &out)
	require.NoError(t, err)

	dump := out.String()
	assert.True(t, strings.HasPrefix(dump, "<dict:19>\n"), "expected dict header in %q", dump)
	assert.Contains(t, dump, "\tdouble = <vector:double> execute\n\t\t0: <symbol:dup>\n\t\t1: <symbol:+>\n")
	assert.Contains(t, dump, "\tanswer = <number:42> data\n")
	assert.Contains(t, dump, "\t: = <native::> execute,immediate\n")
	assert.Contains(t, dump, "\t? = <native:?> execute\n")

	out.Reset()
	vmDumper{vm: vm, out: &out}.dumpStack()
	assert.Equal(t, "<stack:1>\n\t0: <text:1>\n", out.String())
}

func TestVM_Snapshot(t *testing.T) {
	vm, err := Eval(context.Background(), "t", `: double dup + ; : r r ; 3 double 1 text`, nil)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{
		Stack: []string{"<number:6>", "<text:1>"},
		Words: map[string][]string{
			"double": {"<symbol:dup>", "<symbol:+>"},
			"r":      {"<symbol:r>"},
		},
	}, vm.Snapshot())

	vm, err = Eval(context.Background(), "t", ``, nil)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Stack: []string{}}, vm.Snapshot())
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/ponyatov/cons/internal/logio"
)

func runMainTest(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = runMain(context.Background(), logio.New(&errOut), &out, args)
	return code, out.String(), errOut.String()
}

func Test_runMain(t *testing.T) {
	good := writeFile(t, "good.fs", ": double dup + ;\n21 double print\n")
	bad := writeFile(t, "bad.fs", "1 print bogus\n")

	code, out, errOut := runMainTest("run", good)
	assert.Equal(t, 0, code)
	assert.Equal(t, "42\n", out)
	assert.Equal(t, "", errOut)

	code, out, errOut = runMainTest("run", "-workers", "1", good, bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, good+": 42\n", "multiple files are labeled")
	assert.Contains(t, out, bad+": 1\n")
	assert.Contains(t, errOut, `ERROR: `+bad+`:1:9: name not found "bogus"`)

	code, _, errOut = runMainTest("run", good+".missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "ERROR: open ")

	code, out, _ = runMainTest("help")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "usage: cons"))

	code, _, errOut = runMainTest("bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "bogus"`)

	code, _, _ = runMainTest()
	assert.Equal(t, 2, code)

	code, _, errOut = runMainTest("run")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "no files to run")

	code, _, errOut = runMainTest("watch", good, bad)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "exactly one file")
}

func Test_runMain_yaml(t *testing.T) {
	src := writeFile(t, "s.fs", ": sq dup mul ; 3 sq 1 print")
	code, out, _ := runMainTest("run", "-format", "yaml", src)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "---\n"), "expected a yaml document in %q", out)

	var doc struct {
		Name   string              `yaml:"name"`
		Output string              `yaml:"output"`
		Stack  []string            `yaml:"stack"`
		Words  map[string][]string `yaml:"words"`
		Error  string              `yaml:"error"`
	}
	if assert.NoError(t, yaml.Unmarshal([]byte(out), &doc)) {
		assert.Equal(t, src, doc.Name)
		assert.Equal(t, "1\n", doc.Output)
		assert.Equal(t, []string{"<number:9>"}, doc.Stack)
		assert.Equal(t, map[string][]string{"sq": {"<symbol:dup>", "<symbol:mul>"}}, doc.Words)
		assert.Equal(t, "", doc.Error)
	}
}

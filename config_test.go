package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponyatov/cons/internal/logio"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	cfg, rest, err := parseConfig("run", []string{"a.fs", "b.fs"})
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, []string{"a.fs", "b.fs"}, rest)

	cfg, _, err = parseConfig("run", []string{"-workers", "3", "-fold-case", "-timeout", "2s"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.FoldCase)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	cfg, _, err = parseConfig("repl", []string{"-transcript", "session.log", "-trace"})
	require.NoError(t, err)
	assert.Equal(t, "session.log", cfg.Transcript)
	assert.True(t, cfg.Trace)

	path := writeFile(t, "cons.yaml", `
prompt: "> "
workers: 4
ret_limit: 10
fold_case: true
timeout: 250ms
format: yaml
`)
	cfg, rest, err = parseConfig("run", []string{"-config", path, "-workers", "8", "x.fs"})
	require.NoError(t, err)
	assert.Equal(t, Config{
		Prompt:   "> ",
		History:  ".cons_history",
		Workers:  8,
		RetLimit: 10,
		FoldCase: true,
		Timeout:  250 * time.Millisecond,
		Format:   "yaml",
	}, cfg, "flags win over the file, the file over defaults")
	assert.Equal(t, []string{"x.fs"}, rest)
}

func TestParseConfig_errors(t *testing.T) {
	_, _, err := parseConfig("run", []string{"-format", "xml"})
	assert.EqualError(t, err, `invalid report format "xml"`)

	_, _, err = parseConfig("run", []string{"-workers", "-1"})
	assert.EqualError(t, err, `invalid worker count -1`)

	_, _, err = parseConfig("run", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "workers: [nope\n")
	_, _, err = parseConfig("run", []string{"-config", path})
	assert.Error(t, err)
}

func TestConfig_vmOptions(t *testing.T) {
	log := logio.New(nil)
	cfg := defaultConfig()
	assert.Len(t, cfg.vmOptions(log), 3)
	cfg.Trace = true
	assert.Len(t, cfg.vmOptions(log), 4)
	assert.Len(t, cfg.vmOptions(nil), 3, "no trace without a logger")

	cfg = Config{FoldCase: true, RetLimit: 5, Prelude: true}
	vm := New(cfg.vmOptions(nil)...)
	assert.True(t, vm.dict.FoldCase)
	assert.True(t, vm.prelude)
	assert.Equal(t, 5, vm.retLimit)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponyatov/cons/internal/logio"
)

func Test_pending(t *testing.T) {
	for _, tc := range []struct {
		src  string
		more bool
	}{
		{"", false},
		{"1 2 +", false},
		{": double", true},
		{":", true},
		{": double dup + ;", false},
		{": double dup\n+ ;", false},
		{": ; ", true},
		{"1 ( a comment", true},
		{"1 ( a comment )", false},
		{"1 @", false},
		{"; ;", false},
	} {
		assert.Equal(t, tc.more, pending(tc.src), "pending(%q)", tc.src)
	}
}

func Test_replEval(t *testing.T) {
	ctx := context.Background()
	cfg := defaultConfig()

	var out, transcript strings.Builder
	opts := []VMOption{WithTee(&transcript)}
	require.NoError(t, replEval(ctx, &out, cfg, Snippet{Name: "repl:1", Source: `1 print`}, opts))
	require.NoError(t, replEval(ctx, &out, cfg, Snippet{Name: "repl:2", Source: `2 print bogus`}, opts))
	assert.Equal(t, "1\n2\nERROR: repl:2:9: name not found \"bogus\"\n", out.String())
	assert.Equal(t, "1\n2\n", transcript.String(), "the transcript gets run output only")

	assert.ErrorIs(t, replEval(ctx, failWriter{}, cfg, Snippet{Name: "repl:3", Source: `3 print`}, nil), errWriteFailed)
}

func Test_replEval_trace(t *testing.T) {
	var logged bytes.Buffer
	log := logio.New(&logged)
	cfg := defaultConfig()
	cfg.Trace = true

	var out strings.Builder
	require.NoError(t, replEval(context.Background(), &out, cfg, Snippet{Name: "repl:1", Source: `1 dup`}, cfg.vmOptions(log)))
	assert.Contains(t, logged.String(), "TRACE")
	assert.Contains(t, logged.String(), `"dup"`)
}

var errWriteFailed = errors.New("write failed")

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errWriteFailed }

package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_watchFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	path := writeFile(t, "w.fs", "1 print")
	reports := make(chan Report, 16)
	con := NewConsole(1, func(rep Report) { reports <- rep })

	watched := make(chan error, 1)
	go func() { watched <- watchFile(ctx, path, con) }()

	next := func() Report {
		select {
		case rep := <-reports:
			return rep
		case <-ctx.Done():
			require.FailNow(t, "timed out waiting for a report")
			return Report{}
		}
	}

	rep := next()
	assert.NoError(t, rep.Err)
	assert.Equal(t, "1\n", rep.Output, "runs once at start")

	require.NoError(t, os.WriteFile(path, []byte(": two 2 ; two print"), 0o644))
	for rep = next(); rep.Output != "2\n"; rep = next() {
		// runs may observe a partially written file first
	}
	assert.NoError(t, rep.Err)
	assert.Equal(t, "2\n", rep.Output, "runs again after a write")

	cancel()
	assert.NoError(t, <-watched)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snippet is one source text submitted for an isolated run.
type Snippet struct {
	Name   string
	Source string
}

// Report is everything one run hands back: its printed output, final state,
// and failure if any.
type Report struct {
	Name     string        `yaml:"name"`
	Output   string        `yaml:"output,omitempty"`
	Snapshot Snapshot      `yaml:",inline"`
	Error    string        `yaml:"error,omitempty"`
	Elapsed  time.Duration `yaml:"-"`

	Err error `yaml:"-"`
}

// Exec runs one snippet in a fresh VM built from opts.
func Exec(ctx context.Context, snip Snippet, opts ...VMOption) Report {
	var out bytes.Buffer
	start := time.Now()
	vm, err := Eval(ctx, snip.Name, snip.Source, &out, opts...)
	rep := Report{
		Name:     snip.Name,
		Output:   out.String(),
		Snapshot: vm.Snapshot(),
		Elapsed:  time.Since(start),
		Err:      err,
	}
	if err != nil {
		rep.Error = err.Error()
	}
	return rep
}

// Console feeds submitted snippets to a pool of isolated runs. Each run gets
// its own VM; nothing is shared between them.
type Console struct {
	// Timeout bounds each run when positive.
	Timeout time.Duration

	workers int
	opts    []VMOption
	sink    func(Report)

	queue     chan Snippet
	done      chan struct{}
	closeOnce sync.Once
	sinkMu    sync.Mutex
}

// ErrConsoleClosed is returned by Submit after Close.
var ErrConsoleClosed = errors.New("console closed")

// NewConsole returns a console running at most workers snippets at once
// (0 means no limit), passing every report to sink; opts apply to every VM.
func NewConsole(workers int, sink func(Report), opts ...VMOption) *Console {
	return &Console{
		workers: workers,
		opts:    opts,
		sink:    sink,
		queue:   make(chan Snippet),
		done:    make(chan struct{}),
	}
}

// Submit queues a snippet, blocking until a Serve loop takes it, ctx is done,
// or the console is closed.
func (con *Console) Submit(ctx context.Context, snip Snippet) error {
	select {
	case <-con.done:
		return ErrConsoleClosed
	default:
	}
	select {
	case con.queue <- snip:
		return nil
	case <-con.done:
		return ErrConsoleClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting snippets, releasing any blocked Submit; Serve returns
// once the runs it already took finish.
func (con *Console) Close() {
	con.closeOnce.Do(func() { close(con.done) })
}

// Serve runs snippets until Close, or ctx is done.
func (con *Console) Serve(ctx context.Context) error {
	var eg errgroup.Group
	if con.workers > 0 {
		eg.SetLimit(con.workers)
	}
	for {
		select {
		case <-ctx.Done():
			eg.Wait()
			return ctx.Err()
		case <-con.done:
			return eg.Wait()
		case snip := <-con.queue:
			eg.Go(func() error {
				con.report(con.exec(ctx, snip))
				return nil
			})
		}
	}
}

func (con *Console) exec(ctx context.Context, snip Snippet) Report {
	if con.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, con.Timeout)
		defer cancel()
	}
	return Exec(ctx, snip, con.opts...)
}

func (con *Console) report(rep Report) {
	if con.sink == nil {
		return
	}
	con.sinkMu.Lock()
	defer con.sinkMu.Unlock()
	con.sink(rep)
}

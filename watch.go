package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ponyatov/cons/internal/logio"
)

// editors often write a file in several steps; runs wait for this much quiet
const watchSettle = 50 * time.Millisecond

func cmdWatch(ctx context.Context, log *logio.Logger, stdout io.Writer, args []string) error {
	cfg, files, err := parseConfig("watch", args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(files) != 1 {
		return fmt.Errorf("%w: watch takes exactly one file", errUsage)
	}

	con := NewConsole(1, reportTo(log, stdout, cfg.Format, false), cfg.vmOptions(log)...)
	con.Timeout = cfg.Timeout
	return watchFile(ctx, files[0], con)
}

// watchFile submits the file's content to con once at start and again after
// every write, until ctx is done.
func watchFile(ctx context.Context, path string, con *Console) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// watch the directory, as editors may replace the file on save
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- con.Serve(ctx) }()
	defer func() {
		con.Close()
		<-served
	}()

	submit := func() error {
		src, err := os.ReadFile(path)
		if err != nil {
			con.report(Report{Name: path, Error: err.Error(), Err: err})
			return nil
		}
		err = con.Submit(ctx, Snippet{Name: path, Source: string(src)})
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if err := submit(); err != nil {
		return err
	}

	settle := time.NewTimer(watchSettle)
	settle.Stop()
	defer settle.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == path && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				settle.Reset(watchSettle)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err

		case <-settle.C:
			if err := submit(); err != nil {
				return err
			}
		}
	}
}

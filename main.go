package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ponyatov/cons/internal/logio"
)

const usage = `usage: cons <command> [flags] [args]

commands:
  run [flags] file...   run each file in its own interpreter
  repl [flags]          read and run lines interactively
  watch [flags] file    run file again whenever it is written

common flags:
  -config file   YAML file with defaults for the flags below
  -workers n     concurrent runs (run), 0 for no limit
  -ret-limit n   return stack depth limit, 0 for none
  -fold-case     retry failed lookups ignoring case
  -prelude       define the prelude words (nip tuck square cr ...) first
  -trace         log every token, definition, and call to stderr
  -timeout d     time limit for each run
  -format f      report format: text or yaml
  -transcript f  repl: append all output to file f
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log := logio.New(os.Stderr)
	os.Exit(runMain(ctx, log, os.Stdout, os.Args[1:]))
}

func runMain(ctx context.Context, log *logio.Logger, stdout io.Writer, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return 2
	}
	var err error
	switch cmd, args := args[0], args[1:]; cmd {
	case "run":
		err = cmdRun(ctx, log, stdout, args)
	case "repl":
		err = cmdRepl(ctx, log, stdout, args)
	case "watch":
		err = cmdWatch(ctx, log, stdout, args)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if errors.Is(err, errUsage) {
		log.Errorf("%v", err)
		fmt.Fprint(stdout, usage)
		return 2
	}
	log.ErrorIf(err)
	return log.ExitCode()
}

func cmdRun(ctx context.Context, log *logio.Logger, stdout io.Writer, args []string) error {
	cfg, files, err := parseConfig("run", args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no files to run", errUsage)
	}

	con := NewConsole(cfg.Workers, reportTo(log, stdout, cfg.Format, len(files) > 1), cfg.vmOptions(log)...)
	con.Timeout = cfg.Timeout

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return con.Serve(ctx) })
	eg.Go(func() error {
		defer con.Close()
		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				log.Errorf("%v", err)
				continue
			}
			if err := con.Submit(ctx, Snippet{Name: file, Source: string(src)}); err != nil {
				return err
			}
		}
		return nil
	})
	return eg.Wait()
}

// reportTo returns a report sink writing to out, logging run failures. Text
// output of labeled reports has every line prefixed by the snippet name.
func reportTo(log *logio.Logger, out io.Writer, format string, label bool) func(Report) {
	return func(rep Report) {
		if label && format == "text" {
			lw := &logio.Writer{
				Prefix: rep.Name + ": ",
				Logf:   func(mess string, args ...interface{}) { fmt.Fprintf(out, mess+"\n", args...) },
			}
			log.ErrorIf(writeReport(lw, format, rep))
			log.ErrorIf(lw.Close())
		} else {
			log.ErrorIf(writeReport(out, format, rep))
		}
		if rep.Err != nil {
			log.Errorf("%v", rep.Err)
		}
	}
}

func writeReport(w io.Writer, format string, rep Report) error {
	switch format {
	case "yaml":
		buf, err := yaml.Marshal(rep)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		_, err = w.Write(buf)
		return err
	default:
		_, err := io.WriteString(w, rep.Output)
		return err
	}
}

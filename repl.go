package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/ponyatov/cons/internal/logio"
)

const (
	replBanner = "cons console; each entry runs in a fresh interpreter.\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands."
	replHelp   = `commands:
  :quit    exit
  :help    show this text
words:
  .  clear stack     ?  show stack     : name ... ;  define a word
  dup drop swap over + - mul div  text print emit constant words
  with -prelude: nip tuck dup2 drop2 negate square inc dec cr space ..
`
	replCont = "... "
)

func cmdRepl(ctx context.Context, log *logio.Logger, stdout io.Writer, args []string) error {
	cfg, _, err := parseConfig("repl", args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	opts := cfg.vmOptions(log)
	if cfg.Transcript != "" {
		f, err := os.OpenFile(cfg.Transcript, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, WithTee(f))
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.History
	if histPath != "" && !filepath.IsAbs(histPath) {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, histPath)
		}
	}
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(stdout, replBanner)
loop:
	for n := 1; ctx.Err() == nil; {
		src, err := readEntry(ln, cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if err == io.EOF {
			fmt.Fprintln(stdout)
			break loop
		} else if err != nil {
			return err
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			break loop
		case ":help":
			fmt.Fprint(stdout, replHelp)
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		log.ErrorIf(replEval(ctx, stdout, cfg, Snippet{Name: fmt.Sprintf("repl:%d", n), Source: src}, opts))
		n++
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

// replEval runs one entry and writes its report, returning only failures to
// write; a failed run is shown inline.
func replEval(ctx context.Context, w io.Writer, cfg Config, snip Snippet, opts []VMOption) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	rep := Exec(ctx, snip, opts...)
	if err := writeReport(w, cfg.Format, rep); err != nil {
		return err
	}
	if rep.Err != nil {
		_, err := fmt.Fprintf(w, "ERROR: %v\n", rep.Err)
		return err
	}
	return nil
}

// readEntry reads lines until they form a complete entry.
func readEntry(ln *liner.State, prompt string) (string, error) {
	var sb strings.Builder
	for p := prompt; ; p = replCont {
		line, err := ln.Prompt(p)
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		if !pending(sb.String()) {
			return sb.String(), nil
		}
	}
}

// pending reports whether src stops inside a definition or a ( comment, so
// that the repl should keep reading lines.
func pending(src string) bool {
	lex := NewLexer("", src)
	open, naming := false, false
	for {
		tok, err := lex.Next()
		if err == io.EOF {
			return open || naming
		} else if err != nil {
			var te *TokenError
			return errors.As(err, &te) && strings.HasPrefix(te.Token.Text, "(")
		}
		switch {
		case naming:
			naming = false
		case tok.Text == ":":
			open, naming = true, true
		case tok.Text == ";":
			open = false
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ponyatov/cons/internal/logio"
)

// Config holds the front end settings; any of them may come from a YAML file
// named by -config, with explicit flags taking precedence.
type Config struct {
	Prompt   string        `yaml:"prompt"`
	History  string        `yaml:"history"`
	Workers  int           `yaml:"workers"`
	RetLimit int           `yaml:"ret_limit"`
	FoldCase bool          `yaml:"fold_case"`
	Prelude  bool          `yaml:"prelude"`
	Trace    bool          `yaml:"trace"`
	Timeout  time.Duration `yaml:"timeout"`
	Format   string        `yaml:"format"`

	Transcript string `yaml:"transcript"`
}

func defaultConfig() Config {
	return Config{
		Prompt:   "ok> ",
		History:  ".cons_history",
		RetLimit: 1 << 16,
		Format:   "text",
	}
}

func (cfg *Config) bind(fs *flag.FlagSet) {
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "repl prompt")
	fs.StringVar(&cfg.History, "history", cfg.History, "repl history file, relative to $HOME")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent runs, 0 for no limit")
	fs.IntVar(&cfg.RetLimit, "ret-limit", cfg.RetLimit, "return stack depth limit, 0 for none")
	fs.BoolVar(&cfg.FoldCase, "fold-case", cfg.FoldCase, "retry failed lookups ignoring case")
	fs.BoolVar(&cfg.Prelude, "prelude", cfg.Prelude, "define the prelude words before each run")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "enable trace logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "time limit for each run")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "report format: text or yaml")
	fs.StringVar(&cfg.Transcript, "transcript", cfg.Transcript, "repl: append all output to this file")
}

func (cfg *Config) load(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

func (cfg Config) validate() error {
	switch cfg.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid report format %q", cfg.Format)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("invalid worker count %v", cfg.Workers)
	}
	return nil
}

// parseConfig parses args for the named subcommand. When -config is given,
// args are parsed a second time over the loaded file so that flags win.
func parseConfig(name string, args []string) (Config, []string, error) {
	var path string
	newFlags := func(cfg *Config) *flag.FlagSet {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.StringVar(&path, "config", path, "YAML config file")
		cfg.bind(fs)
		return fs
	}

	cfg := defaultConfig()
	fs := newFlags(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	if path != "" {
		cfg = defaultConfig()
		if err := cfg.load(path); err != nil {
			return cfg, nil, err
		}
		fs = newFlags(&cfg)
		fs.SetOutput(io.Discard)
		if err := fs.Parse(args); err != nil {
			return cfg, nil, err
		}
	}
	return cfg, fs.Args(), cfg.validate()
}

func (cfg Config) vmOptions(log *logio.Logger) []VMOption {
	opts := []VMOption{
		WithRetLimit(cfg.RetLimit),
		WithFoldCase(cfg.FoldCase),
		WithPrelude(cfg.Prelude),
	}
	if cfg.Trace && log != nil {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	return opts
}

// Package main is the entry point for cmdlog.
//
// cmdlog edits an in-memory text document from Lua and records every edit in
// a bounded undo/redo history.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/cmdlog/internal/config"
	"github.com/dshills/cmdlog/internal/config/watcher"
	"github.com/dshills/cmdlog/internal/document"
	"github.com/dshills/cmdlog/internal/logging"
	"github.com/dshills/cmdlog/internal/panel"
	"github.com/dshills/cmdlog/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// reloadDebounce lets editors finish writing the config before it is re-read.
const reloadDebounce = 250 * time.Millisecond

// Options holds the command-line options.
type Options struct {
	ConfigPath string
	ScriptPath string
	LogLevel   string
	MaxSize    int
	Watch      bool
	Text       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: os.Stderr,
		Prefix: "cmdlog",
	})
	defer func() { _ = logger.Sync() }()

	doc := document.New(opts.Text)
	tracked := panel.NewTracked[document.Edit](cfg.History.MaxSize, logger)
	rt := script.New(doc, tracked,
		script.WithLogger(logger),
		script.WithTimeout(cfg.Script.Timeout),
		script.WithCallLimit(cfg.Script.CallLimit),
		script.WithOutput(os.Stdout),
	)
	defer rt.Close()

	if opts.ScriptPath != "" {
		if err := rt.DoFile(opts.ScriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	s := &session{rt: rt, tracked: tracked, log: logger, opts: opts, errOut: os.Stderr}
	if opts.Watch && opts.ConfigPath != "" {
		w, err := watcher.New(opts.ConfigPath, watcher.WithDebounce(reloadDebounce))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer w.Close()
		s.reloads = w.Events()
		s.watchErrs = w.Errors()
		logger.Info("watching %s", w.Path())
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if err := s.repl(os.Stdin, signals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// session owns the history for the lifetime of the REPL. Only the goroutine
// running repl touches it.
type session struct {
	rt      *script.Runtime
	tracked *panel.Tracked[document.Edit]
	log     *logging.Logger
	opts    Options
	errOut  io.Writer

	reloads   <-chan watcher.Event
	watchErrs <-chan error
}

// repl evaluates one Lua chunk per input line until EOF or a signal.
func (s *session) repl(in io.Reader, signals <-chan os.Signal) error {
	lines, readErr, done := readLines(in)
	defer close(done)

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if line == "" {
				continue
			}
			if err := s.rt.DoString(line); err != nil {
				fmt.Fprintf(s.errOut, "error: %v\n", err)
			}

		case ev, ok := <-s.reloads:
			if !ok {
				s.reloads = nil
				continue
			}
			s.reload(ev)

		case err, ok := <-s.watchErrs:
			if !ok {
				s.watchErrs = nil
				continue
			}
			s.log.Warn("config watcher: %v", err)

		case <-signals:
			return nil
		}
	}
}

// readLines scans in on its own goroutine. The sender gives up once done is
// closed, so a pending line never blocks it after the loop has returned.
func readLines(in io.Reader) (<-chan string, <-chan error, chan struct{}) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr, done
}

// reload re-reads the config file and applies the capacity and log level.
func (s *session) reload(ev watcher.Event) {
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		s.log.Warn("config %s: %s, keeping current settings", ev.Path, ev.Op)
		return
	}

	cfg, err := config.Load(s.opts.ConfigPath)
	if err == nil {
		applyFlags(&cfg, s.opts)
		err = cfg.Validate()
	}
	if err != nil {
		s.log.Error("reloading config: %v", err)
		return
	}
	s.log.SetLevel(cfg.LogLevel())

	h := s.tracked.History()
	state := s.tracked.Panel()
	state.EditMaxSize(cfg.History.MaxSize)
	if !panel.MaxSizeChanged(state, h) {
		return
	}
	if panel.WillErase(state, h) {
		s.log.Warn("max size %d is below the current size %d, oldest commands will be erased",
			state.PendingMaxSize(), h.Size())
	}
	s.tracked.SetMaxSize(state.PendingMaxSize())
}

// applyFlags overrides configuration with explicitly set flags.
func applyFlags(cfg *config.Config, opts Options) {
	if opts.MaxSize >= 0 {
		cfg.History.MaxSize = opts.MaxSize
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
}

func parseFlags() Options {
	var opts Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run instead of reading stdin")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run (shorthand)")
	flag.IntVar(&opts.MaxSize, "max-size", -1, "History maximum size (overrides config)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the history size when the config file changes")
	flag.StringVar(&opts.Text, "text", "", "Initial document text")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cmdlog - bounded undo/redo history driven from Lua\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cmdlog [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cmdlog                          Read Lua lines from stdin\n")
		fmt.Fprintf(os.Stderr, "  cmdlog -s edits.lua             Run a script\n")
		fmt.Fprintf(os.Stderr, "  cmdlog -c cmdlog.toml -watch    Follow max_size changes in the config\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("cmdlog %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	return opts
}

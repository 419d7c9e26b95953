package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tuannm99/novadoc"
	"github.com/tuannm99/novadoc/internal"
)

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"root":        "storage.root",
	"backend":     "storage.backend",
	"format":      "storage.format",
	"log-level":   "log.level",
	"history":     "repl.history",
	"history-max": "repl.history_max",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("novadoc", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("root", "./databases", "directory holding databases (fs backend)")
	fs.String("backend", "fs", "storage backend: fs, memory or s3")
	fs.String("format", "json", "document format: json or bson")
	fs.String("log-level", "info", "log level")
	fs.String("history", defaultHistoryPath(), "history file path")
	fs.Int("history-max", 2000, "max history lines loaded into memory")
	fs.StringP("command", "c", "", "execute one statement and exit")
	fs.StringP("file", "f", "", "execute statements from a file, one per line")
	return fs
}

func loadConfig(fs *pflag.FlagSet) (*internal.NovaDocConfig, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, err
		}
	}
	path, _ := fs.GetString("config")
	return internal.LoadConfigWith(v, path)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	logger, err := internal.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("session", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess, err := novadoc.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		return 1
	}

	// one-shot mode
	if stmt, _ := fs.GetString("command"); strings.TrimSpace(stmt) != "" {
		if err := execLine(ctx, sess, stmt, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// script mode
	if path, _ := fs.GetString("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "script: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		if err := runScript(ctx, sess, f, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	h := NewHistory(afero.NewOsFs(), cfg.REPL.History)
	if err := h.Load(cfg.REPL.HistoryMax); err != nil {
		logger.Warn("history load failed", zap.Error(err))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.REPL.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		return 1
	}
	defer func() { _ = rl.Close() }()

	// preload history into readline so the arrow keys work immediately
	for _, line := range h.Lines() {
		_ = rl.SaveHistory(line)
	}

	fmt.Printf("%s REPL (type 'exit' to quit)\n", cfg.AppName)
	fmt.Println("type \\help for help")

	repl := NewREPL(sess, rl, os.Stdout, os.Stderr, h, logger)
	if err := repl.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		return 1
	}
	return 0
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/tuannm99/novadoc/internal/sql/executor"
)

type sqlExecutor interface {
	ExecSQL(ctx context.Context, line string) (*executor.Result, error)
}

// lineReader is the part of *readline.Instance the REPL drives.
type lineReader interface {
	Readline() (string, error)
	SaveHistory(content string) error
}

var errQuit = errors.New("quit")

type REPL struct {
	exec    sqlExecutor
	in      lineReader
	out     io.Writer
	errOut  io.Writer
	history *History
	logger  *zap.Logger
}

func NewREPL(exec sqlExecutor, in lineReader, out, errOut io.Writer, h *History, logger *zap.Logger) *REPL {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &REPL{exec: exec, in: in, out: out, errOut: errOut, history: h, logger: logger}
}

// Run reads one statement per line until EOF or a quit command.
func (r *REPL) Run(ctx context.Context) error {
	for {
		line, err := r.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isMetaCommand(line) {
			if err := r.meta(line); errors.Is(err, errQuit) {
				return nil
			}
			continue
		}

		if r.history != nil {
			if err := r.history.Append(line); err != nil {
				r.logger.Warn("history append failed", zap.Error(err))
			}
		}
		_ = r.in.SaveHistory(compactOneLine(line))

		if err := execLine(ctx, r.exec, line, r.out); err != nil {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
		}
	}
}

func isMetaCommand(line string) bool {
	return strings.HasPrefix(line, "\\") ||
		line == "quit" || line == "exit"
}

func (r *REPL) meta(line string) error {
	switch line {
	case "\\q", "quit", "exit":
		return errQuit
	case "\\help":
		fmt.Fprintln(r.out, helpText)
	case "\\history":
		if r.history != nil {
			r.history.Print(r.out, 50)
		}
	default:
		fmt.Fprintf(r.out, "unknown command: %s\n", line)
	}
	return nil
}

const helpText = `meta commands:
  \q | quit | exit       quit
  \history               print history
  \help                  show help

statements (one per line, ending with ';'):
  CREATE DATABASE name;          DROP DATABASE name;       USE name;
  CREATE TABLE t (f TYPE, ...);  DROP TABLE t;
  INSERT INTO t (f, ...) VALUES (v, ...);
  SELECT * | f, ... FROM t [WHERE f = v];
  UPDATE t SET f = v WHERE f = v;
  DELETE FROM t [WHERE f = v];
types: STRING INT FLOAT BOOLEAN`

func execLine(ctx context.Context, exec sqlExecutor, line string, out io.Writer) error {
	res, err := exec.ExecSQL(ctx, line)
	if err != nil {
		return err
	}
	printResult(out, res)
	return nil
}

func printResult(w io.Writer, res *executor.Result) {
	if res.IsQuery() {
		_ = res.RenderTable(w)
		return
	}
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
}

// runScript executes each non-empty line of r in order and stops at the
// first failing statement.
func runScript(ctx context.Context, exec sqlExecutor, r io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := execLine(ctx, exec, line, out); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

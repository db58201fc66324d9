package main

import (
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/interp"
)

var replBanner = color.New(color.FgCyan)

// runREPL implements spec.md §6's REPL mode: read a line, run it through
// the full pipeline against one persistent Interpreter, repeat until EOF.
// Globals survive across lines; a scan/parse/resolve/runtime error only
// aborts that one line, per spec.md §5. readline owns the terminal
// directly (it needs raw-mode access to os.Stdin for history/editing),
// so in is accepted only to keep the signature testable and unused here.
func runREPL(in io.Reader, out io.Writer) {
	_ = in
	rl, err := readline.New("> ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	replBanner.Fprintln(out, "glox REPL — Ctrl-D to exit")

	reporter := diag.New(os.Stderr)
	interpreter := interp.New(out, reporter)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt { // Ctrl-C drops the current line only
			continue
		}
		if err != nil { // io.EOF
			return
		}
		if line == "" {
			continue
		}

		reporter.Reset()
		stmts, locals, ok := parseSource(line, reporter)
		if !ok {
			continue
		}
		interpreter.Interpret(stmts, locals)
	}
}

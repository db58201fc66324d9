package main

import (
	"fmt"
	"os"

	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/interp"
)

// runFile executes one script to completion and returns the process
// exit code spec.md §7 specifies.
func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glox: %v\n", err)
		return 74
	}

	reporter := diag.New(os.Stderr)
	stmts, locals, ok := parseSource(string(src), reporter)
	if !ok {
		return exitCode(reporter)
	}

	interpreter := interp.New(os.Stdout, reporter)
	interpreter.Interpret(stmts, locals)
	return exitCode(reporter)
}

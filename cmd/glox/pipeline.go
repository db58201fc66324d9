package main

import (
	"github.com/sdecook/glox/internal/lox/ast"
	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/parser"
	"github.com/sdecook/glox/internal/lox/resolver"
	"github.com/sdecook/glox/internal/lox/scanner"
)

// parseSource runs the scan/parse/resolve stages described in spec.md
// §4.1–§4.3 and returns the resolved statement tree plus the resolution
// table, or false if a scan/parse/resolve error was reported.
func parseSource(src string, r *diag.Reporter) ([]ast.Stmt, map[int]int, bool) {
	toks := scanner.New(src, r).Scan()
	stmts := parser.New(toks, r).Parse()
	if r.HadError() {
		return nil, nil, false
	}

	locals := resolver.New(r).Resolve(stmts)
	if r.HadError() {
		return nil, nil, false
	}

	return stmts, locals, true
}

// exitCode implements spec.md §7's exit-code contract for a single run.
func exitCode(r *diag.Reporter) int {
	switch {
	case r.HadError():
		return 65
	case r.HadRuntimeError():
		return 70
	default:
		return 0
	}
}

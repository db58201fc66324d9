// Package diag implements the interpreter's error reporter: a small,
// category-flagged sink for scan/parse/resolve/runtime diagnostics.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed)
)

// Reporter accumulates diagnostics and tracks whether any scan/parse/
// resolve error or runtime error has been seen. It is not safe for
// concurrent use — the interpreter is single-threaded by design (see
// spec.md §5).
type Reporter struct {
	out             io.Writer
	hadError        bool
	hadRuntimeError bool
}

// New creates a Reporter that writes formatted diagnostics to out
// (typically os.Stderr).
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// HadError reports whether any scan, parse, or resolve error occurred.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether a runtime error was reported.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears both sticky flags, for reuse across REPL lines.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

// ScanError reports "[line L] Error: message".
func (r *Reporter) ScanError(line int, message string) {
	r.hadError = true
	r.report(line, "", message)
}

// ParseError reports "[line L] Error at 'lexeme': message", or
// "[line L] Error at end: message" when atEOF is true.
func (r *Reporter) ParseError(line int, lexeme string, atEOF bool, message string) {
	r.hadError = true
	if atEOF {
		r.report(line, "end", message)
	} else {
		r.report(line, "'"+lexeme+"'", message)
	}
}

// ResolveError reports a static resolution fault with the same format
// ParseError uses — the resolver and parser share one diagnostic shape.
func (r *Reporter) ResolveError(line int, lexeme string, message string) {
	r.hadError = true
	r.report(line, "'"+lexeme+"'", message)
}

func (r *Reporter) report(line int, where, message string) {
	var line1 string
	if where == "" {
		line1 = fmt.Sprintf("[line %d] Error: %s", line, message)
	} else {
		line1 = fmt.Sprintf("[line %d] Error at %s: %s", line, where, message)
	}
	errorColor.Fprintln(r.out, line1)
}

// RuntimeError reports "message\n[line L]", per spec.md §6.
func (r *Reporter) RuntimeError(line int, message string) {
	r.hadRuntimeError = true
	errorColor.Fprintf(r.out, "%s\n[line %d]\n", message, line)
}

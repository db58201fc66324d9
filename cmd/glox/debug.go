package main

import (
	"fmt"
	"os"

	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/parser"
	"github.com/sdecook/glox/internal/lox/resolver"
	"github.com/sdecook/glox/internal/lox/scanner"
	"github.com/spf13/cobra"
)

// tokenizeCmd and parseCmd are developer debug aids, grounded on the
// teacher's own tokenize/parse CLI modes — not part of spec.md's core
// CLI contract, and hidden from `glox --help` accordingly.

var tokenizeCmd = &cobra.Command{
	Use:    "tokenize <path>",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		reporter := diag.New(os.Stderr)
		for _, tok := range scanner.New(string(src), reporter).Scan() {
			fmt.Println(tok.String())
		}
		if reporter.HadError() {
			os.Exit(65)
		}
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:    "parse <path>",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		reporter := diag.New(os.Stderr)
		toks := scanner.New(string(src), reporter).Scan()
		stmts := parser.New(toks, reporter).Parse()
		if reporter.HadError() {
			os.Exit(65)
		}
		resolver.New(reporter).Resolve(stmts)
		if reporter.HadError() {
			os.Exit(65)
		}
		fmt.Printf("%d top-level statement(s) parsed\n", len(stmts))
		return nil
	},
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd reproduces spec.md §6's CLI contract: `glox` with no path
// starts the REPL, `glox <path>` runs that script once. Cobra's own
// usage/help machinery is bypassed for the core contract so the exit
// codes stay exactly what spec.md §7 requires.
var rootCmd = &cobra.Command{
	Use:                   "glox [script]",
	Short:                 "glox is a tree-walking interpreter for the Lox language",
	Args:                  cobra.ArbitraryArgs,
	SilenceUsage:          true,
	SilenceErrors:         true,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			runREPL(os.Stdin, os.Stdout)
		case 1:
			os.Exit(runFile(args[0]))
		default:
			fmt.Fprintln(os.Stderr, "Usage: glox [script]")
			os.Exit(64)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
}

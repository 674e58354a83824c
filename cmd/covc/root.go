package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "covc",
		Short: "The Covenant contract language compiler",
		Long: `covc is the compiler front end for the Covenant contract language.

It parses contract sources, enforces declaration-before-use ordering,
resolves function decorators, checks types and explicit conversions,
and produces an overflow-guarded intermediate representation for
downstream code generators.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCheckCmd(),
		newLintCmd(),
		newFmtCmd(),
		newASTCmd(),
		newIRCmd(),
		newReplCmd(),
	)
	return root
}

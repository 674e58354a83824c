package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/compiler"
	"github.com/covenant-lang/covenant/internal/linter"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file.cov>",
		Short: "Report style and dead-code warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			name := filepath.Base(args[0])

			res := compiler.Compile(string(source))
			if res.Diagnostics.HasErrors() {
				fmt.Fprintln(cmd.OutOrStdout(), res.Diagnostics.Format(name))
				return fmt.Errorf("lint aborted: contract does not compile")
			}

			warnings := linter.Lint(res.Contract, res.Decorations)
			if warnings.Count() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no issues\n", name)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), warnings.Format(name))
			return nil
		},
	}
}

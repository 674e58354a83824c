package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/compiler"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.cov>...",
		Short: "Run the full pipeline for diagnostics without emitting anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := compiler.CompileFiles(args, compiler.Options{})
			if err != nil {
				return err
			}
			if out := batch.Format(); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			if batch.HasErrors() {
				return fmt.Errorf("check failed")
			}
			for _, path := range batch.Paths() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			return nil
		},
	}
}

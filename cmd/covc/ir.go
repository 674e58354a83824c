package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/compiler"
)

func newIRCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "ir <file.cov>",
		Short: "Dump the guarded intermediate representation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			res := compiler.Compile(string(source))
			if res.Diagnostics.HasErrors() {
				fmt.Fprintln(cmd.OutOrStdout(), res.Diagnostics.Format(filepath.Base(args[0])))
				return fmt.Errorf("compilation failed")
			}

			dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			dump := dumper.Sdump(res.IR)

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(dump), 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), dump)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the dump to a file instead of stdout")
	return cmd
}

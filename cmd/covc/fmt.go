package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/formatter"
	"github.com/covenant-lang/covenant/internal/parser"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file.cov>",
		Short: "Print the contract in canonical formatting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			p := parser.New(string(source))
			contract := p.Parse()
			if p.Diagnostics().HasErrors() {
				fmt.Fprintln(cmd.OutOrStdout(), p.Diagnostics().Format(filepath.Base(args[0])))
				return fmt.Errorf("cannot format: parse errors")
			}

			out := formatter.Format(contract)
			if write {
				return os.WriteFile(args[0], []byte(out), 0644)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	return cmd
}

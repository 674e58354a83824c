package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/parser"
)

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file.cov>",
		Short: "Print the parsed syntax tree",
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
				return fmt.Errorf("parse failed")
			}

			fmt.Fprint(cmd.OutOrStdout(), ast.Print(contract))
			return nil
		},
	}
}

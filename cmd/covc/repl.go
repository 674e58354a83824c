package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/compiler"
)

// replHistoryFile is where the REPL persists its input history
var replHistoryFile = filepath.Join(os.TempDir(), ".covc_history")

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively check contract snippets",
		Long: `repl reads a contract line by line and recompiles it after every
completed declaration, reporting diagnostics as you go. The buffer
accumulates; use :reset to start over, :show to print it, and :quit
to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout())
		},
	}
}

func runRepl(out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(replHistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(replHistoryFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "Covenant REPL. :help for commands.")

	var buffer []string
	depth := 0 // unclosed braces in the buffer

	for {
		prompt := ">> "
		if depth > 0 {
			prompt = ".. "
		}

		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		switch trimmed {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":reset":
			buffer = nil
			depth = 0
			fmt.Fprintln(out, "buffer cleared")
			continue
		case ":show":
			fmt.Fprintln(out, strings.Join(buffer, "\n"))
			continue
		case ":help":
			fmt.Fprintln(out, ":quit  leave the repl\n:reset clear the buffer\n:show  print the buffer")
			continue
		}

		line.AppendHistory(input)
		buffer = append(buffer, input)
		depth += strings.Count(input, "{") - strings.Count(input, "}")
		if depth > 0 {
			continue // wait for the block to close
		}
		depth = 0

		source := strings.Join(buffer, "\n")
		if !strings.HasPrefix(strings.TrimSpace(source), "contract") {
			source = "contract Repl;\n" + source
		}

		res := compiler.Compile(source)
		if res.Diagnostics.HasErrors() {
			fmt.Fprintln(out, res.Diagnostics.Format("repl"))
			continue
		}
		fmt.Fprintln(out, "ok")
	}
}

package cmd

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive REPL session",
	Long: `Starts an interactive Read-Eval-Print Loop over one in-memory ledger.
Every other command can be typed without the program name, e.g.
  account create --document 123
  transaction credit --id <id> --amount 100.00
  snapshot store`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printf(cmd, "Starting ledger REPL. Type 'exit' or 'quit' to exit.\n")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			printf(cmd, "> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "exit" || input == "quit" {
				break
			}
			if input == "" {
				continue
			}

			commandArgs := strings.Fields(input)
			if commandArgs[0] == cmd.Name() {
				printf(cmd, "Already in a REPL session.\n")
				continue
			}

			// Errors are printed by cobra; the session keeps going.
			root := cmd.Root()
			root.SetArgs(commandArgs)
			_ = root.Execute()
			resetFlags(root)
		}

		printf(cmd, "Exiting REPL.\n")
		return scanner.Err()
	},
}

// resetFlags puts every flag of c and its children back to its default so
// values from one REPL line never leak into the next.
func resetFlags(c *cobra.Command) {
	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

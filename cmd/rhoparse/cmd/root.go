package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errInvalid marks runs that completed but found invalid input, so the
// process exits non-zero without printing anything after the report.
var errInvalid = errors.New("invalid input")

var rootCmd = &cobra.Command{
	Use:   "rhoparse",
	Short: "Parse and check Rholang source",
	Long: `rhoparse reads Rholang source and reports its parse tree.

parse  - print the parse tree and any errors (JSON by default)
check  - report whether the input parses`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errInvalid) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

// readInput returns the source text plus the name used in reports; the
// name is empty when reading stdin (no argument, or "-").
func readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), "", nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(b), args[0], nil
}

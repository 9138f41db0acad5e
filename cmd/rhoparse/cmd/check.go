package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylon/rholang-go/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report whether the input is valid Rholang",
	Long: `Check Rholang source from a file, or from stdin when the argument is
omitted or "-". Prints {"valid": true|false} and exits 1 when invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type checkReport struct {
	Valid bool `json:"valid"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, _, err := readInput(args)
	if err != nil {
		return err
	}
	valid := parser.New().IsValid(src)
	out, err := json.Marshal(checkReport{Valid: valid})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	if !valid {
		return errInvalid
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dylon/rholang-go/diag"
	"github.com/dylon/rholang-go/parser"
)

var (
	prettyTree bool
	humanOut   bool
	watchInput bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Rholang source and print the parse tree",
	Long: `Parse Rholang source from a file, or from stdin when the argument is
omitted or "-". The default output is one JSON object holding the parse
tree and any errors; --human prints source-quoting reports instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&prettyTree, "pretty", false, "indent the parse tree instead of printing one line")
	parseCmd.Flags().BoolVar(&humanOut, "human", false, "print readable reports instead of JSON")
	parseCmd.Flags().BoolVar(&watchInput, "watch", false, "re-parse the file on every write")
	rootCmd.AddCommand(parseCmd)
}

type parseReport struct {
	Valid  bool     `json:"valid"`
	Tree   *string  `json:"tree"`
	Errors []string `json:"errors"`
}

func runParse(cmd *cobra.Command, args []string) error {
	if watchInput {
		if len(args) == 0 || args[0] == "-" {
			return errors.New("--watch requires a file argument")
		}
		return watchLoop(cmd, args[0])
	}
	src, name, err := readInput(args)
	if err != nil {
		return err
	}
	return reportParse(cmd, name, src)
}

func reportParse(cmd *cobra.Command, name, src string) error {
	p := parser.New()
	if humanOut {
		return reportHuman(cmd, p, name, src)
	}

	var tree string
	var err error
	if prettyTree {
		tree, err = p.PrettyTree(src)
	} else {
		tree, err = p.TreeString(src)
	}

	var report parseReport
	if err == nil {
		report = parseReport{Valid: true, Tree: &tree}
	} else {
		var failure *parser.ParsingFailure
		if !errors.As(err, &failure) {
			return err
		}
		msgs := make([]string, len(failure.Errors))
		for i, e := range failure.Errors {
			msgs[i] = e.Error()
		}
		report = parseReport{Valid: false, Errors: msgs}
	}

	out, err := json.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func reportHuman(cmd *cobra.Command, p *parser.Parser, name, src string) error {
	w := cmd.OutOrStdout()
	procs, err := p.Parse(src)
	if err != nil {
		var failure *parser.ParsingFailure
		if !errors.As(err, &failure) {
			return err
		}
		diag.Render(w, name, src, failure)
		return nil
	}
	fmt.Fprintf(w, "ok: %d top-level process(es)\n", len(procs))
	for _, proc := range procs {
		fmt.Fprintln(w, proc)
	}
	return nil
}

// watchLoop re-parses path on every write until the watcher closes or an
// interrupt arrives. Parse results go to stdout; watch problems go to
// stderr without stopping the loop.
func watchLoop(cmd *cobra.Command, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	if err := parseFile(cmd, path); err != nil {
		return err
	}
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := parseFile(cmd, path); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", werr)
		case <-interrupt:
			return nil
		}
	}
}

func parseFile(cmd *cobra.Command, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return reportParse(cmd, path, string(b))
}

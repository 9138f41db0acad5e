package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/dylon/rholang-go/parser"
)

const tabWidth = 4

// Render writes every error in f as a location header followed by the
// offending source line and a caret underline pointing at the span.
func Render(w io.Writer, filename, src string, f *parser.ParsingFailure) {
	lines := strings.Split(src, "\n")
	for _, e := range f.Errors {
		renderOne(w, filename, lines, e)
	}
}

func renderOne(w io.Writer, filename string, lines []string, e parser.AnnError) {
	start := e.Span.Start
	if filename == "" {
		fmt.Fprintf(w, "error: %s at %d:%d\n", e.Err.Error(), start.Line, start.Column)
	} else {
		fmt.Fprintf(w, "error: %s at %s:%d:%d\n", e.Err.Error(), filename, start.Line, start.Column)
	}
	if start.Line < 1 || start.Line > len(lines) {
		return
	}
	line := lines[start.Line-1]
	gutter := strconv.Itoa(start.Line)
	fmt.Fprintf(w, " %s | %s\n", gutter, expand(line))

	// Columns are 1-based byte offsets within the line. Spans that run past
	// the end of the line underline through its last character.
	startByte := clamp(start.Column-1, 0, len(line))
	endByte := len(line)
	if e.Span.End.Line == start.Line {
		endByte = clamp(e.Span.End.Column-1, startByte, len(line))
	}
	pad := displayWidth(line[:startByte])
	carets := displayWidth(line[startByte:endByte])
	if carets < 1 {
		carets = 1
	}
	fmt.Fprintf(w, " %s | %s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", pad),
		strings.Repeat("^", carets))
}

func expand(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth measures s in terminal columns: tabs expand to tabWidth and
// east asian wide runes occupy two cells, so the caret row stays aligned
// with the expanded source line above it.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += tabWidth
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

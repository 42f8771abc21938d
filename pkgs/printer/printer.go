// Package printer owns the primary (stdout) output of the tools. Primary
// output goes through a deferred writer so that a failed invocation emits
// nothing, while diagnostics stay on stderr.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/pathkit/pkgs/styles"
)

var ConsolePrinter = New(os.Stdout)

type Printer struct {
	writer io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// Ctx returns a printer bound to the writer carried by ctx, or the
// receiver unchanged when ctx carries none.
func (p *Printer) Ctx(ctx context.Context) *Printer {
	if w, ok := GetWriter(ctx); ok {
		return New(w)
	}
	return p
}

func Ctx(ctx context.Context) *Printer {
	return ConsolePrinter.Ctx(ctx)
}

// Line writes one line of primary output.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.writer, s)
}

// FatalError renders err to stderr in a styled error box.
func (p *Printer) FatalError(err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorBox("Error", err.Error()))
}

func FatalError(err error) {
	ConsolePrinter.FatalError(err)
}

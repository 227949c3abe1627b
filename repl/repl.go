// Package repl implements Noumenon's interactive driver loop: readline
// input with history, colored diagnostics, and the line-terminator
// trick that lets one-liners at the prompt skip trailing semicolons.
// Grounded on the teacher's repl/repl.go (same readline+color stack).
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/twied/noumenon/builtin"
	"github.com/twied/noumenon/eval"
	"github.com/twied/noumenon/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
)

const banner = `noumenon`

// Repl is an interactive session: prompt, history, and an evaluator whose
// scope persists across inputs.
type Repl struct {
	Prompt string
	Quiet  bool
}

// New returns a Repl with the language's default prompt.
func New(quiet bool) *Repl {
	return &Repl{Prompt: "noum> ", Quiet: quiet}
}

func (r *Repl) printBanner(w io.Writer) {
	if r.Quiet {
		return
	}
	greenColor.Fprintf(w, "%s\n", banner)
	yellowColor.Fprintln(w, "Type an expression or statement and press enter. Ctrl+D to exit.")
}

// Start runs the read-eval-print loop against w until EOF (Ctrl+D) or a
// readline error. Each line read is terminated with three semicolons
// before parsing: the driver's trick for letting short interactive
// inputs close their own statement without forcing the user to type one.
func (r *Repl) Start(w io.Writer) error {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	ev := eval.New(builtin.All(), r.Quiet)
	ev.Out = w

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil // EOF (Ctrl+D) or interrupt: clean exit
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)
		r.evalLine(w, ev, line)
	}
}

func (r *Repl) evalLine(w io.Writer, ev *eval.Evaluator, line string) {
	stmts, err := parser.Parse(line + ";;;")
	if err != nil {
		redColor.Fprintf(w, "driver: %s\n", err)
		return
	}
	result := ev.Run(stmts)
	blueColor.Fprintln(w, result.String())
}

// Package main is the Noumenon command-line driver. It dispatches to
// either the interactive repl.Repl or single-file execution depending on
// whether a FILE argument is given, following the teacher's main/main.go
// layout while swapping its ad hoc os.Args handling for spf13/pflag.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	"github.com/twied/noumenon/ast"
	"github.com/twied/noumenon/builtin"
	"github.com/twied/noumenon/eval"
	"github.com/twied/noumenon/parser"
	"github.com/twied/noumenon/repl"
	"github.com/twied/noumenon/value"
)

var redColor = color.New(color.FgRed)

func main() {
	var quiet bool
	var dumpAST bool
	flag.BoolVarP(&quiet, "quiet", "q", false, "suppress the banner and variable diagnostics")
	flag.BoolVar(&dumpAST, "dump-ast", false, "print the parsed program's AST and exit, instead of running it")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || args[0] == "--" {
		r := repl.New(quiet)
		if err := r.Start(os.Stdout); err != nil {
			redColor.Fprintf(os.Stderr, "driver: %s\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runFile(args[0], args[1:], quiet, dumpAST))
}

// runFile reads, parses, and executes a single Noumenon source file,
// binding arg/env into its root scope and returning the process exit
// code per §6.1: 0 on normal completion, the truncated Int value if the
// program's final result is an Int, or 1 if the file cannot be read or a
// parse/runtime error surfaces before a first value is produced.
func runFile(path string, extraArgs []string, quiet, dumpAST bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "driver: %s\n", err)
		return 1
	}

	stmts, err := parser.Parse(string(src))
	if err != nil {
		redColor.Fprintf(os.Stderr, "driver: %s\n", err)
		return 1
	}

	if dumpAST {
		p := &ast.DebugPrinter{}
		p.PrintProgram(stmts)
		fmt.Print(p.String())
		return 0
	}

	ev := eval.New(builtin.All(), quiet)
	ev.Out = os.Stdout
	ev.Err = os.Stderr

	argValues := make([]value.Value, len(extraArgs))
	for i, a := range extraArgs {
		argValues[i] = value.NewString(a)
	}
	ev.Scope.Define("arg", &value.Array{Elements: argValues})

	envObj := value.NewObject()
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				envObj.Fields[kv[:i]] = value.NewString(kv[i+1:])
				break
			}
		}
	}
	ev.Scope.Define("env", envObj)

	result := ev.Run(stmts)
	if n, ok := result.(value.Int); ok {
		return int(n.Value)
	}
	return 0
}

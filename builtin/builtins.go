// Package builtin implements Noumenon's host functions: print, println,
// typeof, range, length, list, require. Each is registered into an
// eval.Evaluator as an eval.Builtin, grounded on the teacher's
// std.Builtins registry (std/builtins.go) and std/file.go's
// file-IO-via-builtin pattern.
package builtin

import (
	"fmt"
	"sort"

	"github.com/twied/noumenon/eval"
	"github.com/twied/noumenon/scope"
	"github.com/twied/noumenon/value"
)

// All returns every built-in function this package implements, ready to
// be passed to eval.New.
func All() []eval.Builtin {
	return []eval.Builtin{
		{Name: "print", Fn: biPrint},
		{Name: "println", Fn: biPrintln},
		{Name: "typeof", Fn: biTypeof},
		{Name: "range", Fn: biRange},
		{Name: "length", Fn: biLength},
		{Name: "list", Fn: biList},
		{Name: "require", Fn: biRequire},
	}
}

func evaluator(rt value.Runtime) *eval.Evaluator {
	return rt.(*eval.Evaluator)
}

func biPrint(rt value.Runtime, _ *scope.Scope, args []value.Value) value.Value {
	ev := evaluator(rt)
	for _, a := range args {
		fmt.Fprint(ev.Out, a.String())
	}
	return value.Null{}
}

func biPrintln(rt value.Runtime, callScope *scope.Scope, args []value.Value) value.Value {
	biPrint(rt, callScope, args)
	fmt.Fprintln(evaluator(rt).Out)
	return value.Null{}
}

// typeName maps a value.Type to the String typeof() reports, per §6.2.
func typeName(t value.Type) string { return string(t) }

func biTypeof(_ value.Runtime, _ *scope.Scope, args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Null{}
	}
	return value.NewString(typeName(args[0].Type()))
}

func biRange(_ value.Runtime, _ *scope.Scope, args []value.Value) value.Value {
	if len(args) != 2 {
		return value.Null{}
	}
	a, ok1 := args[0].(value.Int)
	b, ok2 := args[1].(value.Int)
	if !ok1 || !ok2 {
		return value.Null{}
	}
	n := b.Value - a.Value
	if n < 0 {
		n = 0
	}
	elems := make([]value.Value, n)
	for i := int64(0); i < n; i++ {
		elems[i] = value.Int{Value: a.Value + i}
	}
	return &value.Array{Elements: elems}
}

func biLength(_ value.Runtime, _ *scope.Scope, args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Null{}
	}
	return value.Int{Value: value.Length(args[0])}
}

// biList prints every variable bound in the current scope chain,
// innermost scope first, per §6.2.
func biList(rt value.Runtime, callScope *scope.Scope, _ []value.Value) value.Value {
	ev := evaluator(rt)
	for sc := callScope; sc != nil; sc = sc.Parent() {
		names := sc.Names()
		sort.Strings(names)
		for _, n := range names {
			v, _ := sc.Lookup(n)
			fmt.Fprintf(ev.Out, "%s = %s\n", n, v.String())
		}
	}
	return value.Null{}
}

// biRequire reads and executes the file at args[0] in a new scope whose
// parent is the currently-active scope at the call site, per §6.2, binding
// "arg" to the remaining arguments. This is exactly like an ordinary call:
// the required file's lookup chain runs nested-scope -> call-site scope ->
// ... -> root, so it sees the caller's locals the same way a called
// function does. File-not-found (or a parse error) yields Null;
// the executed file's final statement result is returned, or an empty
// Object if it ran to completion without an explicit value.
func biRequire(rt value.Runtime, callScope *scope.Scope, args []value.Value) value.Value {
	if len(args) == 0 {
		return value.Null{}
	}
	path, ok := args[0].(value.String)
	if !ok {
		return value.Null{}
	}
	result, err := rt.RunFile(string(path.Value), callScope, args[1:])
	if err != nil {
		return value.Null{}
	}
	if _, isNull := result.(value.Null); isNull {
		return value.NewObject()
	}
	return result
}

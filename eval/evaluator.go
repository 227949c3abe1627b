// Package eval walks a parsed Noumenon program over a Scope chain. It is
// the sole implementer of value.Runtime, so builtins can invoke user
// callables and mint child scopes without the value package depending on
// eval or scope (see value.Runtime for the cycle this breaks).
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/twied/noumenon/ast"
	"github.com/twied/noumenon/parser"
	"github.com/twied/noumenon/scope"
	"github.com/twied/noumenon/value"
)

// Builtin is a host function registered into the root scope before a
// program runs. Grounded on the teacher's std.Builtin/std.CallbackFunc
// split (std/builtins.go).
type Builtin struct {
	Name string
	Fn   func(rt value.Runtime, callScope *scope.Scope, args []value.Value) value.Value
}

// Evaluator is the interpreter's execution engine: a scope chain plus the
// ambient configuration (output writer, diagnostics writer, quiet flag,
// registered builtins) threaded through every Eval call.
type Evaluator struct {
	Scope    *scope.Scope
	Out      io.Writer
	Err      io.Writer
	Quiet    bool
	Builtins map[string]Builtin
}

// New creates an evaluator with a fresh root scope and the given builtins
// registered into it as Function values.
func New(builtins []Builtin, quiet bool) *Evaluator {
	e := &Evaluator{
		Scope:    scope.New(nil),
		Out:      os.Stdout,
		Err:      os.Stderr,
		Quiet:    quiet,
		Builtins: make(map[string]Builtin, len(builtins)),
	}
	for _, b := range builtins {
		e.Builtins[b.Name] = b
		fn := b // capture
		e.Scope.Define(b.Name, &value.Function{
			Name: b.Name,
			Host: func(rt value.Runtime, callScope any, args []value.Value) value.Value {
				return fn.Fn(rt, callScope.(*scope.Scope), args)
			},
		})
	}
	return e
}

func (e *Evaluator) diag(format string, args ...interface{}) {
	if e.Quiet {
		return
	}
	fmt.Fprintf(e.Err, format+"\n", args...)
}

// Run evaluates a full program's statements against the evaluator's
// current (root) scope and returns the first non-Null result, or Null if
// none of the top-level statements produced one.
func (e *Evaluator) Run(stmts []ast.Stmt) value.Value {
	return e.RunIn(stmts, e.Scope)
}

// RunIn evaluates stmts against an arbitrary scope, used by RunFile (and
// so by the require builtin) to execute a file in a fresh scope parented
// on the call-site scope.
func (e *Evaluator) RunIn(stmts []ast.Stmt, sc *scope.Scope) value.Value {
	if v, ok := e.evalBlock(stmts, sc); ok {
		return v
	}
	return value.Null{}
}

// evalBlock evaluates stmts in order against sc, stopping at the first
// statement whose result is non-None (a return sentinel).
func (e *Evaluator) evalBlock(stmts []ast.Stmt, sc *scope.Scope) (value.Value, bool) {
	for _, s := range stmts {
		if v, ok := e.evalStmt(s, sc); ok {
			return v, true
		}
	}
	return nil, false
}

// evalStmt evaluates one statement, returning (value, true) only when a
// return statement (directly, or via a nested if/while/for) fired.
func (e *Evaluator) evalStmt(s ast.Stmt, sc *scope.Scope) (value.Value, bool) {
	switch n := s.(type) {
	case *ast.EmptyStmt:
		return nil, false

	case *ast.VarStmt:
		v := e.evalExpr(n.Init, sc)
		if !sc.Define(n.Name, v) {
			e.diag("redefinition of variable: %q", n.Name)
		}
		return nil, false

	case *ast.AssignStmt:
		v := e.evalExpr(n.Value, sc)
		e.assign(n.Target, v, sc)
		return nil, false

	case *ast.CallStmt:
		e.evalCall(n.Call, sc)
		return nil, false

	case *ast.IfStmt:
		if value.IsTruthy(e.evalExpr(n.Cond, sc)) {
			return e.evalBlock(n.Then, scope.New(sc))
		}
		if n.Else != nil {
			return e.evalBlock(n.Else, scope.New(sc))
		}
		return nil, false

	case *ast.WhileStmt:
		for value.IsTruthy(e.evalExpr(n.Cond, sc)) {
			if v, ok := e.evalBlock(n.Body, scope.New(sc)); ok {
				return v, true
			}
		}
		return nil, false

	case *ast.ForStmt:
		iterable := e.evalExpr(n.Iterable, sc)
		length := value.Length(iterable)
		for i := int64(0); i < length; i++ {
			iterScope := scope.New(sc)
			if n.KeyName != "" {
				iterScope.Define(n.KeyName, value.IterKey(iterable, i))
			}
			iterScope.Define(n.ValueName, value.IterValue(iterable, i))
			if v, ok := e.evalBlock(n.Body, iterScope); ok {
				return v, true
			}
		}
		return nil, false

	case *ast.ReturnStmt:
		return e.evalExpr(n.Value, sc), true

	default:
		return nil, false
	}
}

// assign implements both bare "v = rhs" and selector-chained
// "v[a][b] = rhs": walk every selector but the last with doSelect, then
// apply doModify with the final selector and rhs to the innermost
// receiver. A bare variable with no selectors is a scope write instead.
func (e *Evaluator) assign(target *ast.VariableExpr, rhs value.Value, sc *scope.Scope) {
	if len(target.Selectors) == 0 {
		if !sc.Assign(target.Name, rhs) {
			e.diag("no such variable: %q", target.Name)
		}
		return
	}

	receiver, ok := sc.Lookup(target.Name)
	if !ok {
		e.diag("no such variable: %q", target.Name)
		return
	}
	for i := 0; i < len(target.Selectors)-1; i++ {
		key := e.evalExpr(target.Selectors[i], sc)
		receiver = value.Select(receiver, key)
	}
	lastKey := e.evalExpr(target.Selectors[len(target.Selectors)-1], sc)
	value.Modify(receiver, lastKey, rhs)
}

// evalExpr evaluates an expression to exactly one value.
func (e *Evaluator) evalExpr(expr ast.Expr, sc *scope.Scope) value.Value {
	switch n := expr.(type) {
	case *ast.NullExpr:
		return value.Null{}
	case *ast.BoolExpr:
		return value.Bool{Value: n.Value}
	case *ast.IntExpr:
		return value.Int{Value: n.Value}
	case *ast.FloatExpr:
		return value.Float{Value: n.Value}
	case *ast.StringExpr:
		return value.String{Value: append([]rune(nil), n.Value...)}

	case *ast.ArrayExpr:
		elems := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = e.evalExpr(el, sc)
		}
		return &value.Array{Elements: elems}

	case *ast.ObjectExpr:
		obj := value.NewObject()
		for i, k := range n.Keys {
			obj.Fields[k] = e.evalExpr(n.Values[i], sc)
		}
		return obj

	case *ast.FunctionExpr:
		return &value.Function{Params: n.Params, Body: n.Body}

	case *ast.VariableExpr:
		return e.evalVariable(n, sc)

	case *ast.CallExpr:
		return e.evalCall(n, sc)

	case *ast.UnaryExpr:
		return value.Unary(n.Op, e.evalExpr(n.Operand, sc))

	case *ast.BinaryExpr:
		return value.Binary(n.Op, e.evalExpr(n.Left, sc), e.evalExpr(n.Right, sc))

	default:
		return value.Null{}
	}
}

// evalVariable resolves a variable read, applying selectors left to right
// with doSelect. A read of an undefined name diagnoses and yields Null.
func (e *Evaluator) evalVariable(n *ast.VariableExpr, sc *scope.Scope) value.Value {
	v, ok := sc.Lookup(n.Name)
	if !ok {
		e.diag("no such variable: %q", n.Name)
		return value.Null{}
	}
	for _, sel := range n.Selectors {
		key := e.evalExpr(sel, sc)
		v = value.Select(v, key)
	}
	return v
}

// evalCall resolves the callee in sc (not the fresh call scope), evaluates
// arguments left to right in sc, then dispatches doCall per §4.3.5.
func (e *Evaluator) evalCall(n *ast.CallExpr, sc *scope.Scope) value.Value {
	callee := e.evalVariable(n.Callee, sc)
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.evalExpr(a, sc)
	}
	callScope := scope.New(sc)
	return e.callValue(callee, callScope, args)
}

// callValue implements doCall: user functions bind params into callScope
// (missing args -> Null, extras ignored) and run their body with dynamic
// scoping against the caller-supplied callScope; host functions delegate
// to their Go implementation; anything else called yields Null.
func (e *Evaluator) callValue(callee value.Value, callScope *scope.Scope, args []value.Value) value.Value {
	fn, ok := callee.(*value.Function)
	if !ok {
		return value.Null{}
	}
	if fn.Host != nil {
		return fn.Host(e, callScope, args)
	}
	for i, param := range fn.Params {
		if i < len(args) {
			callScope.Define(param, args[i])
		} else {
			callScope.Define(param, value.Null{})
		}
	}
	if v, ok := e.evalBlock(fn.Body, callScope); ok {
		return v
	}
	return value.Null{}
}

// Call implements value.Runtime for host functions that need to invoke a
// Noumenon callable (e.g. a function value passed as an argument).
func (e *Evaluator) Call(callScope any, callee value.Value, args []value.Value) value.Value {
	return e.callValue(callee, callScope.(*scope.Scope), args)
}

// RunFile implements value.Runtime for the require builtin: it reads and
// parses path, then executes it in a fresh scope parented on
// scopeParent, with args bound to "arg" in that new scope.
func (e *Evaluator) RunFile(path string, scopeParent any, args []value.Value) (value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stmts, err := parser.Parse(string(src))
	if err != nil {
		return nil, err
	}
	fileScope := scope.New(scopeParent.(*scope.Scope))
	fileScope.Define("arg", &value.Array{Elements: append([]value.Value(nil), args...)})
	return e.RunIn(stmts, fileScope), nil
}

// ScopeNames exposes a scope's bound names, mirroring scope.Names.
func (e *Evaluator) ScopeNames(sc *scope.Scope) []string {
	return sc.Names()
}

// Package scope implements the chained variable binding environment the
// evaluator walks. Unlike the teacher's scope package, Scope here is never
// captured by a Function value: Noumenon functions are dynamically scoped,
// so a Scope only ever exists as a link in the call-time chain, never as
// state stored inside a value.
package scope

import "github.com/twied/noumenon/value"

// Scope is one link of the binding chain. Lookup walks from the innermost
// scope outward; Define only ever touches the current scope.
type Scope struct {
	vars   map[string]value.Value
	parent *Scope
}

// New creates a scope whose enclosing scope is parent (nil for the root
// scope of a program).
func New(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]value.Value), parent: parent}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Root walks to the outermost scope in the chain.
func (s *Scope) Root() *Scope {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// Lookup searches this scope and its ancestors for name, returning the
// first binding found, innermost first.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define introduces a new binding in this scope. It refuses to redefine a
// name already bound in this exact scope (shadowing across scope
// boundaries is fine; redefinition within one scope is not) and reports
// that refusal via its bool result.
func (s *Scope) Define(name string, v value.Value) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = v
	return true
}

// Assign walks the chain to find the scope that owns name and mutates the
// binding there. It reports whether an owning scope was found.
func (s *Scope) Assign(name string, v value.Value) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return true
		}
	}
	return false
}

// Names returns every name bound in this scope, ignoring ancestors.
// The list builtin calls it on each scope of the chain to print that
// scope's bindings.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for n := range s.vars {
		names = append(names, n)
	}
	return names
}

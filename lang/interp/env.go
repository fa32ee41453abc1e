package interp

import (
	"maps"
	"slices"

	"github.com/ardnew/seth/lang/diag"
	"github.com/ardnew/seth/lang/value"
)

// ErrUndefinedVariable is returned when a name is bound in no visible scope.
var ErrUndefinedVariable = diag.ErrUndefinedVariable

// Handle identifies a scope within an [Environment].
type Handle int

// Global is the handle of the outermost scope.
const Global Handle = 0

// none marks the absent parent of the global scope.
const none Handle = -1

type scope struct {
	vars   map[string]value.Value
	parent Handle
}

// Environment is an arena of lexical scopes. Each scope refers to its
// enclosing scope by handle, so entering a block never copies bindings and
// leaving one discards exactly the scopes it created.
type Environment struct {
	scopes []scope
}

// NewEnvironment returns an environment holding only the global scope.
func NewEnvironment() *Environment {
	return &Environment{
		scopes: []scope{{vars: map[string]value.Value{}, parent: none}},
	}
}

// Push creates a scope enclosed by parent and returns its handle.
func (e *Environment) Push(parent Handle) Handle {
	e.scopes = append(e.scopes, scope{vars: map[string]value.Value{}, parent: parent})

	return Handle(len(e.scopes) - 1)
}

// Pop discards the scope h and every scope created after it. The global
// scope is never discarded.
func (e *Environment) Pop(h Handle) {
	if h <= Global || int(h) >= len(e.scopes) {
		return
	}

	clear(e.scopes[h:])
	e.scopes = e.scopes[:h]
}

// Depth returns the number of live scopes, including the global scope.
func (e *Environment) Depth() int { return len(e.scopes) }

// Define binds name in scope h, shadowing any outer binding.
func (e *Environment) Define(h Handle, name string, v value.Value) {
	e.scopes[h].vars[name] = v
}

// Get returns the innermost binding of name visible from h.
func (e *Environment) Get(h Handle, name string) (value.Value, error) {
	for s := h; s != none; s = e.scopes[s].parent {
		if v, ok := e.scopes[s].vars[name]; ok {
			return v, nil
		}
	}

	return nil, ErrUndefinedVariable.Detail("'%s'", name)
}

// Assign overwrites the innermost binding of name visible from h and
// returns the stored value. It never creates a binding.
func (e *Environment) Assign(h Handle, name string, v value.Value) (value.Value, error) {
	for s := h; s != none; s = e.scopes[s].parent {
		if _, ok := e.scopes[s].vars[name]; ok {
			e.scopes[s].vars[name] = v

			return v, nil
		}
	}

	return nil, ErrUndefinedVariable.Detail("'%s'", name)
}

// Names returns the sorted names bound in scope h itself.
func (e *Environment) Names(h Handle) []string {
	return slices.Sorted(maps.Keys(e.scopes[h].vars))
}

// Reset discards every binding, including globals.
func (e *Environment) Reset() {
	clear(e.scopes)
	e.scopes = e.scopes[:0]
	e.scopes = append(e.scopes, scope{vars: map[string]value.Value{}, parent: none})
}

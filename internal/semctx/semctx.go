// Package semctx implements the lexically-nested symbol table chain the
// analyzer threads through a traversal: one Scope per block/function body,
// linked to its lexical parent, holding the shared types bound to names
// declared directly in it.
package semctx

import "github.com/conchlang/conch/internal/types"

// Scope is one lexical level of the symbol table chain. The root scope (used
// for a single top-level analysis run) has a nil parent.
type Scope struct {
	parent  *Scope
	symbols map[string]*types.Type
}

// NewRoot creates a scope with no parent.
func NewRoot() *Scope {
	return &Scope{symbols: make(map[string]*types.Type)}
}

// Nested creates a child scope of s.
func (s *Scope) Nested() *Scope {
	return &Scope{parent: s, symbols: make(map[string]*types.Type)}
}

// Declare binds name to typ in s directly. The caller transfers ownership of
// one reference of typ to the scope; it is released when the scope is
// closed via Close.
func (s *Scope) Declare(name string, typ *types.Type) {
	s.symbols[name] = typ
}

// HasLocal reports whether name is bound directly in s, ignoring parents.
func (s *Scope) HasLocal(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// Find looks up name in s and, failing that, walks the parent chain. It
// returns the bound type and whether it was found.
func (s *Scope) Find(name string) (*types.Type, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if t, ok := scope.symbols[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Parent returns s's lexical parent, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Close releases every shared type descriptor s holds a reference to. It
// must be called exactly once, when a scope goes out of lexical extent,
// to keep reference counts balanced.
func (s *Scope) Close() {
	for _, t := range s.symbols {
		t.Release()
	}
	s.symbols = nil
}

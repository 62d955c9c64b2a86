// Package scope implements the lexical scope environment used during
// parsing: a chain of frames, each with three independent namespaces for
// ordinary identifiers, typedef names, and struct tags.
package scope

import (
	"github.com/raymyers/mini-cc/pkg/cabs"
	"github.com/raymyers/mini-cc/pkg/ctypes"
)

// Env is one scope frame. Lookups walk from the innermost frame outwards
// and return the first hit, so an inner binding fully shadows an outer one.
type Env struct {
	vars     map[string]*cabs.Var
	typedefs map[string]ctypes.Type
	tags     map[string]*ctypes.Tstruct
	outer    *Env
}

// New creates a scope frame whose parent is outer (nil for the root frame)
func New(outer *Env) *Env {
	return &Env{
		vars:     make(map[string]*cabs.Var),
		typedefs: make(map[string]ctypes.Type),
		tags:     make(map[string]*ctypes.Tstruct),
		outer:    outer,
	}
}

// Outer returns the parent frame, or nil at the root
func (e *Env) Outer() *Env {
	return e.outer
}

// DeclareVar binds a variable in this frame, overwriting any same-name
// binding in this frame only.
func (e *Env) DeclareVar(v *cabs.Var) {
	e.vars[v.Name] = v
}

// DeclareTypedef binds a typedef name in this frame
func (e *Env) DeclareTypedef(name string, ty ctypes.Type) {
	e.typedefs[name] = ty
}

// DeclareTag binds a struct tag in this frame
func (e *Env) DeclareTag(tag string, ty *ctypes.Tstruct) {
	e.tags[tag] = ty
}

// LookupVar resolves a variable name, innermost frame first
func (e *Env) LookupVar(name string) *cabs.Var {
	for s := e; s != nil; s = s.outer {
		if v, ok := s.vars[name]; ok {
			return v
		}
	}
	return nil
}

// LookupTypedef resolves a typedef name, innermost frame first
func (e *Env) LookupTypedef(name string) ctypes.Type {
	for s := e; s != nil; s = s.outer {
		if ty, ok := s.typedefs[name]; ok {
			return ty
		}
	}
	return nil
}

// LookupTag resolves a struct tag, innermost frame first
func (e *Env) LookupTag(tag string) *ctypes.Tstruct {
	for s := e; s != nil; s = s.outer {
		if ty, ok := s.tags[tag]; ok {
			return ty
		}
	}
	return nil
}

// Package ctypes defines the C type system with concrete size and
// alignment layout for a 64-bit target.
package ctypes

import "fmt"

// Type is the interface for all C types
type Type interface {
	implType()
	String() string
}

// PointerSize is the machine word size in bytes
const PointerSize = 8

// Tvoid represents the void type
type Tvoid struct{}

// Tbool represents the _Bool type, a 1-byte integer
type Tbool struct{}

// Tchar represents the char type
type Tchar struct{}

// Tint represents the int type
type Tint struct{}

// Tpointer represents pointer types
type Tpointer struct {
	Elem Type
}

// Tarray represents array types. Len is -1 while the outermost dimension
// of a declarator is still unspecified.
type Tarray struct {
	Elem Type
	Len  int
}

// Tstruct represents a struct type. It is pointer-shaped so that a tag can
// be registered before the member list exists; Completed reports whether a
// body has been seen and the layout is fixed. Mutually recursive structs
// reference each other through the same *Tstruct handle.
type Tstruct struct {
	Tag       string
	Fields    []Field
	Size      int
	Align     int
	Completed bool
}

// Field represents one struct member with its computed byte offset
type Field struct {
	Name   string
	Type   Type
	Offset int
}

// Tfunction represents function types
type Tfunction struct {
	Return Type
}

// Marker methods for Type interface
func (Tvoid) implType()     {}
func (Tbool) implType()     {}
func (Tchar) implType()     {}
func (Tint) implType()      {}
func (Tpointer) implType()  {}
func (Tarray) implType()    {}
func (*Tstruct) implType()  {}
func (Tfunction) implType() {}

// String methods for types
func (Tvoid) String() string { return "void" }
func (Tbool) String() string { return "_Bool" }
func (Tchar) String() string { return "char" }
func (Tint) String() string  { return "int" }

func (t Tpointer) String() string {
	if t.Elem == nil {
		return "void *"
	}
	return t.Elem.String() + " *"
}

func (t Tarray) String() string {
	if t.Len < 0 {
		return t.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Elem, t.Len)
}

func (t *Tstruct) String() string {
	if t.Tag == "" {
		return "struct <anonymous>"
	}
	return "struct " + t.Tag
}

func (t Tfunction) String() string {
	return "function returning " + t.Return.String()
}

// Common type constructors

// Void returns the void type
func Void() Type {
	return Tvoid{}
}

// Bool returns the _Bool type
func Bool() Type {
	return Tbool{}
}

// Char returns the char type
func Char() Type {
	return Tchar{}
}

// Int returns the int type
func Int() Type {
	return Tint{}
}

// Pointer returns a pointer to the given type
func Pointer(elem Type) Type {
	return Tpointer{Elem: elem}
}

// Array returns an array type
func Array(elem Type, length int) Type {
	return Tarray{Elem: elem, Len: length}
}

// Func returns a function type with the given return type
func Func(ret Type) Type {
	return Tfunction{Return: ret}
}

// Sizeof returns the size of a type in bytes
func Sizeof(t Type) int {
	switch ty := t.(type) {
	case Tvoid:
		return 0
	case Tbool, Tchar:
		return 1
	case Tint:
		return 4
	case Tpointer, Tfunction:
		return PointerSize
	case Tarray:
		return ty.Len * Sizeof(ty.Elem)
	case *Tstruct:
		return ty.Size
	}
	return 0
}

// Alignof returns the alignment of a type in bytes
func Alignof(t Type) int {
	switch ty := t.(type) {
	case Tvoid:
		return 1
	case Tbool, Tchar:
		return 1
	case Tint:
		return 4
	case Tpointer, Tfunction:
		return PointerSize
	case Tarray:
		return Alignof(ty.Elem)
	case *Tstruct:
		return ty.Align
	}
	return 1
}

// IsInteger reports whether a type is an integer type
func IsInteger(t Type) bool {
	switch t.(type) {
	case Tbool, Tchar, Tint:
		return true
	}
	return false
}

// Elem returns the element type of a pointer or array, or nil
func Elem(t Type) Type {
	switch ty := t.(type) {
	case Tpointer:
		return ty.Elem
	case Tarray:
		return ty.Elem
	}
	return nil
}

// Roundup rounds n up to the next multiple of align
func Roundup(n, align int) int {
	return (n + align - 1) / align * align
}

// Complete installs the member list and fixes the struct layout: members
// are placed in declaration order, each offset rounded up to the member's
// alignment, the struct alignment is the maximum member alignment, and the
// total size is rounded up to that alignment.
func (t *Tstruct) Complete(fields []Field) {
	off := 0
	align := 1
	for i := range fields {
		f := &fields[i]
		fa := Alignof(f.Type)
		off = Roundup(off, fa)
		f.Offset = off
		off += Sizeof(f.Type)
		if align < fa {
			align = fa
		}
	}
	t.Fields = fields
	t.Align = align
	t.Size = Roundup(off, align)
	t.Completed = true
}

// FindField returns the named member and whether it exists
func (t *Tstruct) FindField(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Equal checks if two types are equal
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ta := a.(type) {
	case Tvoid:
		_, ok := b.(Tvoid)
		return ok
	case Tbool:
		_, ok := b.(Tbool)
		return ok
	case Tchar:
		_, ok := b.(Tchar)
		return ok
	case Tint:
		_, ok := b.(Tint)
		return ok
	case Tpointer:
		tb, ok := b.(Tpointer)
		return ok && Equal(ta.Elem, tb.Elem)
	case Tarray:
		tb, ok := b.(Tarray)
		return ok && ta.Len == tb.Len && Equal(ta.Elem, tb.Elem)
	case *Tstruct:
		tb, ok := b.(*Tstruct)
		return ok && ta == tb
	case Tfunction:
		tb, ok := b.(Tfunction)
		return ok && Equal(ta.Return, tb.Return)
	}
	return false
}

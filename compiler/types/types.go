package types

import (
	"fmt"
	"strings"

	"github.com/rjNemo/underscore"
)

// Properties of a type that are computed once, when the type is constructed, so that
// passes over large types can skip subtrees that cannot be affected.
type Flags uint8

const (
	// The type mentions a type parameter somewhere within it.
	HasParams Flags = 1 << iota
	// The type mentions the implicit Self type somewhere within it.
	HasSelf
	// The type mentions an early-bound region parameter somewhere within it.
	HasEarlyRegions
	// The type mentions a late-bound region somewhere within it.
	HasLateRegions
	// The type contains the error placeholder, so it was produced after a reported failure.
	HasErrors

	// Any of these flags means substitution could change the type.
	NeedsSubstMask = HasParams | HasSelf | HasEarlyRegions
)

func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}

// Type is the sum of every type shape known to the compiler middle layer. Types are
// immutable once constructed and must only be built with the New* constructors, which
// compute the cached flags.
type Type interface {
	fmt.Stringer
	Flags() Flags
	isType()
}

// Whether substituting into the type could ever produce a different type. When false,
// substitution returns the type as-is without looking inside it.
func NeedsSubst(t Type) bool {
	return t.Flags().Has(NeedsSubstMask)
}

// Whether any of the types could be changed by substitution.
func AnyNeedsSubst(ts []Type) bool {
	return underscore.Any(ts, NeedsSubst)
}

func flagsOf(ts []Type) Flags {
	var f Flags
	for _, t := range ts {
		f |= t.Flags()
	}
	return f
}

type flagged struct {
	flags Flags
}

func (f flagged) Flags() Flags {
	return f.flags
}

func (flagged) isType() {}

// A nullary nominal type such as int, bool, or string.
type Con struct {
	flagged
	Name string
}

func NewCon(name string) *Con {
	return &Con{Name: name}
}

func (t *Con) String() string {
	return t.Name
}

// A reference to a declared type parameter. The index is the position of the parameter
// in the declaring item's parameter list; the name is only used for display.
type Param struct {
	flagged
	Index int
	Name  string
}

func NewParam(index int, name string) *Param {
	if index < 0 {
		panic(fmt.Sprintf("types: negative type parameter index %d", index))
	}
	return &Param{flagged{HasParams}, index, name}
}

func (t *Param) String() string {
	if t.Name == "" {
		return fmt.Sprintf("T%d", t.Index)
	}
	return t.Name
}

// The implicit receiver type of a trait. There is only ever one Self in scope, so it
// carries no index.
type Self struct {
	flagged
}

func NewSelf() *Self {
	return &Self{flagged{HasSelf}}
}

func (t *Self) String() string {
	return "Self"
}

// The placeholder produced in place of a type that could not be computed. A diagnostic
// has always been reported by the time this type appears.
type Error struct {
	flagged
}

func NewError() *Error {
	return &Error{flagged{HasErrors}}
}

func (t *Error) String() string {
	return "{error}"
}

// A generic nominal type applied to region and type arguments, like `Cell<'a, T>`.
type App struct {
	flagged
	Name    string
	Regions []Region
	Args    []Type
}

func NewApp(name string, regions []Region, args []Type) *App {
	return &App{flagged{regionFlags(regions...) | flagsOf(args)}, name, regions, args}
}

func (t *App) String() string {
	parts := make([]string, 0, len(t.Regions)+len(t.Args))
	for _, r := range t.Regions {
		parts = append(parts, r.String())
	}
	for _, a := range t.Args {
		parts = append(parts, a.String())
	}
	if len(parts) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

// A borrowed reference `&'a T` or `&'a mut T`.
type Ref struct {
	flagged
	Region  Region
	Mutable bool
	Elem    Type
}

func NewRef(r Region, mutable bool, elem Type) *Ref {
	if r == nil {
		panic("types: reference requires a region")
	}
	return &Ref{flagged{regionFlags(r) | elem.Flags()}, r, mutable, elem}
}

func (t *Ref) String() string {
	var b strings.Builder
	b.WriteString("&")
	if !IsAnonymous(t.Region) {
		b.WriteString(t.Region.String())
		b.WriteString(" ")
	}
	if t.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString(t.Elem.String())
	return b.String()
}

// A raw pointer `*const T` or `*mut T`.
type Ptr struct {
	flagged
	Mutable bool
	Elem    Type
}

func NewPtr(mutable bool, elem Type) *Ptr {
	return &Ptr{flagged{elem.Flags()}, mutable, elem}
}

func (t *Ptr) String() string {
	if t.Mutable {
		return "*mut " + t.Elem.String()
	}
	return "*const " + t.Elem.String()
}

type Slice struct {
	flagged
	Elem Type
}

func NewSlice(elem Type) *Slice {
	return &Slice{flagged{elem.Flags()}, elem}
}

func (t *Slice) String() string {
	return fmt.Sprintf("[%s]", t.Elem)
}

type Array struct {
	flagged
	Elem Type
	Len  int
}

func NewArray(elem Type, length int) *Array {
	return &Array{flagged{elem.Flags()}, elem, length}
}

func (t *Array) String() string {
	return fmt.Sprintf("[%s; %d]", t.Elem, t.Len)
}

// An anonymous product. The empty tuple is the unit type.
type Tuple struct {
	flagged
	Elems []Type
}

func NewTuple(elems ...Type) *Tuple {
	return &Tuple{flagged{flagsOf(elems)}, elems}
}

func (t *Tuple) String() string {
	if len(t.Elems) == 1 {
		return fmt.Sprintf("(%s,)", t.Elems[0])
	}
	return fmt.Sprintf("(%s)", joinTypes(t.Elems))
}

// Whether the type is the unit tuple `()`.
func IsUnit(t Type) bool {
	tup, ok := t.(*Tuple)
	return ok && len(tup.Elems) == 0
}

// A function pointer type. All the interesting structure lives in the signature.
type Func struct {
	flagged
	Sig *FnSig
}

func NewFunc(sig *FnSig) *Func {
	return &Func{flagged{sig.Flags()}, sig}
}

func (t *Func) String() string {
	return t.Sig.String()
}

// A trait object `dyn Name<Args> + 'r`. The region bound is optional.
type Trait struct {
	flagged
	Ref    *TraitRef
	Region Region
}

func NewTrait(ref *TraitRef, r Region) *Trait {
	f := ref.Flags()
	if r != nil {
		f |= regionFlags(r)
	}
	return &Trait{flagged{f}, ref, r}
}

func (t *Trait) String() string {
	if t.Region == nil {
		return "dyn " + t.Ref.String()
	}
	return fmt.Sprintf("dyn %s + %s", t.Ref, t.Region)
}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

var (
	Int    Type = NewCon("int")
	Uint   Type = NewCon("uint")
	Bool   Type = NewCon("bool")
	Char   Type = NewCon("char")
	String Type = NewCon("string")
	Unit   Type = NewTuple()
)

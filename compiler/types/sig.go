package types

import (
	"fmt"
	"strings"
)

// The signature of a function. Binder names the late-bound regions introduced by a
// `for<...>` prefix; references to them inside the signature are ReLateBound with
// binder depth 0 at the signature's own level.
type FnSig struct {
	flags    Flags
	Binder   []string
	Inputs   []Type
	Output   Type
	Variadic bool
}

func NewFnSig(binder []string, inputs []Type, output Type, variadic bool) *FnSig {
	if output == nil {
		output = Unit
	}
	return &FnSig{flagsOf(inputs) | output.Flags(), binder, inputs, output, variadic}
}

func (s *FnSig) Flags() Flags {
	return s.flags
}

func (s *FnSig) String() string {
	var b strings.Builder
	if len(s.Binder) > 0 {
		names := make([]string, len(s.Binder))
		for i, n := range s.Binder {
			names[i] = "'" + n
		}
		fmt.Fprintf(&b, "for<%s> ", strings.Join(names, ", "))
	}
	b.WriteString("fn(")
	b.WriteString(joinTypes(s.Inputs))
	if s.Variadic {
		if len(s.Inputs) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString(")")
	if !IsUnit(s.Output) {
		b.WriteString(" -> ")
		b.WriteString(s.Output.String())
	}
	return b.String()
}

// A reference to a trait applied to type arguments, `Name<Args>`. The implementing type is
// not part of the reference; see Predicate.
type TraitRef struct {
	flags Flags
	Name  string
	Args  []Type
}

func NewTraitRef(name string, args []Type) *TraitRef {
	return &TraitRef{flagsOf(args), name, args}
}

func (r *TraitRef) Flags() Flags {
	return r.flags
}

func (r *TraitRef) String() string {
	if len(r.Args) == 0 {
		return r.Name
	}
	return fmt.Sprintf("%s<%s>", r.Name, joinTypes(r.Args))
}

// A where-clause `Subject: Bound`.
type Predicate struct {
	flags   Flags
	Subject Type
	Bound   *TraitRef
}

func NewPredicate(subject Type, bound *TraitRef) *Predicate {
	return &Predicate{subject.Flags() | bound.Flags(), subject, bound}
}

func (p *Predicate) Flags() Flags {
	return p.flags
}

func (p *Predicate) String() string {
	return fmt.Sprintf("%s: %s", p.Subject, p.Bound)
}

// The generic parameters declared by an item, with the predicates that bound them.
// Params and Regions fix the index order used by Param and ReEarlyBound.
type Generics struct {
	Params     []string
	Regions    []string
	Predicates []*Predicate
}

func (g *Generics) String() string {
	names := make([]string, 0, len(g.Regions)+len(g.Params))
	for _, r := range g.Regions {
		names = append(names, "'"+r)
	}
	names = append(names, g.Params...)
	preds := make([]string, len(g.Predicates))
	for i, p := range g.Predicates {
		preds[i] = p.String()
	}
	if len(preds) == 0 {
		return fmt.Sprintf("<%s>", strings.Join(names, ", "))
	}
	return fmt.Sprintf("<%s> where %s", strings.Join(names, ", "), strings.Join(preds, ", "))
}

// The scope to parse types in, built from the declaration.
func (g *Generics) Scope() Scope {
	return Scope{Params: g.Params, Regions: g.Regions}
}

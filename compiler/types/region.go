package types

import "fmt"

// Region is a lifetime. Every region variant is a comparable value, so two regions are
// equal exactly when == says so.
type Region interface {
	fmt.Stringer
	isRegion()
}

// The region that outlives every other. Erasure maps every early-bound region here.
type ReStatic struct{}

// A region parameter declared on an item (a type, trait, or impl), substituted at the same
// time as the item's type parameters. Index is the declaration position.
type ReEarlyBound struct {
	Index int
	Name  string
}

// A region bound by a function signature's `for<...>` binder. Binder counts enclosing
// binders outward from the innermost one, Index is the position within that binder.
// Substitution never rewrites these.
type ReLateBound struct {
	Binder int
	Index  int
	Name   string
}

// A concrete region that is neither static nor a parameter, such as the scope of a
// particular function body. The empty name is the anonymous region of `&T`.
type ReFree struct {
	Name string
}

func (ReStatic) isRegion()     {}
func (ReEarlyBound) isRegion() {}
func (ReLateBound) isRegion()  {}
func (ReFree) isRegion()       {}

func (ReStatic) String() string {
	return "'static"
}

func (r ReEarlyBound) String() string {
	if r.Name == "" {
		return fmt.Sprintf("'r%d", r.Index)
	}
	return "'" + r.Name
}

func (r ReLateBound) String() string {
	if r.Name == "" {
		return fmt.Sprintf("'^%d.%d", r.Binder, r.Index)
	}
	return "'" + r.Name
}

func (r ReFree) String() string {
	if r.Name == "" {
		return "'_"
	}
	return "'" + r.Name
}

// Whether the region is the anonymous free region, which is elided when printing.
func IsAnonymous(r Region) bool {
	f, ok := r.(ReFree)
	return ok && f.Name == ""
}

func regionFlags(rs ...Region) Flags {
	var f Flags
	for _, r := range rs {
		switch r.(type) {
		case ReEarlyBound:
			f |= HasEarlyRegions
		case ReLateBound:
			f |= HasLateRegions
		}
	}
	return f
}

// Whether substitution could change the region.
func RegionNeedsSubst(r Region) bool {
	return regionFlags(r).Has(NeedsSubstMask)
}

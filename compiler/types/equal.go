package types

// Structural equality of types. Param equality compares indices only, since names are
// for display.
func Equal(l Type, r Type) bool {
	if l == r {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	switch lt := l.(type) {
	case *Con:
		rt, ok := r.(*Con)
		return ok && lt.Name == rt.Name
	case *Param:
		rt, ok := r.(*Param)
		return ok && lt.Index == rt.Index
	case *Self:
		_, ok := r.(*Self)
		return ok
	case *Error:
		_, ok := r.(*Error)
		return ok
	case *App:
		rt, ok := r.(*App)
		return ok && lt.Name == rt.Name && EqualRegions(lt.Regions, rt.Regions) && EqualTypes(lt.Args, rt.Args)
	case *Ref:
		rt, ok := r.(*Ref)
		return ok && lt.Mutable == rt.Mutable && EqualRegion(lt.Region, rt.Region) && Equal(lt.Elem, rt.Elem)
	case *Ptr:
		rt, ok := r.(*Ptr)
		return ok && lt.Mutable == rt.Mutable && Equal(lt.Elem, rt.Elem)
	case *Slice:
		rt, ok := r.(*Slice)
		return ok && Equal(lt.Elem, rt.Elem)
	case *Array:
		rt, ok := r.(*Array)
		return ok && lt.Len == rt.Len && Equal(lt.Elem, rt.Elem)
	case *Tuple:
		rt, ok := r.(*Tuple)
		return ok && EqualTypes(lt.Elems, rt.Elems)
	case *Func:
		rt, ok := r.(*Func)
		return ok && EqualSig(lt.Sig, rt.Sig)
	case *Trait:
		rt, ok := r.(*Trait)
		return ok && EqualRegion(lt.Region, rt.Region) && EqualTraitRef(lt.Ref, rt.Ref)
	default:
		return false
	}
}

func EqualTypes(l []Type, r []Type) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if !Equal(l[i], r[i]) {
			return false
		}
	}
	return true
}

// Regions compare by value; late-bound names are ignored like Param names.
func EqualRegion(l Region, r Region) bool {
	if ll, ok := l.(ReLateBound); ok {
		rl, ok := r.(ReLateBound)
		return ok && ll.Binder == rl.Binder && ll.Index == rl.Index
	}
	if le, ok := l.(ReEarlyBound); ok {
		re, ok := r.(ReEarlyBound)
		return ok && le.Index == re.Index
	}
	return l == r
}

func EqualRegions(l []Region, r []Region) bool {
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if !EqualRegion(l[i], r[i]) {
			return false
		}
	}
	return true
}

func EqualSig(l *FnSig, r *FnSig) bool {
	if l == r {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	return len(l.Binder) == len(r.Binder) &&
		l.Variadic == r.Variadic &&
		EqualTypes(l.Inputs, r.Inputs) &&
		Equal(l.Output, r.Output)
}

func EqualTraitRef(l *TraitRef, r *TraitRef) bool {
	if l == r {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	return l.Name == r.Name && EqualTypes(l.Args, r.Args)
}

func EqualPredicate(l *Predicate, r *Predicate) bool {
	if l == r {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	return Equal(l.Subject, r.Subject) && EqualTraitRef(l.Bound, r.Bound)
}

// Package fold drives a rewriting pass over every kind of type-bearing value. A Folder only
// needs to say what happens at the nodes it cares about; SuperFoldType rebuilds every
// other shape from its rewritten children.
package fold

import (
	"fmt"

	"github.com/glossopoeia/subst/compiler/types"
	"github.com/glossopoeia/subst/compiler/util"
)

// A Folder rewrites types and regions. Implementations usually handle a few leaf shapes
// themselves and delegate everything else to SuperFoldType / SuperFoldRegion.
type Folder interface {
	FoldType(t types.Type) types.Type
	FoldRegion(r types.Region) types.Region
}

// Rebuild a type from its children, each folded with f. Leaves are returned unchanged.
// This does not call f.FoldType on t itself, so a folder may call it from FoldType.
func SuperFoldType(f Folder, t types.Type) types.Type {
	switch ty := t.(type) {
	case *types.Con, *types.Param, *types.Self, *types.Error:
		return t
	case *types.App:
		return types.NewApp(ty.Name, FoldRegions(f, ty.Regions), FoldTypes(f, ty.Args))
	case *types.Ref:
		return types.NewRef(f.FoldRegion(ty.Region), ty.Mutable, f.FoldType(ty.Elem))
	case *types.Ptr:
		return types.NewPtr(ty.Mutable, f.FoldType(ty.Elem))
	case *types.Slice:
		return types.NewSlice(f.FoldType(ty.Elem))
	case *types.Array:
		return types.NewArray(f.FoldType(ty.Elem), ty.Len)
	case *types.Tuple:
		return types.NewTuple(FoldTypes(f, ty.Elems)...)
	case *types.Func:
		return types.NewFunc(FoldSig(f, ty.Sig))
	case *types.Trait:
		var r types.Region
		if ty.Region != nil {
			r = f.FoldRegion(ty.Region)
		}
		return types.NewTrait(FoldTraitRef(f, ty.Ref), r)
	default:
		panic(fmt.Sprintf("fold: cannot fold type %T", t))
	}
}

// Regions have no children.
func SuperFoldRegion(f Folder, r types.Region) types.Region {
	return r
}

func FoldTypes(f Folder, ts []types.Type) []types.Type {
	return util.MapSlice(ts, f.FoldType)
}

func FoldRegions(f Folder, rs []types.Region) []types.Region {
	return util.MapSlice(rs, f.FoldRegion)
}

func FoldSig(f Folder, sig *types.FnSig) *types.FnSig {
	return types.NewFnSig(sig.Binder, FoldTypes(f, sig.Inputs), f.FoldType(sig.Output), sig.Variadic)
}

func FoldTraitRef(f Folder, ref *types.TraitRef) *types.TraitRef {
	return types.NewTraitRef(ref.Name, FoldTypes(f, ref.Args))
}

func FoldPredicate(f Folder, p *types.Predicate) *types.Predicate {
	return types.NewPredicate(f.FoldType(p.Subject), FoldTraitRef(f, p.Bound))
}

func FoldGenerics(f Folder, g *types.Generics) *types.Generics {
	return &types.Generics{
		Params:     g.Params,
		Regions:    g.Regions,
		Predicates: util.MapSlice(g.Predicates, func(p *types.Predicate) *types.Predicate { return FoldPredicate(f, p) }),
	}
}

// Fold any supported entity with f, returning an entity of the same kind. Supported
// kinds are types.Type, types.Region, []types.Type, []types.Region, *types.FnSig,
// *types.TraitRef, *types.Predicate, and *types.Generics. Types and regions must be
// passed as the types.Type and types.Region interfaces, since folding may change their
// shape: folding a bare types.ReEarlyBound panics once it becomes another region.
func Fold[E any](f Folder, e E) E {
	var res any
	switch ent := any(e).(type) {
	case *types.FnSig:
		res = FoldSig(f, ent)
	case *types.TraitRef:
		res = FoldTraitRef(f, ent)
	case *types.Predicate:
		res = FoldPredicate(f, ent)
	case *types.Generics:
		res = FoldGenerics(f, ent)
	case []types.Type:
		res = FoldTypes(f, ent)
	case []types.Region:
		res = FoldRegions(f, ent)
	case types.Type:
		res = f.FoldType(ent)
	case types.Region:
		res = f.FoldRegion(ent)
	default:
		panic(fmt.Sprintf("fold: cannot fold entity of kind %T", e))
	}
	out, ok := res.(E)
	if !ok {
		panic(fmt.Sprintf("fold: folding %T produced %T; pass types as types.Type and regions as types.Region", e, res))
	}
	return out
}

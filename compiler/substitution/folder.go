package substitution

import (
	"fmt"

	"github.com/glossopoeia/subst/compiler/fold"
	"github.com/glossopoeia/subst/compiler/session"
	"github.com/glossopoeia/subst/compiler/types"
)

// The substitution engine itself is a folder. One is created per top-level call.
type folder struct {
	ctx    *types.Ctxt
	substs *Substs

	// The location the substitution is performed for, if available.
	span *session.Span

	// The outermost type being substituted, for diagnostics. Set only while depth > 0.
	root types.Type

	depth int
}

func newFolder(ctx *types.Ctxt, s *Substs, span *session.Span) *folder {
	return &folder{ctx: ctx, substs: s, span: span}
}

var _ fold.Folder = &folder{}

// Only early-bound regions, the ones declared on items, are handled here. Regions bound
// by function signatures are replaced by a separate mechanism when the signature is
// instantiated at a call.
func (f *folder) FoldRegion(r types.Region) types.Region {
	early, ok := r.(types.ReEarlyBound)
	if !ok {
		return fold.SuperFoldRegion(f, r)
	}
	if f.substs.Regions.erased {
		return f.ctx.Static()
	}
	regions := f.substs.Regions.regions
	if early.Index >= 0 && early.Index < len(regions) {
		return regions[early.Index]
	}
	f.report(fmt.Sprintf("can't use lifetime parameters from outer item%s; try using a local lifetime parameter instead", f.rootMsg()))
	return f.ctx.Static()
}

func (f *folder) FoldType(t types.Type) types.Type {
	if !types.NeedsSubst(t) {
		return t
	}

	depth := f.depth
	if depth == 0 {
		f.root = t
	}
	f.depth++

	var res types.Type
	switch ty := t.(type) {
	case *types.Param:
		// The indices only line up if the substitutions were built from the same
		// declaration as the parameter. A parameter from an enclosing item leaks in here.
		if ty.Index >= 0 && ty.Index < len(f.substs.Types) {
			res = f.substs.Types[ty.Index]
		} else {
			f.report(fmt.Sprintf("can't use type parameters from outer function%s; try using a local type parameter instead", f.rootMsg()))
			res = f.ctx.Err()
		}
	case *types.Self:
		if f.substs.SelfTy != nil {
			res = f.substs.SelfTy
		} else {
			f.report(fmt.Sprintf("missing `Self` type param%s", f.rootMsg()))
			res = f.ctx.Err()
		}
	default:
		res = fold.SuperFoldType(f, t)
	}

	if f.depth != depth+1 {
		panic(fmt.Sprintf("substitution: type stack depth %d after folding, expected %d", f.depth, depth+1))
	}
	f.depth--
	if depth == 0 {
		f.root = nil
	}
	return res
}

func (f *folder) rootMsg() string {
	if f.root == nil {
		return ""
	}
	return fmt.Sprintf(" in the substitution of `%s`", f.root)
}

func (f *folder) report(msg string) {
	if f.span != nil {
		f.ctx.Sess.SpanErr(*f.span, msg)
	} else {
		f.ctx.Sess.Err(msg)
	}
}

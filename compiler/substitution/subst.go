package substitution

import (
	"github.com/glossopoeia/subst/compiler/fold"
	"github.com/glossopoeia/subst/compiler/session"
	"github.com/glossopoeia/subst/compiler/types"
)

// Apply the substitutions to any entity the fold package supports. Equivalent to
// ApplyAt with no location. Types and regions must be passed as types.Type and
// types.Region, since the result may be a different shape.
//
//	ty := substitution.Apply(ctx, substs, polyTy)
//	r := substitution.Apply(ctx, substs, types.Region(types.ReEarlyBound{Index: 0}))
func Apply[E any](ctx *types.Ctxt, s *Substs, e E) E {
	return ApplyAt(ctx, s, e, nil)
}

// Apply the substitutions, attributing any reported errors to the given location when it
// is non-nil. Neither the substitutions nor the entity are modified; errors are reported
// to the context's session and the faulty leaf is replaced with the error type.
func ApplyAt[E any](ctx *types.Ctxt, s *Substs, e E, at *session.Span) E {
	folder := newFolder(ctx, s, at)
	return fold.Fold[E](folder, e)
}

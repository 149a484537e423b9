package types

import "github.com/glossopoeia/subst/compiler/session"

var errType Type = NewError()

// The type context shared by the passes of one compilation. It owns the diagnostic
// session and the canonical placeholder types.
type Ctxt struct {
	Sess *session.Session
}

func NewCtxt(sess *session.Session) *Ctxt {
	if sess == nil {
		sess = session.New()
	}
	return &Ctxt{Sess: sess}
}

// The error placeholder type. Only use this after a diagnostic has been reported.
func (c *Ctxt) Err() Type {
	return errType
}

// The static region.
func (c *Ctxt) Static() Region {
	return ReStatic{}
}

package types

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// The generic parameters in scope while parsing a type. A name's position in Params or
// Regions is the index given to the parameter reference it parses to.
type Scope struct {
	Params  []string
	Regions []string
}

// Contains extra information about a failure to parse a type. Pos is a byte offset.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("types: parse error at offset %d: %s", e.Pos, e.Msg)
}

// Parse a type written in the same syntax String produces, e.g.
//
//	for<'r> fn(&'r T, Self) -> Vec<'a, U>
//
// Names listed in the scope become parameter references, `Self` becomes the self type, and
// regions introduced by a `for<...>` binder become late-bound.
func Parse(src string, scope Scope) (Type, error) {
	p := &parser{src: src, scope: scope}
	p.next()
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after type", p.tok)
	}
	return t, nil
}

// Like Parse, but panics on error. Intended for tests and fixed tables.
func MustParse(src string, scope Scope) Type {
	t, err := Parse(src, scope)
	if err != nil {
		panic(err)
	}
	return t
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokInt
	tokLifetime
	tokPunct
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

type parser struct {
	src   string
	off   int
	tok   token
	scope Scope
	// Innermost binder last.
	binders [][]string
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{p.tok.pos, fmt.Sprintf(format, args...)}
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

// The rune at the current offset and its width in bytes. Zero width at end of input.
func (p *parser) peek() (rune, int) {
	if p.off >= len(p.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.src[p.off:])
}

func (p *parser) scanWhile(pred func(r rune, first bool) bool) string {
	start := p.off
	for {
		r, w := p.peek()
		if w == 0 || !pred(r, p.off == start) {
			break
		}
		p.off += w
	}
	return p.src[start:p.off]
}

func (p *parser) scanIdent() string {
	return p.scanWhile(isIdentRune)
}

func (p *parser) next() {
	p.scanWhile(func(r rune, _ bool) bool { return unicode.IsSpace(r) })
	start := p.off
	c, width := p.peek()
	if width == 0 {
		p.tok = token{tokEOF, "", start}
		return
	}
	switch {
	case isIdentRune(c, true):
		p.tok = token{tokIdent, p.scanIdent(), start}
	case unicode.IsDigit(c):
		digits := p.scanWhile(func(r rune, _ bool) bool { return unicode.IsDigit(r) })
		p.tok = token{tokInt, digits, start}
	case c == '\'':
		p.off++
		name := p.scanIdent()
		p.tok = token{tokLifetime, name, start}
	default:
		for _, punct := range []string{"->", "...", "{error}"} {
			if len(p.src)-p.off >= len(punct) && p.src[p.off:p.off+len(punct)] == punct {
				p.off += len(punct)
				p.tok = token{tokPunct, punct, start}
				return
			}
		}
		p.off += width
		p.tok = token{tokPunct, p.src[start:p.off], start}
	}
}

func (p *parser) is(text string) bool {
	return (p.tok.kind == tokPunct || p.tok.kind == tokIdent) && p.tok.text == text
}

func (p *parser) expect(text string) error {
	if !p.is(text) {
		return p.errorf("expected %q, found %s", text, p.tok)
	}
	p.next()
	return nil
}

func (p *parser) parseType() (Type, error) {
	switch p.tok.kind {
	case tokEOF:
		return nil, p.errorf("expected type, found end of input")
	case tokLifetime, tokInt:
		return nil, p.errorf("expected type, found %s", p.tok)
	case tokIdent:
		return p.parseNamed()
	}
	switch p.tok.text {
	case "{error}":
		p.next()
		return errType, nil
	case "&":
		p.next()
		var r Region = ReFree{}
		if p.tok.kind == tokLifetime {
			r = p.parseRegion()
		}
		mutable := false
		if p.is("mut") {
			mutable = true
			p.next()
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return NewRef(r, mutable, elem), nil
	case "*":
		p.next()
		var mutable bool
		switch {
		case p.is("mut"):
			mutable = true
		case p.is("const"):
		default:
			return nil, p.errorf("expected \"const\" or \"mut\" after \"*\", found %s", p.tok)
		}
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return NewPtr(mutable, elem), nil
	case "[":
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.is(";") {
			p.next()
			if p.tok.kind != tokInt {
				return nil, p.errorf("expected array length, found %s", p.tok)
			}
			n, err := strconv.Atoi(p.tok.text)
			if err != nil {
				return nil, p.errorf("invalid array length %s", p.tok)
			}
			p.next()
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			return NewArray(elem, n), nil
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return NewSlice(elem), nil
	case "(":
		p.next()
		elems := []Type{}
		trailingComma := false
		for !p.is(")") {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
			trailingComma = false
			if !p.is(",") {
				break
			}
			trailingComma = true
			p.next()
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		// `(T)` is just T; `(T,)` is the one-element tuple.
		if len(elems) == 1 && !trailingComma {
			return elems[0], nil
		}
		return NewTuple(elems...), nil
	}
	return nil, p.errorf("expected type, found %s", p.tok)
}

func (p *parser) parseNamed() (Type, error) {
	name := p.tok.text
	switch name {
	case "Self":
		p.next()
		return NewSelf(), nil
	case "fn", "for":
		return p.parseFunc()
	case "dyn":
		p.next()
		ref, err := p.parseTraitRef()
		if err != nil {
			return nil, err
		}
		var r Region
		if p.is("+") {
			p.next()
			if p.tok.kind != tokLifetime {
				return nil, p.errorf("expected region bound, found %s", p.tok)
			}
			r = p.parseRegion()
		}
		return NewTrait(ref, r), nil
	}
	if ind := slices.Index(p.scope.Params, name); ind >= 0 {
		p.next()
		return NewParam(ind, name), nil
	}
	p.next()
	if !p.is("<") {
		return NewCon(name), nil
	}
	p.next()
	var regions []Region
	var args []Type
	for !p.is(">") {
		if p.tok.kind == tokLifetime {
			regions = append(regions, p.parseRegion())
		} else {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		if !p.is(",") {
			break
		}
		p.next()
	}
	if err := p.expect(">"); err != nil {
		return nil, err
	}
	return NewApp(name, regions, args), nil
}

func (p *parser) parseTraitRef() (*TraitRef, error) {
	if p.tok.kind != tokIdent {
		return nil, p.errorf("expected trait name, found %s", p.tok)
	}
	name := p.tok.text
	p.next()
	var args []Type
	if p.is("<") {
		p.next()
		for !p.is(">") {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if !p.is(",") {
				break
			}
			p.next()
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
	}
	return NewTraitRef(name, args), nil
}

func (p *parser) parseFunc() (Type, error) {
	var binder []string
	if p.is("for") {
		p.next()
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		for p.tok.kind == tokLifetime {
			binder = append(binder, p.tok.text)
			p.next()
			if !p.is(",") {
				break
			}
			p.next()
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
	}
	if err := p.expect("fn"); err != nil {
		return nil, err
	}
	p.binders = append(p.binders, binder)
	defer func() { p.binders = p.binders[:len(p.binders)-1] }()

	if err := p.expect("("); err != nil {
		return nil, err
	}
	inputs := []Type{}
	variadic := false
	for !p.is(")") {
		if p.is("...") {
			variadic = true
			p.next()
			break
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, t)
		if !p.is(",") {
			break
		}
		p.next()
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	var output Type = Unit
	if p.is("->") {
		p.next()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		output = t
	}
	return NewFunc(NewFnSig(binder, inputs, output, variadic)), nil
}

// Resolve a lifetime token: binders shadow the item's region parameters, which shadow
// nothing; anything else is a free region.
func (p *parser) parseRegion() Region {
	name := p.tok.text
	p.next()
	if name == "static" {
		return ReStatic{}
	}
	if name == "_" {
		return ReFree{}
	}
	for depth := 0; depth < len(p.binders); depth++ {
		binder := p.binders[len(p.binders)-1-depth]
		if ind := slices.Index(binder, name); ind >= 0 {
			return ReLateBound{depth, ind, name}
		}
	}
	if ind := slices.Index(p.scope.Regions, name); ind >= 0 {
		return ReEarlyBound{ind, name}
	}
	return ReFree{name}
}

// Parse a where-clause `Subject: Trait<Args>`.
func ParsePredicate(src string, scope Scope) (*Predicate, error) {
	p := &parser{src: src, scope: scope}
	p.next()
	subject, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	bound, err := p.parseTraitRef()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after predicate", p.tok)
	}
	return NewPredicate(subject, bound), nil
}

// Parse a single region such as `'a` or `'static`.
func ParseRegion(src string, scope Scope) (Region, error) {
	p := &parser{src: src, scope: scope}
	p.next()
	if p.tok.kind != tokLifetime {
		return nil, p.errorf("expected region, found %s", p.tok)
	}
	r := p.parseRegion()
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after region", p.tok)
	}
	return r, nil
}

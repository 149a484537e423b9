package session

import (
	"fmt"
	"strings"
	"sync"
)

// Severity of a diagnostic message.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		panic("session: invalid severity encountered")
	}
}

// A location in a source file. Lines and columns are 1-based.
type Span struct {
	File   string
	Line   int
	Column int
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// A single message emitted during compilation. Span is nil for
// context-level messages that have no source location.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     *Span
}

func (d Diagnostic) String() string {
	if d.Span == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Span, d.Message)
}

// The sink that receives every diagnostic produced while compiling. A session
// may be shared by several phases; messages are kept in emission order.
type Session struct {
	mu    sync.Mutex
	items []Diagnostic
}

func New() *Session {
	return &Session{}
}

func (s *Session) emit(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, d)
}

// Report an error that is not attached to any source location.
func (s *Session) Err(msg string) {
	s.emit(Diagnostic{Severity: Error, Message: msg})
}

// Report an error at the given location.
func (s *Session) SpanErr(span Span, msg string) {
	s.emit(Diagnostic{Severity: Error, Message: msg, Span: &span})
}

func (s *Session) Warn(msg string) {
	s.emit(Diagnostic{Severity: Warning, Message: msg})
}

func (s *Session) SpanWarn(span Span, msg string) {
	s.emit(Diagnostic{Severity: Warning, Message: msg, Span: &span})
}

// A snapshot of every diagnostic emitted so far.
func (s *Session) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Diagnostic, len(s.items))
	copy(res, s.items)
	return res
}

func (s *Session) ErrorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, d := range s.items {
		if d.Severity == Error {
			count++
		}
	}
	return count
}

func (s *Session) HasErrors() bool {
	return s.ErrorCount() > 0
}

// Render every diagnostic on its own line:
//
//	error[lib.rs:3:5]: missing `Self` type param
//	error: can't use type parameters from outer function
func (s *Session) Format() string {
	var b strings.Builder
	for i, d := range s.Diagnostics() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.String())
	}
	return b.String()
}

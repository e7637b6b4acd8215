// Package ferrors provides typed fatal-error wrappers for the handful of
// conditions the compiler cannot represent as a collected diagnostic: a
// hard import cycle, a resolver limit exceeded, a malformed IL stream that
// leaves the parser unable to recover a block structure at all. Everything
// else goes through internal/diag's "collect, don't throw" engine (spec
// §7); this package is reserved for genuine stop-the-world conditions,
// mirrored on the teacher's internal/errors CompilerError.
package ferrors

import (
	"fmt"
	"strings"

	"github.com/splanck/vipc/internal/source"
)

// FatalError is a single fatal condition with source position and,
// optionally, a causal chain (e.g. an import stack trace).
type FatalError struct {
	Message string
	Loc     source.Loc
	Chain   []string // human-readable trace entries, outermost first
}

// New returns a FatalError with no causal chain.
func New(loc source.Loc, message string) *FatalError {
	return &FatalError{Loc: loc, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(loc source.Loc, format string, args ...interface{}) *FatalError {
	return New(loc, fmt.Sprintf(format, args...))
}

// WithChain returns a copy of e with trace appended as its causal chain,
// used for import-cycle traces ("imported by A, imported by B, ...").
func (e *FatalError) WithChain(trace []string) *FatalError {
	chain := make([]string, len(trace))
	copy(chain, trace)
	return &FatalError{Message: e.Message, Loc: e.Loc, Chain: chain}
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return e.Format(nil)
}

// Format renders the error with source context from sm, if available, and
// its causal chain, matching the teacher's CompilerError.Format shape.
func (e *FatalError) Format(sm *source.Manager) string {
	var sb strings.Builder
	if e.Loc.IsValid() && sm != nil {
		fmt.Fprintf(&sb, "fatal: %s:%d:%d: %s\n", sm.Path(e.Loc.File), e.Loc.Line, e.Loc.Column, e.Message)
		if line := sm.Line(e.Loc.File, int(e.Loc.Line)); line != "" {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	} else {
		fmt.Fprintf(&sb, "fatal: %s\n", e.Message)
	}
	for i, entry := range e.Chain {
		fmt.Fprintf(&sb, "  [%d] %s\n", i, entry)
	}
	return sb.String()
}
